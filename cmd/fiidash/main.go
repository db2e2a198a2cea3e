package main

import (
	"os"

	"github.com/wonny/fiidash/cmd/fiidash/commands"
)

// main is the entry point for the fiidash CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/fiidash [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
