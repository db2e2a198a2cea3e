package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/fiidash/pkg/config"
)

var (
	// Global flags
	settingsPath string
	dataDir      string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fiidash",
	Short: "FII Dashboard - 브라질 부동산 펀드 대시보드",
	Long: `FII Dashboard CLI

brapi.dev 시세를 수집하고 점수를 매겨 정적 대시보드와 API로 제공합니다.
수집 → 가공 → 렌더 3단계 파이프라인.

Usage:
  go run ./cmd/fiidash [command]

Examples:
  go run ./cmd/fiidash update
  go run ./cmd/fiidash recommend
  go run ./cmd/fiidash serve --port 8089
  go run ./cmd/fiidash scheduler start`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// Ctrl+C / SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "pipeline settings YAML (default SETTINGS_PATH)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default DATA_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the environment config and applies global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if settingsPath != "" {
		cfg.SettingsPath = settingsPath
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}
