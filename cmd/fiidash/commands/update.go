package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/fiidash/pkg/logger"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "수집 → 가공 → 렌더 전체 실행",
	Long: `fetch, process, render를 순서대로 실행합니다.
수집이 실패하면 기존 파일은 그대로 유지됩니다.

Example:
  go run ./cmd/fiidash update`,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg)

	runner, _, err := newRunner(cfg, log)
	if err != nil {
		return err
	}

	PrintJobHeader(JobMetadata{
		JobType:   "Update FII dashboard",
		Tag:       "Update",
		Timestamp: timestamp(),
		Source:    cfg.Brapi.BaseURL,
	})

	result, err := runner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	PrintKeyValue("Run ID", result.RunID, 9)
	PrintKeyValue("Collected", strconv.Itoa(result.Collected), 9)
	PrintKeyValue("Ranked", strconv.Itoa(result.Ranked), 9)
	PrintKeyValue("Dashboard", cfg.IndexPath(), 9)
	PrintJobCompletion("Update", result.Duration)
	return nil
}
