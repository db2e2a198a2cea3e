package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/fiidash/pkg/logger"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "대시보드 HTML 생성",
	Long: `가공된 파일로 정적 대시보드(index.html)를 생성합니다.

Example:
  go run ./cmd/fiidash render
  OUTPUT_DIR=public go run ./cmd/fiidash render`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg)

	runner, _, err := newRunner(cfg, log)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := runner.Render(cmd.Context()); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	PrintSuccess(fmt.Sprintf("Dashboard written to %s", cfg.IndexPath()))
	PrintJobCompletion("Render", time.Since(start))
	return nil
}
