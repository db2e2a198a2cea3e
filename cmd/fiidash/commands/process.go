package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/fiidash/pkg/logger"
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "지표 계산 + 랭킹",
	Long: `원천 파일을 읽어 적정가, 할인율, 점수를 계산하고 상위 펀드를 저장합니다.

점수 = 0.5 × DY(%) + 0.3 × 할인율 + 0.2 × min(거래량/1e6, 10)
가중치와 상위 개수는 설정 파일에서 변경할 수 있습니다.

Example:
  go run ./cmd/fiidash process`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
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
		JobType:   "Process FII metrics",
		Tag:       "Process",
		Timestamp: timestamp(),
		Source:    cfg.RawPath(),
	})

	start := time.Now()
	doc, err := runner.Process(cmd.Context())
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}

	PrintKeyValue("Run ID", doc.RunID, 8)
	PrintKeyValue("Ranked", strconv.Itoa(len(doc.Funds)), 8)
	PrintKeyValue("Output", cfg.ProcessedPath(), 8)
	if len(doc.Funds) > 0 {
		top := doc.Funds[0]
		PrintKeyValue("Top", fmt.Sprintf("%s (score %.2f)", top.Symbol, top.ScoreValue()), 8)
	}
	PrintJobCompletion("Process", time.Since(start))
	return nil
}
