package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/fiidash/pkg/logger"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "brapi 시세 수집",
	Long: `brapi.dev에서 FII 목록과 지표를 수집해 원천 파일로 저장합니다.

이 명령어는:
- 펀드 목록 조회 (설정에 tickers가 있으면 그 목록만)
- batch_size 단위로 시세/지표 조회
- 섹터가 없는 펀드는 Fundamentus에서 보완
- price_ceiling 미만 펀드만 data/fiis.json에 저장
- data/historico/ 에 스냅샷 보관

Example:
  go run ./cmd/fiidash fetch
  go run ./cmd/fiidash fetch --settings config/pipeline.yaml`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
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
		JobType:   "Fetch FII quotes",
		Tag:       "Fetch",
		Timestamp: timestamp(),
		Source:    cfg.Brapi.BaseURL,
	})

	start := time.Now()
	doc, archive, err := runner.Fetch(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	PrintKeyValue("Funds", strconv.Itoa(len(doc.Funds)), 8)
	PrintKeyValue("Output", cfg.RawPath(), 8)
	PrintKeyValue("Archive", archive, 8)
	PrintJobCompletion("Fetch", time.Since(start))
	return nil
}
