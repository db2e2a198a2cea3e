package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/fiidash/internal/contracts"
	"github.com/wonny/fiidash/internal/dataset"
	"github.com/wonny/fiidash/internal/recommend"
)

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "투자 성향별 추천 목록",
	Long: `가공된 파일을 읽어 세 가지 성향별 추천 목록을 출력합니다.

성향:
  conservador - 수익증권(Recebíveis) 중 DY 상위 3개
  moderado    - 수익증권 2 + 물류 2 + 쇼핑몰 1
  arrojado    - 물류 2 + 쇼핑몰 2 + 할인율 10% 초과 오피스 1

Example:
  go run ./cmd/fiidash recommend
  go run ./cmd/fiidash recommend --file data/fiis_processados.json --json`,
	RunE: runRecommend,
}

var (
	recommendFile string
	recommendJSON bool
)

func init() {
	rootCmd.AddCommand(recommendCmd)

	// Flags
	recommendCmd.Flags().StringVar(&recommendFile, "file", "", "dataset file (default processed file)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "JSON 출력")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	path := recommendFile
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path = cfg.ProcessedPath()
	}

	doc, err := dataset.Load(path)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	recs := recommend.Classify(doc.Funds)

	if recommendJSON {
		out := make(map[contracts.Profile][]string, len(contracts.Profiles()))
		for _, p := range contracts.Profiles() {
			out[p] = recommend.FormatAll(recs.ByProfile(p))
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(out)
	}

	PrintDoubleSeparator()
	fmt.Printf("  Recommendations (%d funds, %s)\n", len(doc.Funds), doc.UpdatedAt)
	for _, p := range contracts.Profiles() {
		PrintSeparator()
		fmt.Printf("  %s\n", p)
		items := recommend.FormatAll(recs.ByProfile(p))
		if len(items) == 0 {
			PrintInfo("No funds for this profile")
			continue
		}
		PrintNumberedList(items)
	}
	PrintDoubleSeparator()
	return nil
}
