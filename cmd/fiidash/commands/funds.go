package commands

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/wonny/fiidash/internal/contracts"
	"github.com/wonny/fiidash/internal/dashboard"
	"github.com/wonny/fiidash/internal/dataset"
	"github.com/wonny/fiidash/internal/screening"
)

// fundsCmd represents the funds command
var fundsCmd = &cobra.Command{
	Use:   "funds",
	Short: "펀드 목록 필터 조회",
	Long: `가공된 파일의 펀드를 대시보드와 같은 필터로 조회합니다.

Filters:
  --sector     섹터 (all 또는 todos = 전체)
  --min-yield  최소 연 DY (%)
  --max-price  최대 가격 (R$)

Example:
  go run ./cmd/fiidash funds --sector Logístico
  go run ./cmd/fiidash funds --min-yield 10 --max-price 12`,
	RunE: runFunds,
}

var (
	fundsSector   string
	fundsMinYield float64
	fundsMaxPrice float64
)

func init() {
	rootCmd.AddCommand(fundsCmd)

	// Flags
	fundsCmd.Flags().StringVar(&fundsSector, "sector", contracts.AllSectors, "섹터 필터")
	fundsCmd.Flags().Float64Var(&fundsMinYield, "min-yield", 0, "최소 DY (%)")
	fundsCmd.Flags().Float64Var(&fundsMaxPrice, "max-price", math.Inf(1), "최대 가격 (R$)")
}

func runFunds(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := dataset.Load(cfg.ProcessedPath())
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	criteria := contracts.FilterCriteria{
		Sector:   fundsSector,
		MinYield: fundsMinYield,
		MaxPrice: fundsMaxPrice,
	}
	funds := screening.ApplyFilters(doc.Funds, criteria)

	columns := []string{"Ticker", "Setor", "Preço", "DY", "P/VP", "Desconto"}
	widths := []int{8, 16, 10, 8, 6, 9}
	PrintTableHeader(columns, widths)
	for _, row := range dashboard.BuildRows(funds) {
		PrintTableRow([]string{row.Symbol, row.Sector, row.Price, row.AnnualDY, row.PVP, row.Discount}, widths)
	}

	fmt.Println()
	PrintInfo(fmt.Sprintf("%d of %d funds", len(funds), len(doc.Funds)))
	for reason, n := range screening.Summarize(doc.Funds, criteria) {
		PrintKeyValue("filtered "+reason, fmt.Sprintf("%d", n), 18)
	}
	return nil
}
