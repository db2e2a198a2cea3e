package recommend

import (
	"fmt"

	"github.com/wonny/fiidash/internal/contracts"
)

// NotAvailable is printed for a missing P/VP
const NotAvailable = "N/A"

// FormatRecommendation renders one list item:
// "{symbol} - DY: 8.50% - P/VP: 0.97". A missing P/VP prints N/A,
// a missing DY prints 0.00%.
func FormatRecommendation(f *contracts.FundRecord) string {
	pvp := NotAvailable
	if f.PriceToBook != nil {
		pvp = fmt.Sprintf("%.2f", *f.PriceToBook)
	}
	return fmt.Sprintf("%s - DY: %.2f%% - P/VP: %s", f.Symbol, f.DY()*100, pvp)
}

// FormatAll renders every entry of a list, in order
func FormatAll(funds []*contracts.FundRecord) []string {
	out := make([]string, 0, len(funds))
	for _, f := range funds {
		out = append(out, FormatRecommendation(f))
	}
	return out
}
