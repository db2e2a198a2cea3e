package pipeline

import "github.com/wonny/fiidash/internal/contracts"

// Fields reported missing by Validate
const (
	MissingSymbol = "symbol"
	MissingPrice  = "regularMarketPrice"
	MissingDY     = "dividendYield"
	MissingSector = "sector"
)

// Validate returns the first expected field f lacks, or "" when f is complete.
// Incomplete records are still scored; missing values count as 0.
func Validate(f *contracts.FundRecord) string {
	switch {
	case f == nil || f.Symbol == "":
		return MissingSymbol
	case f.RegularMarketPrice == nil:
		return MissingPrice
	case f.DividendYield == nil:
		return MissingDY
	case f.Sector.IsEmpty():
		return MissingSector
	}
	return ""
}

// CountIncomplete counts incomplete records by their first missing field
func CountIncomplete(funds []*contracts.FundRecord) map[string]int {
	counts := make(map[string]int)
	for _, f := range funds {
		if reason := Validate(f); reason != "" {
			counts[reason]++
		}
	}
	return counts
}
