package screening

import (
	"github.com/wonny/fiidash/internal/contracts"
)

// Reasons reported by Check
const (
	ReasonSector = "sector"
	ReasonYield  = "min_yield"
	ReasonPrice  = "max_price"
)

// ApplyFilters returns the funds passing every criterion, input order kept.
// DY is compared in percent, missing DY and price count as 0.
// ⭐ SSOT: 테이블 필터 로직은 여기서만
func ApplyFilters(funds []*contracts.FundRecord, criteria contracts.FilterCriteria) []*contracts.FundRecord {
	passed := make([]*contracts.FundRecord, 0, len(funds))
	for _, f := range funds {
		if f == nil {
			continue
		}
		if Check(f, criteria) == "" {
			passed = append(passed, f)
		}
	}
	return passed
}

// Check returns "" when f passes, otherwise the first failing filter
func Check(f *contracts.FundRecord, criteria contracts.FilterCriteria) string {
	if !criteria.MatchesAllSectors() && string(f.Sector) != criteria.Sector {
		return ReasonSector
	}

	if f.DY()*100 < criteria.MinYield {
		return ReasonYield
	}

	if f.Price() > criteria.MaxPrice {
		return ReasonPrice
	}

	return ""
}

// Summarize counts filtered-out funds per reason
func Summarize(funds []*contracts.FundRecord, criteria contracts.FilterCriteria) map[string]int {
	filtered := make(map[string]int)
	for _, f := range funds {
		if f == nil {
			continue
		}
		if reason := Check(f, criteria); reason != "" {
			filtered[reason]++
		}
	}
	return filtered
}

// SectorOptions lists distinct non-empty sectors in order of first appearance
func SectorOptions(funds []*contracts.FundRecord) []contracts.Sector {
	seen := make(map[contracts.Sector]bool)
	options := make([]contracts.Sector, 0)
	for _, f := range funds {
		if f == nil || f.Sector.IsEmpty() || seen[f.Sector] {
			continue
		}
		seen[f.Sector] = true
		options = append(options, f.Sector)
	}
	return options
}
