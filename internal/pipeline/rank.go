package pipeline

import (
	"sort"

	"github.com/wonny/fiidash/internal/contracts"
)

// Rank sorts by score descending, ties keep input order, and returns the
// first limit records (all when limit <= 0). The input slice is not reordered.
func Rank(funds []*contracts.FundRecord, limit int) []*contracts.FundRecord {
	ranked := make([]*contracts.FundRecord, 0, len(funds))
	for _, f := range funds {
		if f != nil {
			ranked = append(ranked, f)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ScoreValue() > ranked[j].ScoreValue()
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
