package recommend

import (
	"sort"

	"github.com/wonny/fiidash/internal/contracts"
)

// List sizes per profile
const (
	ConservativeSize = 3

	moderateReceivables = 2
	moderateLogistics   = 2
	moderateMalls       = 1

	aggressiveLogistics = 2
	aggressiveMalls     = 2
	aggressiveOffices   = 1

	// Offices enter the aggressive list only above this discount (percent)
	MinOfficeDiscount = 10.0
)

// Groups is the sector partition of a dataset, input order preserved
type Groups struct {
	Receivables  []*contracts.FundRecord
	Logistics    []*contracts.FundRecord
	Malls        []*contracts.FundRecord
	Offices      []*contracts.FundRecord
	FundsOfFunds []*contracts.FundRecord // partitioned, not consumed by any profile
}

// Partition splits funds by exact sector label.
// Funds outside the known sectors are dropped.
func Partition(funds []*contracts.FundRecord) Groups {
	var g Groups
	for _, f := range funds {
		if f == nil {
			continue
		}
		switch f.Sector {
		case contracts.SectorReceivables:
			g.Receivables = append(g.Receivables, f)
		case contracts.SectorLogistics:
			g.Logistics = append(g.Logistics, f)
		case contracts.SectorMalls:
			g.Malls = append(g.Malls, f)
		case contracts.SectorOffices:
			g.Offices = append(g.Offices, f)
		case contracts.SectorFundsOfFunds:
			g.FundsOfFunds = append(g.FundsOfFunds, f)
		}
	}
	return g
}

// Classify builds the conservative, moderate and aggressive lists.
// It never mutates funds and never fails; short groups give short lists.
// ⭐ SSOT: 추천 규칙은 여기서만
func Classify(funds []*contracts.FundRecord) contracts.Recommendations {
	g := Partition(funds)

	moderate := make([]*contracts.FundRecord, 0, moderateReceivables+moderateLogistics+moderateMalls)
	moderate = append(moderate, head(g.Receivables, moderateReceivables)...)
	moderate = append(moderate, head(g.Logistics, moderateLogistics)...)
	moderate = append(moderate, head(g.Malls, moderateMalls)...)

	aggressive := make([]*contracts.FundRecord, 0, aggressiveLogistics+aggressiveMalls+aggressiveOffices)
	aggressive = append(aggressive, head(g.Logistics, aggressiveLogistics)...)
	aggressive = append(aggressive, head(g.Malls, aggressiveMalls)...)
	aggressive = append(aggressive, head(discountedOffices(g.Offices), aggressiveOffices)...)

	return contracts.Recommendations{
		Conservative: conservative(g.Receivables),
		Moderate:     moderate,
		Aggressive:   aggressive,
	}
}

// conservative sorts a copy of receivables by DY descending.
// Ties keep input order (stable sort).
func conservative(receivables []*contracts.FundRecord) []*contracts.FundRecord {
	sorted := make([]*contracts.FundRecord, len(receivables))
	copy(sorted, receivables)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DY() > sorted[j].DY()
	})

	return head(sorted, ConservativeSize)
}

func discountedOffices(offices []*contracts.FundRecord) []*contracts.FundRecord {
	out := make([]*contracts.FundRecord, 0, len(offices))
	for _, f := range offices {
		if f.Discount() > MinOfficeDiscount {
			out = append(out, f)
		}
	}
	return out
}

// head returns a fresh slice with at most n leading elements
func head(funds []*contracts.FundRecord, n int) []*contracts.FundRecord {
	if n > len(funds) {
		n = len(funds)
	}
	out := make([]*contracts.FundRecord, n)
	copy(out, funds[:n])
	return out
}
