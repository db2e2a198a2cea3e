package contracts

import "math"

// AllSectors selects every sector in FilterCriteria
const AllSectors = "all"

// FilterCriteria is the table filter state.
// MinYield is a percentage (8 = 8%), MaxPrice is in BRL.
type FilterCriteria struct {
	Sector   string  `json:"sector"`
	MinYield float64 `json:"minYield"`
	MaxPrice float64 `json:"maxPrice"`
}

// DefaultFilterCriteria matches every fund
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		Sector:   AllSectors,
		MinYield: 0,
		MaxPrice: math.Inf(1),
	}
}

// MatchesAllSectors reports whether the sector filter is disabled.
// "todos" is accepted as an alias of AllSectors.
func (c FilterCriteria) MatchesAllSectors() bool {
	return c.Sector == "" || c.Sector == AllSectors || c.Sector == "todos"
}
