package charts

import (
	"fmt"

	"github.com/wonny/fiidash/internal/contracts"
)

// Palette is cycled across pie slices
var Palette = []string{
	"#3498db", "#2ecc71", "#e74c3c", "#f39c12",
	"#9b59b6", "#1abc9c", "#34495e", "#d35400",
}

// BubbleRadius is the fixed radius of every P/VP x DY point
const BubbleRadius = 8

// SectorSlice is one slice of the sector distribution pie
type SectorSlice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// BubblePoint is one fund in the P/VP x DY chart
type BubblePoint struct {
	X       float64 `json:"x"` // P/VP
	Y       float64 `json:"y"` // DY, percent
	R       int     `json:"r"`
	Label   string  `json:"label"`
	Tooltip string  `json:"tooltip"`
}

// SectorDistribution counts funds per sector in order of first appearance.
// Funds without a sector are counted under contracts.Unclassified.
func SectorDistribution(funds []*contracts.FundRecord) []SectorSlice {
	index := make(map[contracts.Sector]int)
	slices := make([]SectorSlice, 0)

	for _, f := range funds {
		if f == nil {
			continue
		}
		sector := f.Sector
		if sector.IsEmpty() {
			sector = contracts.Unclassified
		}

		i, ok := index[sector]
		if !ok {
			i = len(slices)
			index[sector] = i
			slices = append(slices, SectorSlice{
				Label: string(sector),
				Color: Palette[i%len(Palette)],
			})
		}
		slices[i].Count++
	}

	return slices
}

// PVPvsDY maps every fund to a bubble; missing values plot at 0
func PVPvsDY(funds []*contracts.FundRecord) []BubblePoint {
	points := make([]BubblePoint, 0, len(funds))
	for _, f := range funds {
		if f == nil {
			continue
		}
		p := BubblePoint{
			X:     f.PVP(),
			Y:     f.DY() * 100,
			R:     BubbleRadius,
			Label: f.Symbol,
		}
		p.Tooltip = BubbleTooltip(p)
		points = append(points, p)
	}
	return points
}

// BubbleTooltip is the hover text of a bubble
func BubbleTooltip(p BubblePoint) string {
	return fmt.Sprintf("%s: P/VP %.2f, DY %.2f%%", p.Label, p.X, p.Y)
}
