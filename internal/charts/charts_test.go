package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fiidash/internal/contracts"
)

func TestSectorDistribution(t *testing.T) {
	funds := []*contracts.FundRecord{
		{Symbol: "A", Sector: contracts.SectorMalls},
		{Symbol: "B"},
		{Symbol: "C", Sector: contracts.SectorMalls},
		{Symbol: "D", Sector: contracts.Sector("Híbrido")},
		nil,
		{Symbol: "E"},
	}

	got := SectorDistribution(funds)

	assert.Equal(t, []SectorSlice{
		{Label: "Shopping", Count: 2, Color: "#3498db"},
		{Label: "Não classificado", Count: 2, Color: "#2ecc71"},
		{Label: "Híbrido", Count: 1, Color: "#e74c3c"},
	}, got)
}

func TestSectorDistribution_PaletteCycles(t *testing.T) {
	var funds []*contracts.FundRecord
	for i := 0; i < len(Palette)+1; i++ {
		funds = append(funds, &contracts.FundRecord{Sector: contracts.Sector(string(rune('a' + i)))})
	}

	got := SectorDistribution(funds)

	require.Len(t, got, len(Palette)+1)
	assert.Equal(t, Palette[0], got[len(Palette)].Color)
}

func TestPVPvsDY(t *testing.T) {
	funds := []*contracts.FundRecord{
		{Symbol: "HGLG11", PriceToBook: contracts.Float(0.95), DividendYield: contracts.Float(0.085)},
		{Symbol: "EMPTY11"},
	}

	got := PVPvsDY(funds)

	require.Len(t, got, 2)
	assert.Equal(t, 0.95, got[0].X)
	assert.InDelta(t, 8.5, got[0].Y, 1e-9)
	assert.Equal(t, BubbleRadius, got[0].R)
	assert.Equal(t, "HGLG11", got[0].Label)
	assert.Equal(t, "HGLG11: P/VP 0.95, DY 8.50%", got[0].Tooltip)
	assert.Equal(t, BubblePoint{X: 0, Y: 0, R: 8, Label: "EMPTY11", Tooltip: "EMPTY11: P/VP 0.00, DY 0.00%"}, got[1])
}

func TestBubbleTooltip(t *testing.T) {
	p := BubblePoint{X: 1.0349, Y: 11.5, Label: "KNRI11"}
	assert.Equal(t, "KNRI11: P/VP 1.03, DY 11.50%", BubbleTooltip(p))
}
