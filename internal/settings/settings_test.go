package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
	assert.InDelta(t, 1.0, Default().Scoring.WeightSum(), 1e-9)
}

func TestLoadRepositoryFile(t *testing.T) {
	path := "../../config/pipeline.yaml"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("config file not found")
	}

	s, err := Load(path)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Scoring, s.Scoring)
	assert.Equal(t, def.Ranking, s.Ranking)
	assert.Equal(t, def.Collect.BatchSize, s.Collect.BatchSize)
	assert.Equal(t, def.Collect.PriceCeiling, s.Collect.PriceCeiling)
	assert.Empty(t, s.Collect.Tickers)
}

func TestParseOverridesDefaults(t *testing.T) {
	s, err := Parse([]byte(`
collect:
  price_ceiling: 150
  tickers: [HGLG11, MXRF11]
ranking:
  limit: 10
`))
	require.NoError(t, err)

	assert.Equal(t, 150.0, s.Collect.PriceCeiling)
	assert.Equal(t, []string{"HGLG11", "MXRF11"}, s.Collect.Tickers)
	assert.Equal(t, 10, s.Ranking.Limit)
	// untouched keys keep their defaults
	assert.Equal(t, 20, s.Collect.BatchSize)
	assert.Equal(t, 0.5, s.Scoring.WeightDY)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("ranking:\n  limt: 10\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		field  string
	}{
		{"batch size", func(s *Settings) { s.Collect.BatchSize = 0 }, "collect.batch_size"},
		{"price ceiling", func(s *Settings) { s.Collect.PriceCeiling = -1 }, "collect.price_ceiling"},
		{"reference pvp", func(s *Settings) { s.Scoring.ReferencePVP = 0 }, "scoring.reference_pvp"},
		{"negative weight", func(s *Settings) { s.Scoring.WeightDY = -0.5; s.Scoring.WeightDiscount = 1.3 }, "scoring.weight_dy"},
		{"weight sum", func(s *Settings) { s.Scoring.WeightDY = 0.9 }, "scoring"},
		{"divisor", func(s *Settings) { s.Scoring.LiquidityDivisor = 0 }, "scoring.liquidity_divisor"},
		{"limit", func(s *Settings) { s.Ranking.Limit = 0 }, "ranking.limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)

			err := Validate(s)
			var verr ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	s, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestParseEmptyDocument(t *testing.T) {
	s, err := Parse([]byte("# only comments\n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestHash(t *testing.T) {
	h1, err := Hash(Default())
	require.NoError(t, err)
	assert.Len(t, h1, 64)

	h2, _ := Hash(Default())
	assert.Equal(t, h1, h2)

	changed := Default()
	changed.Ranking.Limit = 31
	h3, _ := Hash(changed)
	assert.NotEqual(t, h1, h3)
}
