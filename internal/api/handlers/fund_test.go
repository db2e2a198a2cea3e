package handlers

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fiidash/internal/contracts"
)

func TestParseCriteria(t *testing.T) {
	c, err := ParseCriteria(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, contracts.AllSectors, c.Sector)
	assert.True(t, math.IsInf(c.MaxPrice, 1))

	c, err = ParseCriteria(url.Values{"sector": {"Shopping"}, "minYield": {"8"}, "maxPrice": {"12.5"}})
	require.NoError(t, err)
	assert.Equal(t, "Shopping", c.Sector)
	assert.Equal(t, 8.0, c.MinYield)
	assert.Equal(t, 12.5, c.MaxPrice)

	_, err = ParseCriteria(url.Values{"minYield": {"oito"}})
	assert.ErrorContains(t, err, "minYield")
}
