package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceBandsAreFiveContiguousBuckets(t *testing.T) {
	bands := PriceBands()
	require.Len(t, bands, 5)

	assert.Equal(t, int64(0), bands[0].Min)
	for i := 1; i < len(bands); i++ {
		assert.Equal(t, bands[i-1].Max, bands[i].Min, "band %d does not touch band %d", i-1, i)
	}
	assert.Equal(t, int64(0), bands[len(bands)-1].Max, "last band is unbounded")
}

func TestPriceBandsReturnsCopy(t *testing.T) {
	bands := PriceBands()
	bands[0].Count = 999
	assert.Equal(t, int64(0), PriceBands()[0].Count)
}
