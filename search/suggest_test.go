package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sub-length queries return empty sets without touching the store.
func TestSuggestShortQueryReturnsEmpty(t *testing.T) {
	svc := NewService(nil)

	// "ज" is one character in several bytes; it must not pass the
	// two-character gate on byte length alone.
	for _, q := range []string{"", "a", " x ", "  ", "ज"} {
		sugg, err := svc.Suggest(context.Background(), q, 10)
		require.NoError(t, err, "q=%q", q)
		assert.Empty(t, sugg.Locations)
		assert.Empty(t, sugg.Titles)
		assert.NotNil(t, sugg.Locations)
		assert.NotNil(t, sugg.Titles)
	}
}

func TestAppendUnique(t *testing.T) {
	list := []string{"Jaipur"}

	list = appendUnique(list, "jaipur", 5)
	assert.Len(t, list, 1, "case-insensitive duplicate kept out")

	list = appendUnique(list, "Udaipur", 5)
	assert.Equal(t, []string{"Jaipur", "Udaipur"}, list)

	list = appendUnique(list, "Jodhpur", 2)
	assert.Len(t, list, 2, "cap respected")
}
