package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gharkhoj/backend/models"
)

func TestSimilarityScore(t *testing.T) {
	ref := &models.Listing{Type: models.TypeFlat, City: "Jaipur", Price: 7_500_000}

	cases := []struct {
		name string
		cand models.Listing
		want int
	}{
		{"identical", models.Listing{Type: "flat", City: "Jaipur", Price: 7_500_000}, 20},
		{"city case-insensitive", models.Listing{Type: "flat", City: "jaipur", Price: 7_500_000}, 20},
		{"price at +10%", models.Listing{Type: "flat", City: "Jaipur", Price: 8_250_000}, 20},
		{"price beyond +10%", models.Listing{Type: "flat", City: "Jaipur", Price: 8_300_000}, 15},
		{"price at -10%", models.Listing{Type: "flat", City: "Jaipur", Price: 6_750_000}, 20},
		{"different city", models.Listing{Type: "flat", City: "Udaipur", Price: 7_500_000}, 15},
		{"different type", models.Listing{Type: "villa", City: "Jaipur", Price: 7_500_000}, 10},
		{"nothing shared", models.Listing{Type: "villa", City: "Udaipur", Price: 20_000_000}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, similarityScore(ref, &tc.cand))
		})
	}
}

// The whole candidate set is scored before anything is cut: a candidate
// that the store happens to return late must still win on merit.
func TestRankSimilarScoresAllCandidatesBeforeTruncating(t *testing.T) {
	ref := &models.Listing{Type: models.TypeFlat, City: "Jaipur", Price: 7_500_000}

	// 59 in-window but off-price candidates ahead of the one exact-price
	// match, which sits deep in store-natural order.
	candidates := make([]models.Listing, 0, 60)
	for i := 0; i < 59; i++ {
		candidates = append(candidates, models.Listing{
			Title: "filler", Type: "flat", City: "Jaipur", Price: 9_000_000,
		})
	}
	best := models.Listing{Title: "exact match", Type: "flat", City: "Jaipur", Price: 7_500_000}
	candidates = append(candidates[:54], append([]models.Listing{best}, candidates[54:]...)...)

	ranked := rankSimilar(ref, candidates, 6)
	assert.Len(t, ranked, 6)
	assert.Equal(t, "exact match", ranked[0].Title)
}

func TestRankSimilarPopularityTieBreak(t *testing.T) {
	ref := &models.Listing{Type: models.TypeFlat, City: "Jaipur", Price: 7_500_000}

	candidates := []models.Listing{
		{Title: "quiet", Type: "flat", City: "Jaipur", Price: 7_500_000, Views: 3},
		{Title: "busy", Type: "flat", City: "Jaipur", Price: 7_500_000, Views: 90},
	}

	ranked := rankSimilar(ref, candidates, 2)
	assert.Equal(t, "busy", ranked[0].Title)
	assert.Equal(t, "quiet", ranked[1].Title)
}

func TestSimilarityScoreZeroPriceReference(t *testing.T) {
	ref := &models.Listing{Type: models.TypePlot, City: "Jaipur", Price: 0}
	cand := &models.Listing{Type: models.TypePlot, City: "Jaipur", Price: 0}
	// No price-closeness bonus when the reference has no price.
	assert.Equal(t, 15, similarityScore(ref, cand))
}
