package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/gharkhoj/backend/models"
)

func TestParseSearchRequestDefaults(t *testing.T) {
	req, err := ParseSearchRequest(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, DefaultPageSize, req.Limit)
	assert.Equal(t, models.SortRelevance, req.Sort)
	assert.Empty(t, req.Amenities)
}

func TestParseSearchRequestAmenities(t *testing.T) {
	req, err := ParseSearchRequest(url.Values{"amenities": {"Parking, Lift ,,Gym"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Parking", "Lift", "Gym"}, req.Amenities)
}

func TestParseSearchRequestClampsNegatives(t *testing.T) {
	req, err := ParseSearchRequest(url.Values{
		"minPrice": {"-100"},
		"minArea":  {"-5"},
	})
	require.NoError(t, err)
	assert.True(t, req.HasMinPrice)
	assert.Equal(t, int64(0), req.MinPrice)
	assert.Equal(t, 0, req.MinArea)
}

func TestParseSearchRequestRejectsBadNumbers(t *testing.T) {
	for _, field := range []string{"minPrice", "maxArea", "minBedrooms", "page", "limit"} {
		_, err := ParseSearchRequest(url.Values{field: {"abc"}})
		assert.ErrorIs(t, err, ErrInvalidQuery, field)
		assert.Contains(t, err.Error(), field)
	}
}

func TestParseSearchRequestRejectsUnknownSort(t *testing.T) {
	_, err := ParseSearchRequest(url.Values{"sort": {"cheapest"}})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestParseSearchRequestBoundsPaging(t *testing.T) {
	req, err := ParseSearchRequest(url.Values{"page": {"0"}, "limit": {"5000"}})
	require.NoError(t, err)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, MaxPageSize, req.Limit)
}

func TestCompileRejectsInvertedRanges(t *testing.T) {
	cases := []struct {
		name string
		req  models.SearchRequest
	}{
		{"price", models.SearchRequest{MinPrice: 100, MaxPrice: 50, HasMinPrice: true, HasMaxPrice: true}},
		{"area", models.SearchRequest{MinArea: 900, MaxArea: 500, HasMinArea: true, HasMaxArea: true}},
		{"bedrooms", models.SearchRequest{MinBedrooms: 4, MaxBedrooms: 2, HasMinBeds: true, HasMaxBeds: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.req.Page, tc.req.Limit, tc.req.Sort = 1, 20, models.SortNewest
			_, err := Compile(tc.req)
			assert.ErrorIs(t, err, ErrInvalidRange)
			assert.Contains(t, err.Error(), tc.name)
		})
	}
}

func TestCompileBaseFilter(t *testing.T) {
	cq, err := Compile(models.SearchRequest{Page: 1, Limit: 20, Sort: models.SortNewest})
	require.NoError(t, err)

	assert.Equal(t, true, cq.Filter["isActive"])
	assert.Equal(t, models.StatusActive, cq.Filter["status"])
	assert.False(t, cq.HasText)
}

func TestCompileAmenitiesAreConjunctive(t *testing.T) {
	cq, err := Compile(models.SearchRequest{
		Amenities: []string{"Parking", "Gym"},
		Page:      1, Limit: 20, Sort: models.SortNewest,
	})
	require.NoError(t, err)

	clause, ok := cq.Filter["amenities"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, []string{"Parking", "Gym"}, clause["$all"])
}

func TestCompileTextQuery(t *testing.T) {
	cq, err := Compile(models.SearchRequest{
		Query: "  3bhk near metro  ",
		Page:  1, Limit: 20, Sort: models.SortRelevance,
	})
	require.NoError(t, err)

	assert.True(t, cq.HasText)
	clause, ok := cq.Filter["$text"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "3bhk near metro", clause["$search"])
}

func TestCompileShortQueryStillSearches(t *testing.T) {
	cq, err := Compile(models.SearchRequest{Query: "a", Page: 1, Limit: 20, Sort: models.SortRelevance})
	require.NoError(t, err)
	assert.True(t, cq.HasText)
}

func TestCompilePriceRange(t *testing.T) {
	cq, err := Compile(models.SearchRequest{
		MinPrice: 5_000_000, MaxPrice: 10_000_000,
		HasMinPrice: true, HasMaxPrice: true,
		Page: 2, Limit: 10, Sort: models.SortNewest,
	})
	require.NoError(t, err)

	rng, ok := cq.Filter["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, int64(5_000_000), rng["$gte"])
	assert.Equal(t, int64(10_000_000), rng["$lte"])
	assert.Equal(t, int64(10), cq.Skip)
	assert.Equal(t, int64(10), cq.Limit)
}

func TestSortDocRelevanceDegradesToNewest(t *testing.T) {
	withText := sortDoc(models.SortRelevance, true)
	require.Len(t, withText, 2)
	assert.Equal(t, "score", withText[0].Key)
	assert.Equal(t, "createdAt", withText[1].Key)

	noText := sortDoc(models.SortRelevance, false)
	require.Len(t, noText, 1)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, noText)
}

func TestSortDocNumericTieBreaks(t *testing.T) {
	for mode, field := range map[string]string{
		models.SortPriceAsc:  "price",
		models.SortPriceDesc: "price",
		models.SortAreaAsc:   "areaSqFt",
		models.SortAreaDesc:  "areaSqFt",
	} {
		doc := sortDoc(mode, false)
		require.Len(t, doc, 2, mode)
		assert.Equal(t, field, doc[0].Key, mode)
		assert.Equal(t, "createdAt", doc[1].Key, mode)
		assert.Equal(t, -1, doc[1].Value, mode)
	}
}

func TestSortDocPopular(t *testing.T) {
	doc := sortDoc(models.SortPopular, false)
	require.Len(t, doc, 3)
	assert.Equal(t, "views", doc[0].Key)
	assert.Equal(t, "uniqueViews", doc[1].Key)
	assert.Equal(t, "createdAt", doc[2].Key)
	for _, e := range doc {
		assert.Equal(t, -1, e.Value)
	}
}

func TestSortDocOldest(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "createdAt", Value: 1}}, sortDoc(models.SortOldest, false))
}
