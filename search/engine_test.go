package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gharkhoj/backend/models"
)

// An inverted range must fail during compilation, before the listing
// store is ever touched; a nil collection proves no store call happens.
func TestSearchRejectsInvalidRangeBeforeStoreCall(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.Search(context.Background(), models.SearchRequest{
		MinPrice: 200, MaxPrice: 100,
		HasMinPrice: true, HasMaxPrice: true,
		Page: 1, Limit: 20, Sort: models.SortNewest,
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNearbyRejectsBadCoordinatesBeforeStoreCall(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	_, err := svc.Nearby(ctx, 91, 75, 5, 10)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.Nearby(ctx, 26.9, 181, 5, 10)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.Nearby(ctx, 26.9, 75.8, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.Nearby(ctx, 26.9, 75.8, 101, 10)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestSimilarRejectsMalformedID(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Similar(context.Background(), "not-an-object-id", 5)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestPaginate(t *testing.T) {
	cases := []struct {
		page, limit int
		total       int64
		wantPages   int
	}{
		{1, 20, 0, 0},
		{1, 20, 1, 1},
		{1, 20, 20, 1},
		{1, 20, 21, 2},
		{3, 10, 95, 10},
	}
	for _, tc := range cases {
		p := paginate(tc.page, tc.limit, tc.total)
		assert.Equal(t, tc.wantPages, p.TotalPages, "total=%d", tc.total)
		assert.Equal(t, tc.page, p.CurrentPage)
		assert.Equal(t, tc.total, p.TotalItems)
		assert.Equal(t, tc.limit, p.ItemsPerPage)
	}
}
