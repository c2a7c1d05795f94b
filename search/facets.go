package search

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"

	"github.com/gharkhoj/backend/models"
)

// priceBands are the five fixed price buckets shown in the filter sidebar.
// Boundaries are static configuration, not derived from the data.
var priceBands = []models.PriceBand{
	{Label: "Under 25L", Min: 0, Max: 2_500_000},
	{Label: "25L - 50L", Min: 2_500_000, Max: 5_000_000},
	{Label: "50L - 1Cr", Min: 5_000_000, Max: 10_000_000},
	{Label: "1Cr - 2Cr", Min: 10_000_000, Max: 20_000_000},
	{Label: "Above 2Cr", Min: 20_000_000, Max: 0},
}

// PriceBands returns a copy of the static price bucket configuration.
func PriceBands() []models.PriceBand {
	out := make([]models.PriceBand, len(priceBands))
	copy(out, priceBands)
	return out
}

const facetLimit = 30

// Facets computes filter-sidebar counts over the active listing set. The
// per-category aggregations are independent and fan out concurrently.
func (s *Service) Facets(ctx context.Context) (models.Facets, error) {
	var facets models.Facets

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		facets.Types, err = s.facetCounts(gctx, "$type", false)
		return err
	})
	g.Go(func() error {
		var err error
		facets.Cities, err = s.facetCounts(gctx, "$city", false)
		return err
	})
	g.Go(func() error {
		var err error
		facets.Bedrooms, err = s.facetCounts(gctx, bson.M{"$toString": "$bedrooms"}, false)
		return err
	})
	g.Go(func() error {
		var err error
		facets.Amenities, err = s.facetCounts(gctx, "$amenities", true)
		return err
	})
	g.Go(func() error {
		var err error
		facets.PriceBands, err = s.priceBandCounts(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Printf("facets: aggregation failed: %v", err)
		return facets, unavailable(err)
	}
	return facets, nil
}

// facetCounts groups active listings by the given key expression. unwind
// is set for array-valued fields so each element counts separately.
func (s *Service) facetCounts(ctx context.Context, groupKey interface{}, unwind bool) ([]models.FacetCount, error) {
	pipeline := []bson.M{
		{"$match": activeFilter()},
	}
	if unwind {
		pipeline = append(pipeline, bson.M{"$unwind": "$amenities"})
	}
	pipeline = append(pipeline,
		bson.M{"$group": bson.M{"_id": groupKey, "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}},
		bson.M{"$limit": facetLimit},
	)

	cursor, err := s.listings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := []models.FacetCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *Service) priceBandCounts(ctx context.Context) ([]models.PriceBand, error) {
	bands := PriceBands()
	for i := range bands {
		filter := activeFilter()
		rng := bson.M{"$gte": bands[i].Min}
		if bands[i].Max > 0 {
			rng["$lt"] = bands[i].Max
		}
		filter["price"] = rng

		count, err := s.listings.CountDocuments(ctx, filter)
		if err != nil {
			return nil, err
		}
		bands[i].Count = count
	}
	return bands, nil
}
