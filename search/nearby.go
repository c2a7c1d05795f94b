package search

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gharkhoj/backend/models"
)

const maxNearbyRadiusKm = 100

// Nearby returns active listings whose coordinate falls within radiusKm of
// the given point, nearest first. The radius is converted to meters for
// the 2dsphere index.
func (s *Service) Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]models.Listing, error) {
	if lat < -90 || lat > 90 {
		return nil, invalidQuery("lat", "latitude out of range")
	}
	if lng < -180 || lng > 180 {
		return nil, invalidQuery("lng", "longitude out of range")
	}
	if radiusKm <= 0 || radiusKm > maxNearbyRadiusKm {
		return nil, invalidQuery("radiusKm", "radius must be in (0, 100]")
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	filter := activeFilter()
	filter["location"] = bson.M{
		"$nearSphere": bson.M{
			"$geometry":    models.NewGeoPoint(lat, lng),
			"$maxDistance": radiusKm * 1000,
		},
	}

	// $nearSphere already orders nearest-first; no explicit sort.
	cursor, err := s.listings.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		log.Printf("nearby: find failed: %v", err)
		return nil, unavailable(err)
	}
	defer cursor.Close(ctx)

	results := []models.Listing{}
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("nearby: decode failed: %v", err)
		return nil, unavailable(err)
	}
	return results, nil
}
