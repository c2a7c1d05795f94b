package analytics

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gharkhoj/backend/models"
)

// Trending window bounds. Defaults match the product behavior; the window
// is tunable per request within these limits.
const (
	DefaultTrendingDays  = 7
	MaxTrendingDays      = 30
	DefaultTrendingLimit = 10
	MaxTrendingLimit     = 50
)

// Aggregator derives trending rankings from durable view-event history.
// It only reads; counters and events are owned by the Recorder.
type Aggregator struct {
	views    *mongo.Collection
	listings *mongo.Collection
}

func NewAggregator(views, listings *mongo.Collection) *Aggregator {
	return &Aggregator{views: views, listings: listings}
}

// TrendScore combines window counts into a single ordering key. Unique
// engagement weighs twice as heavily as raw traffic so repeat or bot-like
// hits do not dominate.
func TrendScore(views, uniqueViews int64) int64 {
	return views + 2*uniqueViews
}

// ComputeTrending aggregates view events over the trailing window into a
// per-listing ranking: unique views descending, raw views breaking ties,
// truncated to limit. Inactive listings are dropped from the result.
func (a *Aggregator) ComputeTrending(ctx context.Context, windowDays, limit int) ([]models.TrendingListing, error) {
	windowDays = clamp(windowDays, 1, MaxTrendingDays)
	if limit < 1 || limit > MaxTrendingLimit {
		limit = DefaultTrendingLimit
	}
	since := time.Now().UTC().AddDate(0, 0, -windowDays)

	cursor, err := a.views.Aggregate(ctx, trendingPipeline(since, limit, a.listings.Name()))
	if err != nil {
		log.Printf("trending: aggregation failed: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []models.TrendingListing{}
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("trending: decode failed: %v", err)
		return nil, err
	}

	for i := range results {
		results[i].TrendScore = TrendScore(results[i].Views, results[i].UniqueViews)
	}
	return results, nil
}

// trendingPipeline groups window events by listing, joins the listing
// document, and keeps only currently active listings.
func trendingPipeline(since time.Time, limit int, listingColl string) []bson.M {
	return []bson.M{
		{"$match": bson.M{"viewedAt": bson.M{"$gte": since}}},
		{"$group": bson.M{
			"_id":   "$propertyId",
			"views": bson.M{"$sum": 1},
			"uniqueViews": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$isUnique", 1, 0},
			}},
			"inquiries": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$interactions.inquirySent", 1, 0},
			}},
		}},
		{"$lookup": bson.M{
			"from":         listingColl,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "listing",
		}},
		{"$unwind": "$listing"},
		{"$match": bson.M{
			"listing.isActive": true,
			"listing.status":   models.StatusActive,
		}},
		{"$sort": bson.D{
			{Key: "uniqueViews", Value: -1},
			{Key: "views", Value: -1},
		}},
		{"$limit": limit},
	}
}
