package analytics

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gharkhoj/backend/models"
)

// PropertyStats summarizes engagement on one listing over the trailing
// window: counts, averages, and source/device breakdowns.
func (a *Aggregator) PropertyStats(ctx context.Context, propertyID primitive.ObjectID, windowDays int) (models.ViewStats, error) {
	windowDays = clamp(windowDays, 1, MaxTrendingDays)
	since := time.Now().UTC().AddDate(0, 0, -windowDays)

	stats := models.ViewStats{
		PropertyID: propertyID,
		WindowDays: windowDays,
		BySource:   []models.FacetCount{},
		ByDevice:   []models.FacetCount{},
	}

	match := bson.M{"propertyId": propertyID, "viewedAt": bson.M{"$gte": since}}

	summary := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":           nil,
			"views":         bson.M{"$sum": 1},
			"uniqueViews":   bson.M{"$sum": bson.M{"$cond": bson.A{"$isUnique", 1, 0}}},
			"inquiries":     bson.M{"$sum": bson.M{"$cond": bson.A{"$interactions.inquirySent", 1, 0}}},
			"highIntent":    bson.M{"$sum": bson.M{"$cond": bson.A{"$isHighIntent", 1, 0}}},
			"bounces":       bson.M{"$sum": bson.M{"$cond": bson.A{"$bounced", 1, 0}}},
			"avgDuration":   bson.M{"$avg": "$viewDuration"},
			"avgScroll":     bson.M{"$avg": "$scrollDepth"},
			"avgEngagement": bson.M{"$avg": "$engagementScore"},
		}},
	}

	cursor, err := a.views.Aggregate(ctx, summary)
	if err != nil {
		log.Printf("property stats: aggregation failed: %v", err)
		return stats, err
	}
	defer cursor.Close(ctx)

	var rows []models.ViewStats
	if err := cursor.All(ctx, &rows); err != nil {
		log.Printf("property stats: decode failed: %v", err)
		return stats, err
	}
	if len(rows) > 0 {
		rows[0].PropertyID = propertyID
		rows[0].WindowDays = windowDays
		stats = rows[0]
	}

	for _, breakdown := range []struct {
		field  string
		target *[]models.FacetCount
	}{
		{"$source", &stats.BySource},
		{"$device", &stats.ByDevice},
	} {
		counts, err := a.viewCounts(ctx, match, breakdown.field)
		if err != nil {
			log.Printf("property stats: %s breakdown failed: %v", breakdown.field, err)
			return stats, err
		}
		*breakdown.target = counts
	}

	return stats, nil
}

func (a *Aggregator) viewCounts(ctx context.Context, match bson.M, groupKey string) ([]models.FacetCount, error) {
	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{"_id": groupKey, "count": bson.M{"$sum": 1}}},
		{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}},
	}

	cursor, err := a.views.Aggregate(ctx, pipeline)
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
