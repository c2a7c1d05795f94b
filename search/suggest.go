package search

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gharkhoj/backend/models"
)

const maxSuggestLimit = 20

// Suggest returns autocomplete candidates for a partial query: deduplicated
// city/locality names plus matching listing titles, each capped at limit.
// Queries shorter than two characters yield empty sets, not an error.
func (s *Service) Suggest(ctx context.Context, q string, limit int) (models.Suggestions, error) {
	sugg := models.Suggestions{
		Locations: []string{},
		Titles:    []models.TitleSuggestion{},
	}

	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < minSuggestQuery {
		return sugg, nil
	}
	if limit < 1 || limit > maxSuggestLimit {
		limit = 10
	}

	pattern := substringRegex(q)

	for _, field := range []string{"city", "locality"} {
		filter := activeFilter()
		filter[field] = pattern

		values, err := s.listings.Distinct(ctx, field, filter)
		if err != nil {
			log.Printf("suggest: distinct %s failed: %v", field, err)
			return sugg, unavailable(err)
		}
		for _, v := range values {
			name, ok := v.(string)
			if !ok || name == "" {
				continue
			}
			sugg.Locations = appendUnique(sugg.Locations, name, limit)
		}
	}

	titleFilter := activeFilter()
	titleFilter["title"] = pattern

	opts := options.Find().
		SetLimit(int64(limit)).
		SetProjection(bson.M{"title": 1}).
		SetSort(bson.D{{Key: "views", Value: -1}})

	cursor, err := s.listings.Find(ctx, titleFilter, opts)
	if err != nil {
		log.Printf("suggest: title find failed: %v", err)
		return sugg, unavailable(err)
	}
	defer cursor.Close(ctx)

	var matches []models.Listing
	if err := cursor.All(ctx, &matches); err != nil {
		log.Printf("suggest: title decode failed: %v", err)
		return sugg, unavailable(err)
	}
	for _, m := range matches {
		sugg.Titles = append(sugg.Titles, models.TitleSuggestion{
			ID:    m.ID.Hex(),
			Title: m.Title,
		})
	}

	return sugg, nil
}

// appendUnique adds v to list if absent (case-insensitive) and below max.
func appendUnique(list []string, v string, max int) []string {
	if len(list) >= max {
		return list
	}
	for _, existing := range list {
		if strings.EqualFold(existing, v) {
			return list
		}
	}
	return append(list, v)
}
