package search

import (
	"context"
	"log"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gharkhoj/backend/models"
)

// Price window for similar-listing candidates, relative to the reference.
const (
	similarPriceLow  = 0.7
	similarPriceHigh = 1.3
)

// Similar finds listings comparable to the reference: same type and city,
// price within [0.7x, 1.3x] of the reference, excluding the reference
// itself, ranked by similarity score with popularity as the tie-break.
func (s *Service) Similar(ctx context.Context, id string, limit int) ([]models.Listing, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, invalidQuery("id", "not a valid listing id")
	}
	if limit < 1 {
		limit = 6
	}

	var ref models.Listing
	err = s.listings.FindOne(ctx, bson.M{"_id": objID}).Decode(&ref)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("similar: load reference %s failed: %v", id, err)
		return nil, unavailable(err)
	}

	filter := activeFilter()
	filter["_id"] = bson.M{"$ne": ref.ID}
	filter["type"] = ref.Type
	filter["city"] = substringRegex(ref.City)
	filter["price"] = bson.M{
		"$gte": int64(float64(ref.Price) * similarPriceLow),
		"$lte": int64(float64(ref.Price) * similarPriceHigh),
	}

	cursor, err := s.listings.Find(ctx, filter)
	if err != nil {
		log.Printf("similar: find failed: %v", err)
		return nil, unavailable(err)
	}
	defer cursor.Close(ctx)

	var candidates []models.Listing
	if err := cursor.All(ctx, &candidates); err != nil {
		log.Printf("similar: decode failed: %v", err)
		return nil, unavailable(err)
	}

	return rankSimilar(&ref, candidates, limit), nil
}

// rankSimilar orders the full candidate set by similarity score with
// popularity as the tie-break, then truncates. Truncation must come
// after the sort so a high-scoring candidate is never dropped on
// store-natural ordering.
func rankSimilar(ref *models.Listing, candidates []models.Listing, limit int) []models.Listing {
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := similarityScore(ref, &candidates[i]), similarityScore(ref, &candidates[j])
		if si != sj {
			return si > sj
		}
		return candidates[i].Views > candidates[j].Views
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// similarityScore rewards exact type match (+10), exact city match (+5),
// and price within ±10% of the reference (+5).
func similarityScore(ref, cand *models.Listing) int {
	score := 0
	if cand.Type == ref.Type {
		score += 10
	}
	if strings.EqualFold(cand.City, ref.City) {
		score += 5
	}
	if ref.Price > 0 {
		diff := float64(cand.Price-ref.Price) / float64(ref.Price)
		if diff >= -0.1 && diff <= 0.1 {
			score += 5
		}
	}
	return score
}
