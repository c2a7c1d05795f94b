package search

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gharkhoj/backend/models"
)

// Service executes compiled queries against the listing collection.
type Service struct {
	listings *mongo.Collection
}

func NewService(listings *mongo.Collection) *Service {
	return &Service{listings: listings}
}

// Search compiles the request, counts the full match set, and returns one
// page of ranked results. Validation failures surface before any store
// call; store failures surface as ErrSearchUnavailable without retry.
func (s *Service) Search(ctx context.Context, req models.SearchRequest) (models.SearchResponse, error) {
	var resp models.SearchResponse

	cq, err := Compile(req)
	if err != nil {
		return resp, err
	}

	total, err := s.listings.CountDocuments(ctx, cq.Filter)
	if err != nil {
		log.Printf("search: count failed: %v", err)
		return resp, unavailable(err)
	}

	findOpts := options.Find().
		SetSort(cq.Sort).
		SetSkip(cq.Skip).
		SetLimit(cq.Limit)
	if cq.HasText && req.Sort == models.SortRelevance {
		findOpts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
	}

	cursor, err := s.listings.Find(ctx, cq.Filter, findOpts)
	if err != nil {
		log.Printf("search: find failed: %v", err)
		return resp, unavailable(err)
	}
	defer cursor.Close(ctx)

	results := []models.Listing{}
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("search: decode failed: %v", err)
		return resp, unavailable(err)
	}

	resp.Results = results
	resp.Pagination = paginate(req.Page, req.Limit, total)
	return resp, nil
}

// paginate derives page metadata from the un-paginated match count.
func paginate(page, limit int, total int64) models.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return models.Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}
