package search

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gharkhoj/backend/models"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// minSuggestQuery is the shortest text considered for autocomplete.
	minSuggestQuery = 2
)

// CompiledQuery is the normalized filter/sort specification executed by the
// ranking engine against the listing store.
type CompiledQuery struct {
	Filter  bson.M
	Sort    bson.D
	Skip    int64
	Limit   int64
	HasText bool
}

// ParseSearchRequest turns raw query parameters into a SearchRequest.
// Numeric values are clamped to non-negative; unparseable values and
// unknown sort modes are rejected before any store call.
func ParseSearchRequest(query url.Values) (models.SearchRequest, error) {
	var req models.SearchRequest

	req.Query = strings.TrimSpace(query.Get("q"))
	req.Type = strings.ToLower(strings.TrimSpace(query.Get("type")))
	req.City = strings.TrimSpace(query.Get("city"))
	req.Locality = strings.TrimSpace(query.Get("locality"))
	req.Facing = strings.ToLower(strings.TrimSpace(query.Get("facing")))
	req.Furnishing = strings.ToLower(strings.TrimSpace(query.Get("furnishing")))

	if raw := query.Get("amenities"); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				req.Amenities = append(req.Amenities, a)
			}
		}
	}

	var err error
	if req.MinPrice, req.HasMinPrice, err = parseInt64Param(query, "minPrice"); err != nil {
		return req, err
	}
	if req.MaxPrice, req.HasMaxPrice, err = parseInt64Param(query, "maxPrice"); err != nil {
		return req, err
	}
	if req.MinArea, req.HasMinArea, err = parseIntParam(query, "minArea"); err != nil {
		return req, err
	}
	if req.MaxArea, req.HasMaxArea, err = parseIntParam(query, "maxArea"); err != nil {
		return req, err
	}
	if req.MinBedrooms, req.HasMinBeds, err = parseIntParam(query, "minBedrooms"); err != nil {
		return req, err
	}
	if req.MaxBedrooms, req.HasMaxBeds, err = parseIntParam(query, "maxBedrooms"); err != nil {
		return req, err
	}
	if req.MinParking, _, err = parseIntParam(query, "minParking"); err != nil {
		return req, err
	}

	for _, field := range []string{"featured", "verified"} {
		raw := query.Get(field)
		if raw == "" {
			continue
		}
		b, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			return req, invalidQuery(field, "not a boolean")
		}
		if field == "featured" {
			req.Featured = &b
		} else {
			req.Verified = &b
		}
	}

	req.Page = 1
	if raw := query.Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return req, invalidQuery("page", "not a number")
		}
		if p > 1 {
			req.Page = p
		}
	}

	req.Limit = DefaultPageSize
	if raw := query.Get("limit"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil {
			return req, invalidQuery("limit", "not a number")
		}
		if l >= 1 {
			req.Limit = l
		}
	}
	if req.Limit > MaxPageSize {
		req.Limit = MaxPageSize
	}

	req.Sort = models.SortRelevance
	if raw := strings.ToLower(strings.TrimSpace(query.Get("sort"))); raw != "" {
		if !models.ValidSort(raw) {
			return req, invalidQuery("sort", "unknown sort mode")
		}
		req.Sort = raw
	}

	return req, nil
}

// Compile validates a SearchRequest and produces the filter/sort spec.
// Range violations (min > max) fail with ErrInvalidRange before any store
// call is made.
func Compile(req models.SearchRequest) (CompiledQuery, error) {
	var cq CompiledQuery

	if req.HasMinPrice && req.HasMaxPrice && req.MinPrice > req.MaxPrice {
		return cq, invalidRange("price")
	}
	if req.HasMinArea && req.HasMaxArea && req.MinArea > req.MaxArea {
		return cq, invalidRange("area")
	}
	if req.HasMinBeds && req.HasMaxBeds && req.MinBedrooms > req.MaxBedrooms {
		return cq, invalidRange("bedrooms")
	}

	filter := activeFilter()

	query := strings.TrimSpace(req.Query)
	cq.HasText = query != ""
	if cq.HasText {
		filter["$text"] = bson.M{"$search": query}
	}

	if req.Type != "" {
		filter["type"] = req.Type
	}
	if rng := rangeClauseInt64(req.MinPrice, req.MaxPrice, req.HasMinPrice, req.HasMaxPrice); rng != nil {
		filter["price"] = rng
	}
	if rng := rangeClauseInt(req.MinArea, req.MaxArea, req.HasMinArea, req.HasMaxArea); rng != nil {
		filter["areaSqFt"] = rng
	}
	if rng := rangeClauseInt(req.MinBedrooms, req.MaxBedrooms, req.HasMinBeds, req.HasMaxBeds); rng != nil {
		filter["bedrooms"] = rng
	}
	if req.City != "" {
		filter["city"] = substringRegex(req.City)
	}
	if req.Locality != "" {
		filter["locality"] = substringRegex(req.Locality)
	}
	if len(req.Amenities) > 0 {
		// Conjunctive: the listing must carry every requested amenity.
		filter["amenities"] = bson.M{"$all": req.Amenities}
	}
	if req.Facing != "" {
		filter["facing"] = req.Facing
	}
	if req.Furnishing != "" {
		filter["furnishing"] = req.Furnishing
	}
	if req.MinParking > 0 {
		filter["parking"] = bson.M{"$gte": req.MinParking}
	}
	if req.Featured != nil {
		filter["isFeatured"] = *req.Featured
	}
	if req.Verified != nil {
		filter["isVerified"] = *req.Verified
	}

	cq.Filter = filter
	cq.Sort = sortDoc(req.Sort, cq.HasText)
	cq.Skip = int64(req.Page-1) * int64(req.Limit)
	cq.Limit = int64(req.Limit)
	return cq, nil
}

// sortDoc resolves a sort mode into a Mongo sort document. Relevance with
// no text query degrades to newest; every mode tie-breaks on createdAt
// descending for reproducible ordering, except the pure time sorts.
func sortDoc(mode string, hasText bool) bson.D {
	switch mode {
	case models.SortRelevance:
		if hasText {
			return bson.D{
				{Key: "score", Value: bson.M{"$meta": "textScore"}},
				{Key: "createdAt", Value: -1},
			}
		}
		return bson.D{{Key: "createdAt", Value: -1}}
	case models.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}, {Key: "createdAt", Value: -1}}
	case models.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}, {Key: "createdAt", Value: -1}}
	case models.SortAreaAsc:
		return bson.D{{Key: "areaSqFt", Value: 1}, {Key: "createdAt", Value: -1}}
	case models.SortAreaDesc:
		return bson.D{{Key: "areaSqFt", Value: -1}, {Key: "createdAt", Value: -1}}
	case models.SortOldest:
		return bson.D{{Key: "createdAt", Value: 1}}
	case models.SortPopular:
		return bson.D{
			{Key: "views", Value: -1},
			{Key: "uniqueViews", Value: -1},
			{Key: "createdAt", Value: -1},
		}
	default: // newest
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// activeFilter is the base predicate every search shares: soft-deleted and
// non-active listings are never visible.
func activeFilter() bson.M {
	return bson.M{"isActive": true, "status": models.StatusActive}
}

func substringRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func rangeClauseInt64(min, max int64, hasMin, hasMax bool) bson.M {
	clause := bson.M{}
	if hasMin {
		clause["$gte"] = min
	}
	if hasMax {
		clause["$lte"] = max
	}
	if len(clause) == 0 {
		return nil
	}
	return clause
}

func rangeClauseInt(min, max int, hasMin, hasMax bool) bson.M {
	clause := bson.M{}
	if hasMin {
		clause["$gte"] = min
	}
	if hasMax {
		clause["$lte"] = max
	}
	if len(clause) == 0 {
		return nil
	}
	return clause
}

func parseInt64Param(query url.Values, field string) (int64, bool, error) {
	raw := strings.TrimSpace(query.Get(field))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, invalidQuery(field, "not a number")
	}
	if v < 0 {
		v = 0
	}
	return v, true, nil
}

func parseIntParam(query url.Values, field string) (int, bool, error) {
	raw := strings.TrimSpace(query.Get(field))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, invalidQuery(field, "not a number")
	}
	if v < 0 {
		v = 0
	}
	return v, true, nil
}
