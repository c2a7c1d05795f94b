package models

// Sort modes accepted by the search endpoint.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortAreaAsc   = "area_asc"
	SortAreaDesc  = "area_desc"
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPopular   = "popular"
)

// ValidSort reports whether s is a known sort mode.
func ValidSort(s string) bool {
	switch s {
	case SortRelevance, SortPriceAsc, SortPriceDesc, SortAreaAsc, SortAreaDesc,
		SortNewest, SortOldest, SortPopular:
		return true
	}
	return false
}

// SearchRequest is the normalized search input after query-param parsing.
// Zero values mean "filter absent"; explicit zero bounds are carried via
// the Has* flags set by the parser.
type SearchRequest struct {
	Query       string   `json:"q,omitempty"`
	Type        string   `json:"type,omitempty"`
	MinPrice    int64    `json:"minPrice,omitempty"`
	MaxPrice    int64    `json:"maxPrice,omitempty"`
	HasMinPrice bool     `json:"-"`
	HasMaxPrice bool     `json:"-"`
	MinArea     int      `json:"minArea,omitempty"`
	MaxArea     int      `json:"maxArea,omitempty"`
	HasMinArea  bool     `json:"-"`
	HasMaxArea  bool     `json:"-"`
	MinBedrooms int      `json:"minBedrooms,omitempty"`
	MaxBedrooms int      `json:"maxBedrooms,omitempty"`
	HasMinBeds  bool     `json:"-"`
	HasMaxBeds  bool     `json:"-"`
	City        string   `json:"city,omitempty"`
	Locality    string   `json:"locality,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	Facing      string   `json:"facing,omitempty"`
	Furnishing  string   `json:"furnishing,omitempty"`
	MinParking  int      `json:"minParking,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
	Verified    *bool    `json:"verified,omitempty"`
	Page        int      `json:"page"`
	Limit       int      `json:"limit"`
	Sort        string   `json:"sort"`
}

// Pagination describes one page of a larger result set.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// SearchResponse is the payload returned by GET /api/search.
type SearchResponse struct {
	Results    []Listing  `json:"results"`
	Pagination Pagination `json:"pagination"`
}

// Suggestions is the autocomplete payload: deduplicated location strings
// plus matching listing titles.
type Suggestions struct {
	Locations []string          `json:"locations"`
	Titles    []TitleSuggestion `json:"titles"`
}

// TitleSuggestion pairs a matching listing title with its id so the client
// can deep-link straight to the detail page.
type TitleSuggestion struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// FacetCount is one category bucket, e.g. a city and its listing count.
type FacetCount struct {
	Value string `bson:"_id" json:"value"`
	Count int64  `bson:"count" json:"count"`
}

// PriceBand is a fixed price bucket with its listing count.
type PriceBand struct {
	Label string `json:"label"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max,omitempty"` // 0 means unbounded
	Count int64  `json:"count"`
}

// Facets holds the filter-sidebar counts over the active listing set.
type Facets struct {
	Types      []FacetCount `json:"types"`
	Cities     []FacetCount `json:"cities"`
	Bedrooms   []FacetCount `json:"bedrooms"`
	Amenities  []FacetCount `json:"amenities"`
	PriceBands []PriceBand  `json:"priceBands"`
}
