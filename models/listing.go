package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing statuses. Only active listings are visible to search.
const (
	StatusActive   = "active"
	StatusSold     = "sold"
	StatusRented   = "rented"
	StatusInactive = "inactive"
)

// Listing types.
const (
	TypeFlat       = "flat"
	TypePlot       = "plot"
	TypeVilla      = "villa"
	TypeCommercial = "commercial"
)

// GeoPoint is a GeoJSON point, [lng, lat] order as Mongo expects.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

type Listing struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Type        string             `bson:"type" json:"type"`
	Price       int64              `bson:"price" json:"price"`
	AreaSqFt    int                `bson:"areaSqFt" json:"areaSqFt"`
	Bedrooms    int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms   int                `bson:"bathrooms" json:"bathrooms"`
	City        string             `bson:"city" json:"city"`
	Locality    string             `bson:"locality" json:"locality"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	Location    *GeoPoint          `bson:"location,omitempty" json:"location,omitempty"`
	Amenities   []string           `bson:"amenities" json:"amenities"`
	Facing      string             `bson:"facing,omitempty" json:"facing,omitempty"`
	Furnishing  string             `bson:"furnishing,omitempty" json:"furnishing,omitempty"`
	Parking     int                `bson:"parking" json:"parking"`
	Status      string             `bson:"status" json:"status"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	IsFeatured  bool               `bson:"isFeatured" json:"isFeatured"`
	IsVerified  bool               `bson:"isVerified" json:"isVerified"`
	Views       int64              `bson:"views" json:"views"`
	UniqueViews int64              `bson:"uniqueViews" json:"uniqueViews"`
	Inquiries   int64              `bson:"inquiries" json:"inquiries"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
