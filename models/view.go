package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Traffic sources for a property view.
const (
	SourceDirect       = "direct"
	SourceSearch       = "search"
	SourceFeatured     = "featured"
	SourceTrending     = "trending"
	SourceSimilar      = "similar"
	SourceProfile      = "profile"
	SourceFavorites    = "favorites"
	SourceNotification = "notification"
	SourceExternal     = "external"
	SourceOther        = "other"
)

// ValidSource reports whether s is a known traffic source.
func ValidSource(s string) bool {
	switch s {
	case SourceDirect, SourceSearch, SourceFeatured, SourceTrending, SourceSimilar,
		SourceProfile, SourceFavorites, SourceNotification, SourceExternal, SourceOther:
		return true
	}
	return false
}

// Interactions is the bundle of engagement signals on a single view.
// Fields arrive either with the initial event or as late patches.
type Interactions struct {
	ImageGallery    bool `bson:"imageGallery" json:"imageGallery"`
	MapViewed       bool `bson:"mapViewed" json:"mapViewed"`
	ContactClicked  bool `bson:"contactClicked" json:"contactClicked"`
	PhoneRevealed   bool `bson:"phoneRevealed" json:"phoneRevealed"`
	WhatsappClicked bool `bson:"whatsappClicked" json:"whatsappClicked"`
	ShareClicked    bool `bson:"shareClicked" json:"shareClicked"`
	Favorited       bool `bson:"favorited" json:"favorited"`
	InquirySent     bool `bson:"inquirySent" json:"inquirySent"`
}

// ViewEvent is one recorded visit to a listing's detail page. Created once
// per page visit; mutated only to append late interaction signals or to
// close out duration/scroll on page exit.
type ViewEvent struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyID      primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	ViewerID        string             `bson:"viewerId,omitempty" json:"viewerId,omitempty"`
	SessionID       string             `bson:"sessionId" json:"sessionId"`
	IP              string             `bson:"ip,omitempty" json:"-"`
	UserAgent       string             `bson:"userAgent,omitempty" json:"-"`
	Device          string             `bson:"device" json:"device"`
	Country         string             `bson:"country,omitempty" json:"country,omitempty"`
	OriginCity      string             `bson:"originCity,omitempty" json:"originCity,omitempty"`
	Referrer        string             `bson:"referrer,omitempty" json:"referrer,omitempty"`
	Source          string             `bson:"source" json:"source"`
	SearchQuery     string             `bson:"searchQuery,omitempty" json:"searchQuery,omitempty"`
	ViewDuration    int                `bson:"viewDuration" json:"viewDuration"`
	ScrollDepth     int                `bson:"scrollDepth" json:"scrollDepth"`
	Interactions    Interactions       `bson:"interactions" json:"interactions"`
	EngagementScore int                `bson:"engagementScore" json:"engagementScore"`
	IsHighIntent    bool               `bson:"isHighIntent" json:"isHighIntent"`
	Bounced         bool               `bson:"bounced" json:"bounced"`
	IsUnique        bool               `bson:"isUnique" json:"isUnique"`
	ViewedAt        time.Time          `bson:"viewedAt" json:"viewedAt"`
}

// ViewStats summarizes engagement on one listing for its owner.
type ViewStats struct {
	PropertyID    primitive.ObjectID `bson:"-" json:"propertyId"`
	WindowDays    int                `bson:"-" json:"windowDays"`
	Views         int64              `bson:"views" json:"views"`
	UniqueViews   int64              `bson:"uniqueViews" json:"uniqueViews"`
	Inquiries     int64              `bson:"inquiries" json:"inquiries"`
	HighIntent    int64              `bson:"highIntent" json:"highIntent"`
	Bounces       int64              `bson:"bounces" json:"bounces"`
	AvgDuration   float64            `bson:"avgDuration" json:"avgDuration"`
	AvgScroll     float64            `bson:"avgScroll" json:"avgScroll"`
	AvgEngagement float64            `bson:"avgEngagement" json:"avgEngagement"`
	BySource      []FacetCount       `bson:"-" json:"bySource"`
	ByDevice      []FacetCount       `bson:"-" json:"byDevice"`
}

// TrendingListing is the per-listing aggregate over the trailing window.
type TrendingListing struct {
	PropertyID  primitive.ObjectID `bson:"_id" json:"propertyId"`
	Views       int64              `bson:"views" json:"views"`
	UniqueViews int64              `bson:"uniqueViews" json:"uniqueViews"`
	Inquiries   int64              `bson:"inquiries" json:"inquiries"`
	TrendScore  int64              `bson:"trendScore" json:"trendScore"`
	Listing     *Listing           `bson:"listing,omitempty" json:"listing,omitempty"`
}
