package analytics

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gharkhoj/backend/models"
)

// DefaultDedupWindow is the trailing window inside which a repeat visit by
// the same viewer or session does not count as unique.
const DefaultDedupWindow = 24 * time.Hour

var (
	ErrInvalidEvent = errors.New("invalid view event")
	ErrNotFound     = errors.New("not found")
)

// Recorder ingests raw view events, classifies uniqueness, and keeps the
// listing counters up to date. Counter updates go through $inc so
// concurrent recorders on the same listing cannot lose updates.
type Recorder struct {
	views       *mongo.Collection
	listings    *mongo.Collection
	dedupWindow time.Duration
}

func NewRecorder(views, listings *mongo.Collection, dedupWindow time.Duration) *Recorder {
	if dedupWindow <= 0 {
		dedupWindow = DefaultDedupWindow
	}
	return &Recorder{views: views, listings: listings, dedupWindow: dedupWindow}
}

// Record persists a new view event. Every call inserts a row; uniqueness
// is a derived classification, not a dedup gate. On a unique view both
// listing counters move, otherwise only the raw view counter.
func (r *Recorder) Record(ctx context.Context, e *models.ViewEvent) (*models.ViewEvent, error) {
	if err := normalizeEvent(e); err != nil {
		return nil, err
	}

	exists, err := r.listings.CountDocuments(ctx, bson.M{"_id": e.PropertyID})
	if err != nil {
		log.Printf("record view: listing lookup failed: %v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	since := now.Add(-r.dedupWindow)

	prior, err := r.views.CountDocuments(ctx, uniquenessFilter(e.PropertyID, e.ViewerID, e.SessionID, since))
	if err != nil {
		log.Printf("record view: uniqueness check failed: %v", err)
		return nil, err
	}

	e.IsUnique = prior == 0
	e.ViewedAt = now
	applyDerived(e)

	res, err := r.views.InsertOne(ctx, e)
	if err != nil {
		log.Printf("record view: insert failed: %v", err)
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = oid
	}

	inc := bson.M{"views": 1}
	if e.IsUnique {
		inc["uniqueViews"] = 1
	}
	if e.Interactions.InquirySent {
		inc["inquiries"] = 1
	}
	if _, err := r.listings.UpdateByID(ctx, e.PropertyID, bson.M{"$inc": inc}); err != nil {
		log.Printf("record view: counter increment failed for %s: %v", e.PropertyID.Hex(), err)
		return nil, err
	}

	return e, nil
}

// InteractionPatch carries late interaction signals. Nil fields are left
// untouched on the stored event.
type InteractionPatch struct {
	ImageGallery    *bool `json:"imageGallery,omitempty"`
	MapViewed       *bool `json:"mapViewed,omitempty"`
	ContactClicked  *bool `json:"contactClicked,omitempty"`
	PhoneRevealed   *bool `json:"phoneRevealed,omitempty"`
	WhatsappClicked *bool `json:"whatsappClicked,omitempty"`
	ShareClicked    *bool `json:"shareClicked,omitempty"`
	Favorited       *bool `json:"favorited,omitempty"`
	InquirySent     *bool `json:"inquirySent,omitempty"`
}

// UpdateInteraction applies late-arriving interaction signals to an
// existing event and recomputes its derived fields. Never creates a row.
func (r *Recorder) UpdateInteraction(ctx context.Context, viewID string, patch InteractionPatch) (*models.ViewEvent, error) {
	objID, err := primitive.ObjectIDFromHex(viewID)
	if err != nil {
		return nil, ErrInvalidEvent
	}

	var event models.ViewEvent
	err = r.views.FindOne(ctx, bson.M{"_id": objID}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("update interaction: load %s failed: %v", viewID, err)
		return nil, err
	}

	newInquiry := patch.InquirySent != nil && *patch.InquirySent && !event.Interactions.InquirySent
	applyPatch(&event.Interactions, patch)
	applyDerived(&event)

	update := bson.M{"$set": bson.M{
		"interactions":    event.Interactions,
		"engagementScore": event.EngagementScore,
		"isHighIntent":    event.IsHighIntent,
		"bounced":         event.Bounced,
	}}
	if _, err := r.views.UpdateByID(ctx, objID, update); err != nil {
		log.Printf("update interaction: save %s failed: %v", viewID, err)
		return nil, err
	}

	if newInquiry {
		if _, err := r.listings.UpdateByID(ctx, event.PropertyID, bson.M{"$inc": bson.M{"inquiries": 1}}); err != nil {
			log.Printf("update interaction: inquiry counter failed for %s: %v", event.PropertyID.Hex(), err)
		}
	}

	return &event, nil
}

// EndSession closes out duration and scroll depth on page exit. Clients
// that never call it leave the event at its last-known values.
func (r *Recorder) EndSession(ctx context.Context, viewID string, duration, scrollDepth int) (*models.ViewEvent, error) {
	objID, err := primitive.ObjectIDFromHex(viewID)
	if err != nil {
		return nil, ErrInvalidEvent
	}

	var event models.ViewEvent
	err = r.views.FindOne(ctx, bson.M{"_id": objID}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("end session: load %s failed: %v", viewID, err)
		return nil, err
	}

	event.ViewDuration = clamp(duration, 0, 1<<30)
	event.ScrollDepth = clamp(scrollDepth, 0, 100)
	applyDerived(&event)

	update := bson.M{"$set": bson.M{
		"viewDuration":    event.ViewDuration,
		"scrollDepth":     event.ScrollDepth,
		"engagementScore": event.EngagementScore,
		"isHighIntent":    event.IsHighIntent,
		"bounced":         event.Bounced,
	}}
	if _, err := r.views.UpdateByID(ctx, objID, update); err != nil {
		log.Printf("end session: save %s failed: %v", viewID, err)
		return nil, err
	}

	return &event, nil
}

// uniquenessFilter matches prior events for the listing inside the dedup
// window attributable to the same visitor: same authenticated viewer or
// same session. Anonymous visitors dedup by session only.
func uniquenessFilter(propertyID primitive.ObjectID, viewerID, sessionID string, since time.Time) bson.M {
	filter := bson.M{
		"propertyId": propertyID,
		"viewedAt":   bson.M{"$gte": since},
	}
	if viewerID != "" {
		filter["$or"] = bson.A{
			bson.M{"viewerId": viewerID},
			bson.M{"sessionId": sessionID},
		}
	} else {
		filter["sessionId"] = sessionID
	}
	return filter
}

func normalizeEvent(e *models.ViewEvent) error {
	if e.PropertyID.IsZero() {
		return ErrInvalidEvent
	}
	if e.SessionID == "" {
		return ErrInvalidEvent
	}
	if !models.ValidSource(e.Source) {
		e.Source = models.SourceOther
	}
	e.ViewDuration = clamp(e.ViewDuration, 0, 1<<30)
	e.ScrollDepth = clamp(e.ScrollDepth, 0, 100)
	return nil
}

func applyPatch(in *models.Interactions, p InteractionPatch) {
	if p.ImageGallery != nil {
		in.ImageGallery = *p.ImageGallery
	}
	if p.MapViewed != nil {
		in.MapViewed = *p.MapViewed
	}
	if p.ContactClicked != nil {
		in.ContactClicked = *p.ContactClicked
	}
	if p.PhoneRevealed != nil {
		in.PhoneRevealed = *p.PhoneRevealed
	}
	if p.WhatsappClicked != nil {
		in.WhatsappClicked = *p.WhatsappClicked
	}
	if p.ShareClicked != nil {
		in.ShareClicked = *p.ShareClicked
	}
	if p.Favorited != nil {
		in.Favorited = *p.Favorited
	}
	if p.InquirySent != nil {
		in.InquirySent = *p.InquirySent
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
