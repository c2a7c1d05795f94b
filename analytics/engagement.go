package analytics

import "github.com/gharkhoj/backend/models"

// Engagement scoring weights. Duration and scroll contribute linearly up
// to their caps; interactions carry fixed weights summing to 60 but the
// total is clamped to 100.
const (
	durationCapSeconds = 300
	durationMaxPoints  = 30
	scrollMaxPoints    = 20

	galleryPoints  = 5
	mapPoints      = 5
	contactPoints  = 10
	phonePoints    = 8
	whatsappPoints = 7
	favoritePoints = 10
	inquiryPoints  = 15
)

// highIntentThreshold marks a visitor as high intent on score alone.
const highIntentThreshold = 60

// Bounce rule: short visit with near-zero engagement.
const (
	bounceDurationSeconds = 10
	bounceScoreCeiling    = 10
)

// Score computes the 0-100 engagement score for a view event from its
// duration, scroll depth, and interaction flags.
func Score(e *models.ViewEvent) int {
	score := 0

	duration := e.ViewDuration
	if duration < 0 {
		duration = 0
	}
	if duration > durationCapSeconds {
		duration = durationCapSeconds
	}
	score += duration * durationMaxPoints / durationCapSeconds

	scroll := e.ScrollDepth
	if scroll < 0 {
		scroll = 0
	}
	if scroll > 100 {
		scroll = 100
	}
	score += scroll * scrollMaxPoints / 100

	in := e.Interactions
	if in.ImageGallery {
		score += galleryPoints
	}
	if in.MapViewed {
		score += mapPoints
	}
	if in.ContactClicked {
		score += contactPoints
	}
	if in.PhoneRevealed {
		score += phonePoints
	}
	if in.WhatsappClicked {
		score += whatsappPoints
	}
	if in.Favorited {
		score += favoritePoints
	}
	if in.InquirySent {
		score += inquiryPoints
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// HighIntent reports whether the visitor shows likely purchase interest.
// An inquiry or a phone reveal overrides the score threshold.
func HighIntent(e *models.ViewEvent, score int) bool {
	return score >= highIntentThreshold || e.Interactions.InquirySent || e.Interactions.PhoneRevealed
}

// Bounced reports whether the visit was a bounce: under ten seconds with
// an engagement score under ten.
func Bounced(e *models.ViewEvent, score int) bool {
	return e.ViewDuration < bounceDurationSeconds && score < bounceScoreCeiling
}

// applyDerived recomputes and stores the derived engagement fields.
func applyDerived(e *models.ViewEvent) {
	e.EngagementScore = Score(e)
	e.IsHighIntent = HighIntent(e, e.EngagementScore)
	e.Bounced = Bounced(e, e.EngagementScore)
}
