package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gharkhoj/backend/models"
)

// 400s (capped at 300 = 30pts) + full scroll (20pts) + inquiry (15pts).
func TestScoreWorkedExample(t *testing.T) {
	e := &models.ViewEvent{
		ViewDuration: 400,
		ScrollDepth:  100,
		Interactions: models.Interactions{InquirySent: true},
	}

	score := Score(e)
	assert.Equal(t, 65, score)
	assert.True(t, HighIntent(e, score))
	assert.False(t, Bounced(e, score))
}

func TestScoreClampedToHundred(t *testing.T) {
	e := &models.ViewEvent{
		ViewDuration: 10_000,
		ScrollDepth:  100,
		Interactions: models.Interactions{
			ImageGallery: true, MapViewed: true, ContactClicked: true,
			PhoneRevealed: true, WhatsappClicked: true, Favorited: true,
			InquirySent: true,
		},
	}
	assert.Equal(t, 100, Score(e))
}

func TestScoreZeroEvent(t *testing.T) {
	assert.Equal(t, 0, Score(&models.ViewEvent{}))
}

func TestScoreNegativeInputsTreatedAsZero(t *testing.T) {
	e := &models.ViewEvent{ViewDuration: -50, ScrollDepth: -20}
	assert.Equal(t, 0, Score(e))
}

func TestScoreMonotonicInDuration(t *testing.T) {
	prev := -1
	for d := 0; d <= 400; d += 10 {
		s := Score(&models.ViewEvent{ViewDuration: d})
		assert.GreaterOrEqual(t, s, prev, "duration %d", d)
		prev = s
	}
	assert.Equal(t, 30, prev, "duration contribution caps at 30")
}

func TestScoreMonotonicInScroll(t *testing.T) {
	prev := -1
	for depth := 0; depth <= 100; depth += 5 {
		s := Score(&models.ViewEvent{ScrollDepth: depth})
		assert.GreaterOrEqual(t, s, prev, "scroll %d", depth)
		prev = s
	}
	assert.Equal(t, 20, prev, "scroll contribution caps at 20")
}

func TestScoreMonotonicInEachInteraction(t *testing.T) {
	base := &models.ViewEvent{ViewDuration: 60, ScrollDepth: 40}
	baseScore := Score(base)

	flags := []struct {
		name string
		set  func(*models.Interactions)
		pts  int
	}{
		{"gallery", func(i *models.Interactions) { i.ImageGallery = true }, galleryPoints},
		{"map", func(i *models.Interactions) { i.MapViewed = true }, mapPoints},
		{"contact", func(i *models.Interactions) { i.ContactClicked = true }, contactPoints},
		{"phone", func(i *models.Interactions) { i.PhoneRevealed = true }, phonePoints},
		{"whatsapp", func(i *models.Interactions) { i.WhatsappClicked = true }, whatsappPoints},
		{"favorite", func(i *models.Interactions) { i.Favorited = true }, favoritePoints},
		{"inquiry", func(i *models.Interactions) { i.InquirySent = true }, inquiryPoints},
	}
	for _, f := range flags {
		t.Run(f.name, func(t *testing.T) {
			e := *base
			f.set(&e.Interactions)
			assert.Equal(t, baseScore+f.pts, Score(&e))
		})
	}
}

// Share clicks carry no scoring weight.
func TestScoreIgnoresShare(t *testing.T) {
	e := &models.ViewEvent{Interactions: models.Interactions{ShareClicked: true}}
	assert.Equal(t, 0, Score(e))
}

func TestHighIntentOverrides(t *testing.T) {
	inquiry := &models.ViewEvent{Interactions: models.Interactions{InquirySent: true}}
	assert.True(t, HighIntent(inquiry, Score(inquiry)), "inquiry overrides any score")

	phone := &models.ViewEvent{Interactions: models.Interactions{PhoneRevealed: true}}
	assert.True(t, HighIntent(phone, Score(phone)), "phone reveal overrides any score")

	cold := &models.ViewEvent{ViewDuration: 30}
	assert.False(t, HighIntent(cold, Score(cold)))
}

func TestHighIntentScoreThreshold(t *testing.T) {
	// 300s (30) + 100% scroll (20) + contact (10) = 60, exactly at threshold.
	e := &models.ViewEvent{
		ViewDuration: 300,
		ScrollDepth:  100,
		Interactions: models.Interactions{ContactClicked: true},
	}
	score := Score(e)
	assert.Equal(t, 60, score)
	assert.True(t, HighIntent(e, score))
}

func TestBounceRule(t *testing.T) {
	quick := &models.ViewEvent{ViewDuration: 5}
	assert.True(t, Bounced(quick, Score(quick)))

	// Short visit but an engaged one: a favorite alone scores 10.
	engaged := &models.ViewEvent{ViewDuration: 5, Interactions: models.Interactions{Favorited: true}}
	assert.False(t, Bounced(engaged, Score(engaged)))

	slow := &models.ViewEvent{ViewDuration: 15}
	assert.False(t, Bounced(slow, Score(slow)))
}
