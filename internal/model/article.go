package model

import (
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

type ArticleStatus string

const (
	StatusDraft ArticleStatus = "draft"
)

// CategoryARISS is the blog category every contact article is filed under.
const CategoryARISS = "Contact ARISS"

// Article is the publish-ready rendering of a Contact.
type Article struct {
	ID          uuid.UUID     `json:"id"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	Category    string        `json:"category"`
	Status      ArticleStatus `json:"status"`
	Callsign    string        `json:"callsign"`
	ScheduledAt time.Time     `json:"scheduled_at"`
	CreatedAt   time.Time     `json:"created_at"`
}

// NewArticle creates a draft Article in the ARISS category. The ID is derived
// from the slug, so rendering the same contact twice gives the same ID.
func NewArticle(title, content, callsign string, scheduledAt time.Time) Article {
	s := ArticleSlug(scheduledAt, callsign)
	return Article{
		ID:          uuid.NewSHA1(uuid.NameSpaceURL, []byte(s)),
		Slug:        s,
		Title:       title,
		Content:     content,
		Category:    CategoryARISS,
		Status:      StatusDraft,
		Callsign:    callsign,
		ScheduledAt: scheduledAt,
		CreatedAt:   time.Now(),
	}
}

// ArticleSlug builds a stable URL/file name for a contact. It depends only on
// the schedule and the callsign so re-rendering the same newsletter yields the
// same slug.
func ArticleSlug(scheduledAt time.Time, callsign string) string {
	raw := "contact " + scheduledAt.UTC().Format("2006-01-02 1504") + " " + callsign
	if s, err := slug.Normalize(raw); err == nil && s != "" {
		return s
	}
	return strings.ToLower(strings.Join(strings.Fields(raw), "-"))
}
