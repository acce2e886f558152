// Package magazine provides the editorial content (CMS) domain with
// scheduled publication
package magazine

import (
	"time"

	"go.velora.shop/internal/catalog"
)

// Status represents the article lifecycle state
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusScheduled Status = "SCHEDULED"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

// Scheduling window bounds. A publish time closer than the minimum lead
// is effectively "now" and should use PublishNow instead; beyond the
// maximum it is almost certainly an input mistake.
const (
	MinScheduleLead = 5 * time.Minute
	MaxScheduleLead = 365 * 24 * time.Hour
)

// Translation holds the localized content of an article
type Translation struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt,omitempty"`
	Body    string `json:"body"`
}

// Article is a magazine article. Content is stored per locale; the
// storefront falls back to the default locale when a translation is
// missing, the same way the catalog does.
type Article struct {
	ID           string                         `json:"id"`
	Slug         string                         `json:"slug"`
	AuthorID     string                         `json:"authorId,omitempty"`
	Translations map[catalog.Locale]Translation `json:"translations"`
	Status       Status                         `json:"status"`

	// PublishAt is the requested publication time for scheduled articles
	PublishAt *time.Time `json:"publishAt,omitempty"`

	// PublishedAt is set when the article actually went live
	PublishedAt *time.Time `json:"publishedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsPublished returns true when the article is live
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// Translate returns the content for locale, falling back to the default
// locale and then to any available translation.
func (a *Article) Translate(locale catalog.Locale) Translation {
	if t, ok := a.Translations[locale]; ok {
		return t
	}
	if t, ok := a.Translations[catalog.DefaultLocale]; ok {
		return t
	}
	for _, t := range a.Translations {
		return t
	}
	return Translation{}
}
