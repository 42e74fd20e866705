package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog article for the marketing site.
type Post struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt,omitempty"`
	Body          string     `json:"body"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	CoverImageKey string     `json:"-"`
	Published     bool       `json:"published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
