package models

import (
	"time"
)

// Article represents an article in the system
type Article struct {
	ID          string     `json:"id" db:"id"`
	Slug        string     `json:"slug" db:"slug"`
	Title       string     `json:"title" db:"title"`
	Summary     string     `json:"summary,omitempty" db:"summary"`
	Body        string     `json:"body" db:"body"`
	AuthorID    string     `json:"author_id" db:"author_id"`
	Tags        []string   `json:"tags" db:"-"` // Stored as a text[] column
	Status      string     `json:"status" db:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// ValidStatuses defines allowed article statuses
var ValidStatuses = map[string]bool{
	"draft":     true,
	"published": true,
}

// CreateArticleRequest is the payload for article creation
type CreateArticleRequest struct {
	Slug    string   `json:"slug" binding:"required"`
	Title   string   `json:"title" binding:"required"`
	Summary string   `json:"summary"`
	Body    string   `json:"body" binding:"required"`
	Tags    []string `json:"tags"`
	Status  string   `json:"status"`
}

// UpdateArticleRequest is the payload for article updates
type UpdateArticleRequest struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Body    string   `json:"body"`
	Tags    []string `json:"tags"`
	Status  string   `json:"status"`
}
