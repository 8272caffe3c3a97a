package models

import (
	"time"
)

// Bookmark marks an article saved by a user
type Bookmark struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateBookmarkRequest is the payload for saving an article
type CreateBookmarkRequest struct {
	ArticleID string `json:"article_id" binding:"required"`
}
