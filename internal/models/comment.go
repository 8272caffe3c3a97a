package models

import (
	"time"
)

// Comment represents a comment on an article. ParentID, when set, should
// reference another comment on the same article; rows that violate this are
// still surfaced by the tree assembler as top-level comments.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ParentID  *string   `json:"parent_id,omitempty" db:"parent_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CommentNode is a comment plus its replies, built fresh on every read and
// never persisted.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// CreateCommentRequest is the payload for comment creation
type CreateCommentRequest struct {
	ArticleID string  `json:"article_id" binding:"required"`
	Body      string  `json:"body" binding:"required"`
	ParentID  *string `json:"parent_id,omitempty"`
}
