package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/repository"
	"github.com/rs/zerolog"
)

// bookmarkService is the concrete implementation of BookmarkService
type bookmarkService struct {
	bookmarks repository.BookmarkRepository
	articles  repository.ArticleRepository
	log       zerolog.Logger
}

// newBookmarkService creates a new BookmarkService
func newBookmarkService(bookmarks repository.BookmarkRepository, articles repository.ArticleRepository, log zerolog.Logger) BookmarkService {
	return &bookmarkService{
		bookmarks: bookmarks,
		articles:  articles,
		log:       log.With().Str("service", "bookmark").Logger(),
	}
}

// Create saves an article for a user
func (s *bookmarkService) Create(ctx context.Context, userID string, req *models.CreateBookmarkRequest) (*models.Bookmark, error) {
	exists, err := s.articles.Exists(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	bookmark := &models.Bookmark{
		ID:        uuid.New().String(),
		UserID:    userID,
		ArticleID: req.ArticleID,
		CreatedAt: time.Now(),
	}
	if err := s.bookmarks.Create(ctx, bookmark); err != nil {
		if err == repository.ErrDuplicate {
			return nil, ErrConflict
		}
		return nil, err
	}
	return bookmark, nil
}

// Delete removes a bookmark owned by the user
func (s *bookmarkService) Delete(ctx context.Context, userID, id string) error {
	err := s.bookmarks.Delete(ctx, userID, id)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	return err
}

// List returns the user's bookmarks
func (s *bookmarkService) List(ctx context.Context, userID string) ([]*models.Bookmark, error) {
	return s.bookmarks.ListByUser(ctx, userID)
}
