package service

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/repository"
	"github.com/rs/zerolog"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	log      zerolog.Logger
}

// newArticleService creates a new ArticleService
func newArticleService(articles repository.ArticleRepository, log zerolog.Logger) ArticleService {
	return &articleService{
		articles: articles,
		log:      log.With().Str("service", "article").Logger(),
	}
}

// Create persists a new article
func (s *articleService) Create(ctx context.Context, authorID string, req *models.CreateArticleRequest) (*models.Article, error) {
	if !slugRegex.MatchString(req.Slug) {
		return nil, &ValidationError{Field: "slug", Message: "must be lowercase words separated by hyphens"}
	}
	status := req.Status
	if status == "" {
		status = "draft"
	}
	if !models.ValidStatuses[status] {
		return nil, &ValidationError{Field: "status", Message: "must be draft or published"}
	}

	taken, err := s.articles.SlugExists(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	now := time.Now()
	article := &models.Article{
		ID:        uuid.New().String(),
		Slug:      req.Slug,
		Title:     req.Title,
		Summary:   req.Summary,
		Body:      req.Body,
		AuthorID:  authorID,
		Tags:      req.Tags,
		Status:    status,
		CreatedAt: now,
	}
	if status == "published" {
		article.PublishedAt = &now
	}

	if err := s.articles.Create(ctx, article); err != nil {
		if err == repository.ErrDuplicate {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.log.Info().Str("article_id", article.ID).Str("slug", article.Slug).Msg("Article created")
	return article, nil
}

// Update modifies an existing article
func (s *articleService) Update(ctx context.Context, id string, req *models.UpdateArticleRequest) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}

	if req.Title != "" {
		article.Title = req.Title
	}
	if req.Summary != "" {
		article.Summary = req.Summary
	}
	if req.Body != "" {
		article.Body = req.Body
	}
	if req.Tags != nil {
		article.Tags = req.Tags
	}
	if req.Status != "" {
		if !models.ValidStatuses[req.Status] {
			return nil, &ValidationError{Field: "status", Message: "must be draft or published"}
		}
		if req.Status == "published" && article.Status != "published" {
			now := time.Now()
			article.PublishedAt = &now
		}
		article.Status = req.Status
	}

	if err := s.articles.Update(ctx, article); err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return article, nil
}

// Delete removes an article
func (s *articleService) Delete(ctx context.Context, id string) error {
	err := s.articles.Delete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	return err
}

// GetByID retrieves an article
func (s *articleService) GetByID(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	return article, nil
}

// GetBySlug retrieves an article by slug
func (s *articleService) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	return article, nil
}

// List returns articles newest first
func (s *articleService) List(ctx context.Context, includeDrafts bool, limit, offset int) ([]*models.Article, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.articles.List(ctx, !includeDrafts, limit, offset)
}
