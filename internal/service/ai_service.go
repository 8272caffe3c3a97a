package service

import (
	"context"

	"github.com/newswire-api/internal/ai"
	"github.com/newswire-api/internal/repository"
	"github.com/rs/zerolog"
)

// aiService is the concrete implementation of AIService
type aiService struct {
	articles  repository.ArticleRepository
	generator ai.Generator
	log       zerolog.Logger
}

// newAIService creates a new AIService
func newAIService(articles repository.ArticleRepository, generator ai.Generator, log zerolog.Logger) AIService {
	return &aiService{
		articles:  articles,
		generator: generator,
		log:       log.With().Str("service", "ai").Logger(),
	}
}

// SummarizeArticle produces a summary of the article body
func (s *aiService) SummarizeArticle(ctx context.Context, articleID string) (string, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return "", err
	}
	if article == nil {
		return "", ErrNotFound
	}

	summary, err := s.generator.Summarize(ctx, article.Body)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("article_id", articleID).Msg("Summary generated")
	return summary, nil
}

// SuggestTags proposes tags for the article
func (s *aiService) SuggestTags(ctx context.Context, articleID string) ([]string, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}

	return s.generator.SuggestTags(ctx, article.Title, article.Body)
}
