package service

import (
	"context"

	"github.com/newswire-api/internal/repository"
	"github.com/rs/zerolog"
)

// statsService is the concrete implementation of StatsService
type statsService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newStatsService creates a new StatsService
func newStatsService(repos *repository.Repositories, log zerolog.Logger) StatsService {
	return &statsService{
		repos: repos,
		log:   log.With().Str("service", "stats").Logger(),
	}
}

// Overview returns entity counts for the admin dashboard
func (s *statsService) Overview(ctx context.Context) (map[string]int, error) {
	users, err := s.repos.User.Count(ctx)
	if err != nil {
		return nil, err
	}
	articles, err := s.repos.Article.Count(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.repos.Comment.Count(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.repos.Billing.PaymentCount(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]int{
		"users":    users,
		"articles": articles,
		"comments": comments,
		"payments": payments,
	}, nil
}
