package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/repository"
	"github.com/rs/zerolog"
)

// adService is the concrete implementation of AdService
type adService struct {
	ads repository.AdRepository
	log zerolog.Logger
}

// newAdService creates a new AdService
func newAdService(ads repository.AdRepository, log zerolog.Logger) AdService {
	return &adService{
		ads: ads,
		log: log.With().Str("service", "ad").Logger(),
	}
}

// Create persists a new ad
func (s *adService) Create(ctx context.Context, req *models.CreateAdRequest) (*models.Ad, error) {
	if !models.ValidPlacements[req.Placement] {
		return nil, &ValidationError{Field: "placement", Message: "must be one of: banner, sidebar, inline"}
	}

	ad := &models.Ad{
		ID:        uuid.New().String(),
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		Placement: req.Placement,
		Active:    req.Active,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		CreatedAt: time.Now(),
	}
	if err := s.ads.Create(ctx, ad); err != nil {
		return nil, err
	}

	s.log.Info().Str("ad_id", ad.ID).Str("placement", ad.Placement).Msg("Ad created")
	return ad, nil
}

// Update modifies an existing ad
func (s *adService) Update(ctx context.Context, id string, req *models.CreateAdRequest) (*models.Ad, error) {
	if !models.ValidPlacements[req.Placement] {
		return nil, &ValidationError{Field: "placement", Message: "must be one of: banner, sidebar, inline"}
	}

	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, ErrNotFound
	}

	ad.Title = req.Title
	ad.ImageURL = req.ImageURL
	ad.TargetURL = req.TargetURL
	ad.Placement = req.Placement
	ad.Active = req.Active
	ad.StartsAt = req.StartsAt
	ad.EndsAt = req.EndsAt

	if err := s.ads.Update(ctx, ad); err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ad, nil
}

// Delete removes an ad
func (s *adService) Delete(ctx context.Context, id string) error {
	err := s.ads.Delete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	return err
}

// ListActive returns currently running ads for a placement
func (s *adService) ListActive(ctx context.Context, placement string) ([]*models.Ad, error) {
	if placement != "" && !models.ValidPlacements[placement] {
		return nil, &ValidationError{Field: "placement", Message: "must be one of: banner, sidebar, inline"}
	}
	return s.ads.ListActive(ctx, placement)
}

// ListAll returns every ad for the admin dashboard
func (s *adService) ListAll(ctx context.Context) ([]*models.Ad, error) {
	return s.ads.ListAll(ctx)
}
