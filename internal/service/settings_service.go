package service

import (
	"context"
	"fmt"

	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/repository"
	"github.com/rs/zerolog"
)

// settingsService is the concrete implementation of SettingsService. It
// converts between the nested preferences object and the flat column set
// through the static field table in models, which guarantees the round-trip
// property.
type settingsService struct {
	settings repository.SettingsRepository
	log      zerolog.Logger
}

// newSettingsService creates a new SettingsService
func newSettingsService(settings repository.SettingsRepository, log zerolog.Logger) SettingsService {
	return &settingsService{
		settings: settings,
		log:      log.With().Str("service", "settings").Logger(),
	}
}

// Get returns a user's settings, falling back to defaults before first save
func (s *settingsService) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	flat, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if flat == nil {
		return models.DefaultSettings(), nil
	}

	nested, err := models.UnflattenSettings(flat)
	if err != nil {
		return nil, fmt.Errorf("failed to unflatten settings: %w", err)
	}
	return nested, nil
}

// Put stores the complete settings object. Partial updates are rejected by
// the handler's binding; the caller must send every group.
func (s *settingsService) Put(ctx context.Context, userID string, settings *models.UserSettings) error {
	if err := s.settings.Put(ctx, userID, models.FlattenSettings(settings)); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("Settings saved")
	return nil
}
