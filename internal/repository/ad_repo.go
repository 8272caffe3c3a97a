package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/newswire-api/internal/database"
	"github.com/newswire-api/internal/models"
)

const adColumns = `id, title, image_url, target_url, placement, active, starts_at, ends_at, created_at, updated_at`

// adRepo is the concrete implementation of AdRepository
type adRepo struct {
	db *database.DB
}

// NewAdRepo creates a new ad repository
func NewAdRepo(db *database.DB) AdRepository {
	return &adRepo{db: db}
}

// Create inserts a new ad
func (r *adRepo) Create(ctx context.Context, ad *models.Ad) error {
	query := `
		INSERT INTO ads (id, title, image_url, target_url, placement, active, starts_at, ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		ad.ID, ad.Title, ad.ImageURL, ad.TargetURL, ad.Placement,
		ad.Active, ad.StartsAt, ad.EndsAt, ad.CreatedAt, time.Now(),
	)
	return err
}

// Update updates an existing ad
func (r *adRepo) Update(ctx context.Context, ad *models.Ad) error {
	query := `
		UPDATE ads
		SET title = $2, image_url = $3, target_url = $4, placement = $5, active = $6, starts_at = $7, ends_at = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		ad.ID, ad.Title, ad.ImageURL, ad.TargetURL, ad.Placement,
		ad.Active, ad.StartsAt, ad.EndsAt, time.Now(),
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an ad
func (r *adRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM ads WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves an ad by ID
func (r *adRepo) GetByID(ctx context.Context, id string) (*models.Ad, error) {
	var ad models.Ad
	err := r.db.QueryRowContext(ctx, `SELECT `+adColumns+` FROM ads WHERE id = $1`, id).Scan(
		&ad.ID, &ad.Title, &ad.ImageURL, &ad.TargetURL, &ad.Placement,
		&ad.Active, &ad.StartsAt, &ad.EndsAt, &ad.CreatedAt, &ad.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

// ListActive returns currently running ads, optionally filtered by placement
func (r *adRepo) ListActive(ctx context.Context, placement string) ([]*models.Ad, error) {
	query := `
		SELECT ` + adColumns + ` FROM ads
		WHERE active = true
		  AND (starts_at IS NULL OR starts_at <= NOW())
		  AND (ends_at IS NULL OR ends_at > NOW())
	`
	args := []interface{}{}
	if placement != "" {
		query += ` AND placement = $1`
		args = append(args, placement)
	}
	query += ` ORDER BY created_at DESC`

	return r.list(ctx, query, args...)
}

// ListAll returns every ad for the admin dashboard
func (r *adRepo) ListAll(ctx context.Context) ([]*models.Ad, error) {
	return r.list(ctx, `SELECT `+adColumns+` FROM ads ORDER BY created_at DESC`)
}

func (r *adRepo) list(ctx context.Context, query string, args ...interface{}) ([]*models.Ad, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ads []*models.Ad
	for rows.Next() {
		var ad models.Ad
		err := rows.Scan(
			&ad.ID, &ad.Title, &ad.ImageURL, &ad.TargetURL, &ad.Placement,
			&ad.Active, &ad.StartsAt, &ad.EndsAt, &ad.CreatedAt, &ad.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		ads = append(ads, &ad)
	}
	return ads, rows.Err()
}
