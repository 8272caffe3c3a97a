package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/newswire-api/internal/database"
	"github.com/newswire-api/internal/models"
)

// settingsRepo is the concrete implementation of SettingsRepository. The
// SQL is built from the same column table the (de)normalizer walks, so the
// storage shape cannot drift from the mapping.
type settingsRepo struct {
	db *database.DB
}

// NewSettingsRepo creates a new settings repository
func NewSettingsRepo(db *database.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

// Get retrieves a user's flat settings columns. Missing rows return
// (nil, nil); callers fall back to defaults.
func (r *settingsRepo) Get(ctx context.Context, userID string) (map[string]interface{}, error) {
	cols := models.SettingsColumns()
	query := fmt.Sprintf("SELECT %s FROM user_settings WHERE user_id = $1", strings.Join(cols, ", "))

	dest := make([]interface{}, len(cols))
	for i := range dest {
		dest[i] = new(interface{})
	}

	err := r.db.QueryRowContext(ctx, query, userID).Scan(dest...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	flat := make(map[string]interface{}, len(cols))
	for i, col := range cols {
		flat[col] = *(dest[i].(*interface{}))
	}
	return flat, nil
}

// Put upserts a user's flat settings columns
func (r *settingsRepo) Put(ctx context.Context, userID string, flat map[string]interface{}) error {
	cols := models.SettingsColumns()

	insertCols := make([]string, 0, len(cols)+2)
	placeholders := make([]string, 0, len(cols)+2)
	updates := make([]string, 0, len(cols)+1)
	args := make([]interface{}, 0, len(cols)+2)

	insertCols = append(insertCols, "user_id")
	placeholders = append(placeholders, "$1")
	args = append(args, userID)

	for i, col := range cols {
		insertCols = append(insertCols, col)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		args = append(args, flat[col])
	}

	insertCols = append(insertCols, "updated_at")
	placeholders = append(placeholders, fmt.Sprintf("$%d", len(cols)+2))
	updates = append(updates, "updated_at = EXCLUDED.updated_at")
	args = append(args, time.Now())

	query := fmt.Sprintf(
		"INSERT INTO user_settings (%s) VALUES (%s) ON CONFLICT (user_id) DO UPDATE SET %s",
		strings.Join(insertCols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}
