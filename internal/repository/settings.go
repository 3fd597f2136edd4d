package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/passforge/passforge/internal/model"
)

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsRepository stores per-user password policy settings.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the stored settings for userID.
func (r *SettingsRepository) Get(ctx context.Context, userID int64) (*model.Settings, error) {
	query := `SELECT user_id, requirements, expiration_days, updated_at FROM password_settings WHERE user_id = ?`

	var raw []byte
	s := &model.Settings{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&s.UserID, &raw, &s.ExpirationDays, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(raw, &s.Requirements); err != nil {
		return nil, fmt.Errorf("decoding requirements: %w", err)
	}

	return s, nil
}

// Save inserts or replaces the settings for s.UserID.
func (r *SettingsRepository) Save(ctx context.Context, s *model.Settings) error {
	raw, err := json.Marshal(s.Requirements)
	if err != nil {
		return err
	}

	query := `INSERT INTO password_settings (user_id, requirements, expiration_days)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			requirements    = VALUES(requirements),
			expiration_days = VALUES(expiration_days),
			updated_at      = CURRENT_TIMESTAMP`

	_, err = r.db.ExecContext(ctx, query, s.UserID, raw, s.ExpirationDays)
	return err
}
