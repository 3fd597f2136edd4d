package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/passforge/passforge/internal/model"
)

var ErrEntryNotFound = errors.New("password entry not found")

const entryColumns = `id, user_id, title, username, secret, url, notes, strength, expires_at, created_at, updated_at`

// PasswordRepository handles stored credential persistence.
type PasswordRepository struct {
	db *sql.DB
}

// NewPasswordRepository creates a new PasswordRepository.
func NewPasswordRepository(db *sql.DB) *PasswordRepository {
	return &PasswordRepository{db: db}
}

// Create inserts a password entry. The caller assigns the ID.
func (r *PasswordRepository) Create(ctx context.Context, e *model.PasswordEntry) error {
	query := `INSERT INTO password_entries
		(id, user_id, title, username, secret, url, notes, strength, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.Title, e.Username, e.Secret, e.URL, e.Notes, e.Strength, e.ExpiresAt,
	)
	return err
}

// ListByUser returns a user's entries, most recently created first.
func (r *PasswordRepository) ListByUser(ctx context.Context, userID int64) ([]model.PasswordEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM password_entries WHERE user_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.PasswordEntry
	for rows.Next() {
		var e model.PasswordEntry
		if err := scanEntry(rows, &e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Delete removes an entry owned by userID.
func (r *PasswordRepository) Delete(ctx context.Context, userID int64, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM password_entries WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner, e *model.PasswordEntry) error {
	var username, url, notes sql.NullString
	err := s.Scan(
		&e.ID, &e.UserID, &e.Title, &username, &e.Secret, &url, &notes,
		&e.Strength, &e.ExpiresAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	e.Username, e.URL, e.Notes = username.String, url.String, notes.String
	return nil
}
