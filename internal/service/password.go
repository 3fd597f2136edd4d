package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/passforge/passforge/internal/crypto"
	"github.com/passforge/passforge/internal/model"
	"github.com/passforge/passforge/internal/policy"
	"github.com/passforge/passforge/internal/repository"
)

var (
	ErrTitleRequired      = errors.New("title is required")
	ErrEntryPasswordEmpty = errors.New("password is required")
	ErrEntryNotFound      = errors.New("password entry not found")
	ErrFieldTooLong       = errors.New("field exceeds maximum length")
)

const maxTitleLength = 255

// PasswordStore persists sealed credentials.
type PasswordStore interface {
	Create(ctx context.Context, e *model.PasswordEntry) error
	ListByUser(ctx context.Context, userID int64) ([]model.PasswordEntry, error)
	Delete(ctx context.Context, userID int64, id string) error
}

// PasswordService stores credentials along with their strength and expiry.
type PasswordService struct {
	repo     PasswordStore
	settings *SettingsService
	engine   *policy.Engine
	sealer   *crypto.Sealer
	now      func() time.Time
}

// NewPasswordService creates a new PasswordService.
func NewPasswordService(repo PasswordStore, settings *SettingsService, engine *policy.Engine, sealer *crypto.Sealer) *PasswordService {
	return &PasswordService{
		repo:     repo,
		settings: settings,
		engine:   engine,
		sealer:   sealer,
		now:      time.Now,
	}
}

// Create scores, seals and stores a credential. The password is checked
// against the owner's requirements; violations are reported, not enforced.
func (s *PasswordService) Create(ctx context.Context, userID int64, req model.PasswordEntryRequest) (model.PasswordEntryResponse, error) {
	if req.Title == "" {
		return model.PasswordEntryResponse{}, ErrTitleRequired
	}
	if req.Password == "" {
		return model.PasswordEntryResponse{}, ErrEntryPasswordEmpty
	}
	if len(req.Title) > maxTitleLength || policy.CheckLength(req.Password) != nil {
		return model.PasswordEntryResponse{}, ErrFieldTooLong
	}

	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return model.PasswordEntryResponse{}, err
	}

	validation := s.engine.Validate(req.Password, settings.Requirements)
	now := s.now().UTC()

	entry := model.PasswordEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     req.Title,
		Username:  req.Username,
		URL:       req.URL,
		Notes:     req.Notes,
		Strength:  validation.StrengthScore,
		ExpiresAt: now.AddDate(0, 0, settings.ExpirationDays),
		CreatedAt: now,
		UpdatedAt: now,
	}

	entry.Secret, err = s.sealer.Seal([]byte(req.Password), []byte(entry.ID))
	if err != nil {
		return model.PasswordEntryResponse{}, err
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		return model.PasswordEntryResponse{}, err
	}

	resp := toEntryResponse(entry, req.Password, now)
	resp.Validation = &validation
	return resp, nil
}

// List returns the user's credentials. Entries that fail to unseal are
// skipped and logged.
func (s *PasswordService) List(ctx context.Context, userID int64) ([]model.PasswordEntryResponse, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]model.PasswordEntryResponse, 0, len(entries))
	for _, e := range entries {
		plaintext, err := s.sealer.Open(e.Secret, []byte(e.ID))
		if err != nil {
			slog.Warn("skipping entry: unseal failed", "entry_id", e.ID, "error", err)
			continue
		}
		result = append(result, toEntryResponse(e, string(plaintext), now))
	}

	return result, nil
}

// Delete removes one of the user's credentials.
func (s *PasswordService) Delete(ctx context.Context, userID int64, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrEntryNotFound
	}

	err := s.repo.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrEntryNotFound) {
		return ErrEntryNotFound
	}
	return err
}

func toEntryResponse(e model.PasswordEntry, password string, now time.Time) model.PasswordEntryResponse {
	return model.PasswordEntryResponse{
		ID:        e.ID,
		Title:     e.Title,
		Username:  e.Username,
		Password:  password,
		URL:       e.URL,
		Notes:     e.Notes,
		Strength:  e.Strength,
		ExpiresAt: e.ExpiresAt,
		Expired:   e.Expired(now),
		CreatedAt: e.CreatedAt,
	}
}
