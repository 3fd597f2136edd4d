package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/passforge/passforge/internal/model"
	"github.com/passforge/passforge/internal/policy"
	"github.com/passforge/passforge/internal/repository"
)

const maxExpirationDays = 3650

var ErrInvalidExpirationDays = fmt.Errorf("expiration_days must be between 1 and %d", maxExpirationDays)

// SettingsStore persists per-user settings. Get returns
// repository.ErrSettingsNotFound for users without stored settings.
type SettingsStore interface {
	Get(ctx context.Context, userID int64) (*model.Settings, error)
	Save(ctx context.Context, s *model.Settings) error
}

// SettingsService manages per-user requirements and expiration periods.
type SettingsService struct {
	repo        SettingsStore
	defaultDays int
}

// NewSettingsService creates a SettingsService falling back to defaultDays
// for users without stored settings.
func NewSettingsService(repo SettingsStore, defaultDays int) *SettingsService {
	return &SettingsService{repo: repo, defaultDays: defaultDays}
}

// Get returns the user's settings, or the defaults if none are stored.
func (s *SettingsService) Get(ctx context.Context, userID int64) (model.SettingsResponse, error) {
	stored, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return s.defaults(), nil
		}
		return model.SettingsResponse{}, err
	}

	return model.SettingsResponse{
		Requirements:   stored.Requirements,
		ExpirationDays: stored.ExpirationDays,
	}, nil
}

// Update merges req into the user's settings and stores the result.
func (s *SettingsService) Update(ctx context.Context, userID int64, req model.SettingsRequest) (model.SettingsResponse, error) {
	if err := validateSettingsRequest(req); err != nil {
		return model.SettingsResponse{}, err
	}

	current, err := s.Get(ctx, userID)
	if err != nil {
		return model.SettingsResponse{}, err
	}
	if req.Requirements != nil {
		current.Requirements = *req.Requirements
	}
	if req.ExpirationDays != nil {
		current.ExpirationDays = *req.ExpirationDays
	}

	err = s.repo.Save(ctx, &model.Settings{
		UserID:         userID,
		Requirements:   current.Requirements,
		ExpirationDays: current.ExpirationDays,
	})
	if err != nil {
		return model.SettingsResponse{}, err
	}

	return current, nil
}

func (s *SettingsService) defaults() model.SettingsResponse {
	return model.SettingsResponse{
		Requirements:   policy.DefaultRequirements(),
		ExpirationDays: s.defaultDays,
	}
}

func validateSettingsRequest(req model.SettingsRequest) error {
	if req.Requirements != nil {
		if err := req.Requirements.Check(); err != nil {
			return err
		}
	}
	if req.ExpirationDays != nil && (*req.ExpirationDays < 1 || *req.ExpirationDays > maxExpirationDays) {
		return ErrInvalidExpirationDays
	}
	return nil
}
