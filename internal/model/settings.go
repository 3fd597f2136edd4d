package model

import (
	"time"

	"github.com/passforge/passforge/internal/policy"
)

// Settings holds a user's password policy preferences.
type Settings struct {
	UserID         int64
	Requirements   policy.Requirements
	ExpirationDays int
	UpdatedAt      time.Time
}

// SettingsRequest updates a user's settings. Omitted fields keep their value.
type SettingsRequest struct {
	Requirements   *policy.Requirements `json:"requirements"`
	ExpirationDays *int                 `json:"expiration_days"`
}

// SettingsResponse represents a user's settings.
type SettingsResponse struct {
	Requirements   policy.Requirements `json:"requirements"`
	ExpirationDays int                 `json:"expiration_days"`
}
