package model

import (
	"time"

	"github.com/passforge/passforge/internal/policy"
)

// PasswordEntry is a stored credential. Secret holds the sealed password.
type PasswordEntry struct {
	ID        string
	UserID    int64
	Title     string
	Username  string
	Secret    []byte
	URL       string
	Notes     string
	Strength  int
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the entry is past its expiration date at now.
func (e PasswordEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// PasswordEntryRequest represents a request to save a credential.
type PasswordEntryRequest struct {
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}

// PasswordEntryResponse represents a stored credential returned to its owner.
type PasswordEntryResponse struct {
	ID         string                   `json:"id"`
	Title      string                   `json:"title"`
	Username   string                   `json:"username,omitempty"`
	Password   string                   `json:"password"`
	URL        string                   `json:"url,omitempty"`
	Notes      string                   `json:"notes,omitempty"`
	Strength   int                      `json:"strength"`
	ExpiresAt  time.Time                `json:"expires_at"`
	Expired    bool                     `json:"expired"`
	CreatedAt  time.Time                `json:"created_at"`
	Validation *policy.ValidationResult `json:"validation,omitempty"`
}
