package model

import "github.com/passforge/passforge/internal/policy"

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type GenerateRequest struct {
	Length    int   `json:"length"`
	Lowercase *bool `json:"lowercase"`
	Uppercase *bool `json:"uppercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password        string          `json:"password"`
	Length          int             `json:"length"`
	RequestedLength int             `json:"requested_length"`
	Clamped         bool            `json:"clamped"`
	Strength        policy.Strength `json:"strength"`
}

// StrengthRequest asks for the strength estimate of a password.
type StrengthRequest struct {
	Password string `json:"password"`
}

// ValidateRequest checks a password against requirements, or the defaults when omitted.
type ValidateRequest struct {
	Password     string               `json:"password"`
	Requirements *policy.Requirements `json:"requirements"`
}
