package policy

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	ViolationLength    = "length"
	ViolationStrength  = "strength"
	ViolationLowercase = "lowercase"
	ViolationUppercase = "uppercase"
	ViolationDigit     = "digit"
	ViolationSymbol    = "symbol"
)

// Requirements is a declarative password policy. It is independent of
// GenerationOptions.
type Requirements struct {
	MinLength        int  `json:"min_length"`
	MinStrength      int  `json:"min_strength"`
	RequireLowercase bool `json:"require_lowercase"`
	RequireUppercase bool `json:"require_uppercase"`
	RequireDigit     bool `json:"require_numbers"`
	RequireSymbol    bool `json:"require_special"`
}

// DefaultRequirements returns a 12 character, score 3 policy requiring every class.
func DefaultRequirements() Requirements {
	return Requirements{
		MinLength:        12,
		MinStrength:      3,
		RequireLowercase: true,
		RequireUppercase: true,
		RequireDigit:     true,
		RequireSymbol:    true,
	}
}

// Check reports ErrInvalidRequirements for policies no password could be
// meaningfully judged against.
func (r Requirements) Check() error {
	if r.MinStrength < MinScore || r.MinStrength > MaxScore {
		return fmt.Errorf("%w: min_strength must be between %d and %d", ErrInvalidRequirements, MinScore, MaxScore)
	}
	if r.MinLength < 0 || r.MinLength > MaxLength {
		return fmt.Errorf("%w: min_length must be between 0 and %d", ErrInvalidRequirements, MaxLength)
	}
	return nil
}

// Violation is a single unmet requirement.
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult lists every unmet requirement in a stable order.
type ValidationResult struct {
	IsValid       bool        `json:"is_valid"`
	Violations    []Violation `json:"violations"`
	StrengthScore int         `json:"strength"`
}

// Codes returns the violation codes in order.
func (v ValidationResult) Codes() []string {
	codes := make([]string, len(v.Violations))
	for i, violation := range v.Violations {
		codes[i] = violation.Code
	}
	return codes
}

// Validate checks password against req. Every check runs; none short-circuits.
func (e *Engine) Validate(password string, req Requirements) ValidationResult {
	strength := e.Score(password)
	violations := make([]Violation, 0)

	if utf8.RuneCountInString(password) < req.MinLength {
		violations = append(violations, Violation{
			Code:    ViolationLength,
			Message: fmt.Sprintf("Password must be at least %d characters long", req.MinLength),
		})
	}
	if strength.Score < req.MinStrength {
		violations = append(violations, Violation{
			Code:    ViolationStrength,
			Message: "Password is not strong enough",
		})
	}
	if req.RequireLowercase && !containsClass(password, Lowercase) {
		violations = append(violations, Violation{
			Code:    ViolationLowercase,
			Message: "Password must include lowercase letters",
		})
	}
	if req.RequireUppercase && !containsClass(password, Uppercase) {
		violations = append(violations, Violation{
			Code:    ViolationUppercase,
			Message: "Password must include uppercase letters",
		})
	}
	if req.RequireDigit && !containsClass(password, Digit) {
		violations = append(violations, Violation{
			Code:    ViolationDigit,
			Message: "Password must include numbers",
		})
	}
	if req.RequireSymbol && !containsClass(password, Symbol) {
		violations = append(violations, Violation{
			Code:    ViolationSymbol,
			Message: "Password must include special characters",
		})
	}

	return ValidationResult{
		IsValid:       len(violations) == 0,
		Violations:    violations,
		StrengthScore: strength.Score,
	}
}

func containsClass(password string, c CharacterClass) bool {
	return strings.ContainsAny(password, c.Alphabet())
}
