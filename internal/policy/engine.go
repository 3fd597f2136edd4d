// Package policy generates credentials and evaluates passwords against
// strength estimates and declarative requirement policies.
//
// An Engine holds no mutable state; it is safe for concurrent use as long as
// its random source is.
package policy

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

var (
	ErrInvalidPolicy         = errors.New("at least one character class must be selected")
	ErrEstimationUnavailable = errors.New("password strength estimation unavailable")
	ErrInvalidRequirements   = errors.New("invalid password requirements")
	ErrPasswordTooLong       = fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
)

// MaxPasswordLength bounds, in runes, the passwords handed to an estimator.
const MaxPasswordLength = 128

// Estimate is what a strength estimator reports for a single password.
type Estimate struct {
	Score            int
	GuessesLog10     float64
	CrackTimeDisplay string
}

// Estimator scores password guessability on the 0-4 scale.
type Estimator interface {
	Estimate(password string) (Estimate, error)
}

// Engine produces and evaluates passwords.
type Engine struct {
	rand      io.Reader
	estimator Estimator
	logger    *slog.Logger
}

// New creates an Engine drawing randomness from src. A nil src selects
// crypto/rand.Reader. src must be a cryptographically secure source.
func New(src io.Reader, estimator Estimator) *Engine {
	if src == nil {
		src = rand.Reader
	}
	return &Engine{
		rand:      src,
		estimator: estimator,
		logger:    slog.Default().With("component", "policy"),
	}
}

// UserInputEstimator is an Estimator that can also penalize caller specific
// words such as an account e-mail.
type UserInputEstimator interface {
	Estimator
	WithUserInputs(inputs ...string) Estimator
}

// ForUser returns an Engine whose estimator penalizes inputs. Engines whose
// estimator cannot take user inputs are returned unchanged.
func (e *Engine) ForUser(inputs ...string) *Engine {
	est, ok := e.estimator.(UserInputEstimator)
	if !ok || len(inputs) == 0 {
		return e
	}
	return &Engine{
		rand:      e.rand,
		estimator: est.WithUserInputs(inputs...),
		logger:    e.logger,
	}
}
