package policy

import (
	"fmt"
	"math"
	"unicode/utf8"
)

const (
	MinScore = 0
	MaxScore = 4

	unknownCrackTime = "unknown"
)

// Strength is the estimator's view of a password.
type Strength struct {
	Score            int     `json:"score"`
	Guesses          float64 `json:"guesses"`
	GuessesLog10     float64 `json:"guesses_log10"`
	CrackTimeDisplay string  `json:"crack_time_display"`
	Unavailable      bool    `json:"estimation_unavailable,omitempty"`
}

// Score estimates the strength of password. Estimator failures degrade to a
// zero score instead of failing the caller. Passwords longer than
// MaxPasswordLength are never handed to the estimator.
func (e *Engine) Score(password string) Strength {
	est, err := e.estimate(password)
	if err != nil {
		e.logger.Warn("strength estimation failed", "error", err)
		return Strength{CrackTimeDisplay: unknownCrackTime, Unavailable: true}
	}

	score := est.Score
	if score < MinScore {
		score = MinScore
	} else if score > MaxScore {
		score = MaxScore
	}

	return Strength{
		Score:            score,
		Guesses:          math.Pow(10, est.GuessesLog10),
		GuessesLog10:     est.GuessesLog10,
		CrackTimeDisplay: est.CrackTimeDisplay,
	}
}

// CheckLength reports ErrPasswordTooLong for passwords that cannot be scored.
func CheckLength(password string) error {
	if utf8.RuneCountInString(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func (e *Engine) estimate(password string) (est Estimate, err error) {
	if e.estimator == nil {
		return Estimate{}, ErrEstimationUnavailable
	}
	if err := CheckLength(password); err != nil {
		return Estimate{}, fmt.Errorf("%w: %w", ErrEstimationUnavailable, err)
	}

	defer func() {
		if r := recover(); r != nil {
			est, err = Estimate{}, fmt.Errorf("%w: estimator panic: %v", ErrEstimationUnavailable, r)
		}
	}()

	est, err = e.estimator.Estimate(password)
	if err != nil {
		return Estimate{}, fmt.Errorf("%w: %w", ErrEstimationUnavailable, err)
	}
	if math.IsNaN(est.GuessesLog10) || math.IsInf(est.GuessesLog10, 0) {
		return Estimate{}, fmt.Errorf("%w: non-finite guess estimate", ErrEstimationUnavailable)
	}
	return est, nil
}
