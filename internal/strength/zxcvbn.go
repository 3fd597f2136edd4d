// Package strength adapts the zxcvbn pattern-matching estimator to the
// policy engine.
package strength

import (
	"fmt"
	"math"

	"github.com/nbutton23/zxcvbn-go"

	"github.com/passforge/passforge/internal/policy"
)

// ReferenceGuessRate is the offline fast-hashing attack rate, in guesses per
// second, that crack times are displayed for.
const ReferenceGuessRate = 1e10

var _ policy.UserInputEstimator = (*Zxcvbn)(nil)

// Zxcvbn estimates strength with zxcvbn-go.
type Zxcvbn struct {
	userInputs []string
}

// NewZxcvbn creates an estimator. userInputs are site or user specific words
// (e.g. an e-mail address) that should count against a password.
func NewZxcvbn(userInputs ...string) *Zxcvbn {
	return &Zxcvbn{userInputs: userInputs}
}

// WithUserInputs returns an estimator that also penalizes the given words.
func (z *Zxcvbn) WithUserInputs(inputs ...string) policy.Estimator {
	merged := make([]string, 0, len(z.userInputs)+len(inputs))
	merged = append(merged, z.userInputs...)
	merged = append(merged, inputs...)
	return &Zxcvbn{userInputs: merged}
}

// Estimate implements policy.Estimator.
func (z *Zxcvbn) Estimate(password string) (est policy.Estimate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("zxcvbn: %v", r)
		}
	}()

	m := zxcvbn.PasswordStrength(password, z.userInputs)

	// zxcvbn-go reports entropy in bits, i.e. log2 of the guess count.
	guessesLog10 := m.Entropy * math.Log10(2)

	return policy.Estimate{
		Score:            m.Score,
		GuessesLog10:     guessesLog10,
		CrackTimeDisplay: DisplayCrackTime(guessesLog10, ReferenceGuessRate),
	}, nil
}

// DisplayCrackTime renders the time needed to exhaust 10^guessesLog10
// guesses at rate guesses per second.
func DisplayCrackTime(guessesLog10, rate float64) string {
	return displayTime(math.Pow(10, guessesLog10) / rate)
}

func displayTime(seconds float64) string {
	const (
		minute  = 60.0
		hour    = minute * 60
		day     = hour * 24
		month   = day * 31
		year    = month * 12
		century = year * 100
	)

	switch {
	case seconds < 1:
		return "less than a second"
	case seconds < minute:
		return plural(seconds, 1, "second")
	case seconds < hour:
		return plural(seconds, minute, "minute")
	case seconds < day:
		return plural(seconds, hour, "hour")
	case seconds < month:
		return plural(seconds, day, "day")
	case seconds < year:
		return plural(seconds, month, "month")
	case seconds < century:
		return plural(seconds, year, "year")
	}
	return "centuries"
}

func plural(seconds, unit float64, name string) string {
	n := int(math.Round(seconds / unit))
	if n == 1 {
		return "1 " + name
	}
	return fmt.Sprintf("%d %ss", n, name)
}
