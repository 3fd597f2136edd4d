package policy

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const (
	MinLength     = 8
	MaxLength     = 128
	DefaultLength = 20
)

// GenerationOptions configures Generate.
type GenerationOptions struct {
	Length  int      `json:"length"`
	Classes ClassSet `json:"classes"`
}

// DefaultGenerationOptions returns 20 characters drawn from every class.
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{
		Length:  DefaultLength,
		Classes: NewClassSet(AllClasses()...),
	}
}

// GeneratedPassword is a freshly generated credential with its strength estimate.
type GeneratedPassword struct {
	Text            string   `json:"password"`
	Length          int      `json:"length"`
	RequestedLength int      `json:"requested_length"`
	Clamped         bool     `json:"clamped"`
	Strength        Strength `json:"strength"`
}

// ClampLength corrects a requested length into [MinLength, MaxLength].
func ClampLength(n int) int {
	switch {
	case n < MinLength:
		return MinLength
	case n > MaxLength:
		return MaxLength
	}
	return n
}

// Generate creates a random password containing at least one character of
// every selected class. Out-of-range lengths are clamped, not rejected.
func (e *Engine) Generate(opts GenerationOptions) (GeneratedPassword, error) {
	classes := opts.Classes.Classes()
	if len(classes) == 0 {
		return GeneratedPassword{}, ErrInvalidPolicy
	}

	length := ClampLength(opts.Length)
	if length != opts.Length {
		e.logger.Debug("password length clamped", "requested", opts.Length, "length", length)
	}

	pool := opts.Classes.Alphabet()
	result := make([]byte, length)

	// Reserve one position per selected class.
	for i, c := range classes {
		ch, err := randChar(e.rand, c.Alphabet())
		if err != nil {
			return GeneratedPassword{}, err
		}
		result[i] = ch
	}

	for i := len(classes); i < length; i++ {
		ch, err := randChar(e.rand, pool)
		if err != nil {
			return GeneratedPassword{}, err
		}
		result[i] = ch
	}

	if err := secureShuffle(e.rand, result); err != nil {
		return GeneratedPassword{}, err
	}

	text := string(result)
	return GeneratedPassword{
		Text:            text,
		Length:          length,
		RequestedLength: opts.Length,
		Clamped:         length != opts.Length,
		Strength:        e.Score(text),
	}, nil
}

// randIndex returns a uniform index in [0, n). rand.Int rejects out-of-range
// samples, so the result carries no modulo bias.
func randIndex(src io.Reader, n int) (int, error) {
	v, err := rand.Int(src, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return int(v.Int64()), nil
}

// randChar picks a random byte from an ASCII charset.
func randChar(src io.Reader, charset string) (byte, error) {
	i, err := randIndex(src, len(charset))
	if err != nil {
		return 0, err
	}
	return charset[i], nil
}

// secureShuffle performs a Fisher-Yates shuffle driven by src.
func secureShuffle(src io.Reader, data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := randIndex(src, i+1)
		if err != nil {
			return err
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}
