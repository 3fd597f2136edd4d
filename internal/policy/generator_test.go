package policy

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type stubEstimator struct {
	est   Estimate
	err   error
	calls []string
}

func (s *stubEstimator) Estimate(password string) (Estimate, error) {
	s.calls = append(s.calls, password)
	return s.est, s.err
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func newTestEngine() *Engine {
	return New(nil, &stubEstimator{est: Estimate{Score: 4, GuessesLog10: 20, CrackTimeDisplay: "centuries"}})
}

// allClassSets enumerates every non-empty combination of classes.
func allClassSets() []ClassSet {
	var sets []ClassSet
	for mask := 1; mask < 1<<numClasses; mask++ {
		sets = append(sets, ClassSet(mask))
	}
	return sets
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name        string
		opts        GenerationOptions
		wantLength  int
		wantClamped bool
		wantErr     error
	}{
		{
			name:       "default options",
			opts:       DefaultGenerationOptions(),
			wantLength: 20,
		},
		{
			name:       "lowercase only",
			opts:       GenerationOptions{Length: 16, Classes: NewClassSet(Lowercase)},
			wantLength: 16,
		},
		{
			name:       "minimum length",
			opts:       GenerationOptions{Length: MinLength, Classes: NewClassSet(AllClasses()...)},
			wantLength: MinLength,
		},
		{
			name:       "maximum length",
			opts:       GenerationOptions{Length: MaxLength, Classes: NewClassSet(Uppercase, Digit)},
			wantLength: MaxLength,
		},
		{
			name:        "length too short is clamped",
			opts:        GenerationOptions{Length: 4, Classes: NewClassSet(Lowercase)},
			wantLength:  8,
			wantClamped: true,
		},
		{
			name:        "length too long is clamped",
			opts:        GenerationOptions{Length: 999, Classes: NewClassSet(Lowercase)},
			wantLength:  128,
			wantClamped: true,
		},
		{
			name:        "negative length is clamped",
			opts:        GenerationOptions{Length: -5, Classes: NewClassSet(Symbol)},
			wantLength:  8,
			wantClamped: true,
		},
		{
			name:    "no character classes selected",
			opts:    GenerationOptions{Length: 16},
			wantErr: ErrInvalidPolicy,
		},
	}

	engine := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Generate(tt.opts)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
				}
				if got.Text != "" {
					t.Error("Generate() should return empty password on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if len(got.Text) != tt.wantLength {
				t.Errorf("Generate() length = %d, want %d", len(got.Text), tt.wantLength)
			}
			if got.Length != tt.wantLength {
				t.Errorf("Generate() Length = %d, want %d", got.Length, tt.wantLength)
			}
			if got.Clamped != tt.wantClamped {
				t.Errorf("Generate() Clamped = %v, want %v", got.Clamped, tt.wantClamped)
			}
			if got.RequestedLength != tt.opts.Length {
				t.Errorf("Generate() RequestedLength = %d, want %d", got.RequestedLength, tt.opts.Length)
			}
		})
	}
}

func TestGenerateCoversEverySelectedClass(t *testing.T) {
	engine := newTestEngine()

	for _, set := range allClassSets() {
		t.Run(set.String(), func(t *testing.T) {
			// Minimum length gives the filler the least room, so coverage
			// depends on the reserved positions.
			for i := 0; i < 50; i++ {
				got, err := engine.Generate(GenerationOptions{Length: MinLength, Classes: set})
				if err != nil {
					t.Fatalf("Generate() unexpected error: %v", err)
				}
				for _, c := range set.Classes() {
					if !strings.ContainsAny(got.Text, c.Alphabet()) {
						t.Errorf("password %q missing %s character", got.Text, c)
					}
				}
			}
		})
	}
}

func TestGenerateStaysInsideSelectedAlphabet(t *testing.T) {
	engine := newTestEngine()

	for _, set := range allClassSets() {
		t.Run(set.String(), func(t *testing.T) {
			alphabet := set.Alphabet()
			got, err := engine.Generate(GenerationOptions{Length: 64, Classes: set})
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			for _, ch := range got.Text {
				if !strings.ContainsRune(alphabet, ch) {
					t.Errorf("password contains unexpected character %q (not in %q)", string(ch), alphabet)
				}
			}
		})
	}
}

func TestGenerateProducesUniquePasswords(t *testing.T) {
	engine := newTestEngine()
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		got, err := engine.Generate(DefaultGenerationOptions())
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if seen[got.Text] {
			t.Errorf("duplicate password generated: %q", got.Text)
		}
		seen[got.Text] = true
	}
}

func TestGenerateScoresGeneratedText(t *testing.T) {
	est := &stubEstimator{est: Estimate{Score: 3, GuessesLog10: 12, CrackTimeDisplay: "2 minutes"}}
	engine := New(nil, est)

	got, err := engine.Generate(DefaultGenerationOptions())
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if len(est.calls) != 1 || est.calls[0] != got.Text {
		t.Fatalf("estimator calls = %q, want exactly [%q]", est.calls, got.Text)
	}
	if got.Strength.Score != 3 || got.Strength.CrackTimeDisplay != "2 minutes" {
		t.Errorf("Generate() strength = %+v", got.Strength)
	}
}

func TestGenerateRandomSourceFailure(t *testing.T) {
	engine := New(errReader{}, &stubEstimator{})

	_, err := engine.Generate(DefaultGenerationOptions())
	if err == nil {
		t.Fatal("Generate() expected error from failing random source")
	}
	if !strings.Contains(err.Error(), "entropy exhausted") {
		t.Errorf("Generate() error = %v, want wrapped source error", err)
	}
}

func TestGenerateUsesInjectedSource(t *testing.T) {
	// An all-zero source always yields index 0, so every draw is the first
	// character of its alphabet.
	engine := New(bytes.NewReader(make([]byte, 4096)), &stubEstimator{})

	got, err := engine.Generate(GenerationOptions{Length: 8, Classes: NewClassSet(Uppercase, Digit)})
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	for _, ch := range got.Text {
		if ch != 'A' && ch != '0' {
			t.Fatalf("password %q drew %q, want only 'A' or '0' from a zero source", got.Text, ch)
		}
	}
	if !strings.ContainsRune(got.Text, '0') {
		t.Errorf("password %q missing reserved digit", got.Text)
	}
}

// chiSquaredCritical is the df=25 critical value at p≈1e-6, loose enough to
// keep the test stable while still catching modulo bias on the aggregate.
const chiSquaredCritical = 74.5

func chiSquared(counts map[byte]int, alphabet string, total int) float64 {
	expected := float64(total) / float64(len(alphabet))
	var sum float64
	for i := 0; i < len(alphabet); i++ {
		d := float64(counts[alphabet[i]]) - expected
		sum += d * d / expected
	}
	return sum
}

func TestGenerateUniformDistribution(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping statistical test in short mode")
	}

	const samples = 10000
	engine := New(nil, &stubEstimator{})
	opts := GenerationOptions{Length: MinLength, Classes: NewClassSet(Lowercase)}

	perPosition := make([]map[byte]int, MinLength)
	for i := range perPosition {
		perPosition[i] = make(map[byte]int)
	}
	aggregate := make(map[byte]int)

	for i := 0; i < samples; i++ {
		got, err := engine.Generate(opts)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		for pos := 0; pos < len(got.Text); pos++ {
			perPosition[pos][got.Text[pos]]++
			aggregate[got.Text[pos]]++
		}
	}

	for pos, counts := range perPosition {
		if x := chiSquared(counts, lowercaseChars, samples); x > chiSquaredCritical {
			t.Errorf("position %d: chi-squared = %.2f exceeds %.2f", pos, x, chiSquaredCritical)
		}
	}
	if x := chiSquared(aggregate, lowercaseChars, samples*MinLength); x > chiSquaredCritical {
		t.Errorf("aggregate chi-squared = %.2f exceeds %.2f", x, chiSquaredCritical)
	}
}

func TestClampLength(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 8}, {7, 8}, {8, 8}, {20, 20}, {128, 128}, {129, 128}, {999, 128},
	}
	for _, tt := range tests {
		if got := ClampLength(tt.in); got != tt.want {
			t.Errorf("ClampLength(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
