package policy

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	symbolChars    = "!@#$%^&*()_-+={}[]|;:<>?/~"
)

// CharacterClass is a named category of symbols used as a coverage unit in
// generation and a requirement unit in validation.
type CharacterClass uint8

const (
	Lowercase CharacterClass = iota
	Uppercase
	Digit
	Symbol

	numClasses
)

var classNames = [numClasses]string{"lowercase", "uppercase", "digit", "symbol"}

var classAlphabets = [numClasses]string{lowercaseChars, uppercaseChars, digitChars, symbolChars}

// AllClasses lists every character class in canonical order.
func AllClasses() []CharacterClass {
	return []CharacterClass{Lowercase, Uppercase, Digit, Symbol}
}

// Alphabet returns the fixed set of characters belonging to the class.
func (c CharacterClass) Alphabet() string {
	if c >= numClasses {
		return ""
	}
	return classAlphabets[c]
}

func (c CharacterClass) String() string {
	if c >= numClasses {
		return fmt.Sprintf("CharacterClass(%d)", uint8(c))
	}
	return classNames[c]
}

// Contains reports whether r belongs to the class alphabet.
func (c CharacterClass) Contains(r rune) bool {
	return strings.ContainsRune(c.Alphabet(), r)
}

func (c CharacterClass) MarshalText() ([]byte, error) {
	if c >= numClasses {
		return nil, fmt.Errorf("unknown character class %d", uint8(c))
	}
	return []byte(classNames[c]), nil
}

func (c *CharacterClass) UnmarshalText(text []byte) error {
	parsed, err := ParseCharacterClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCharacterClass maps a class name back to its CharacterClass.
func ParseCharacterClass(name string) (CharacterClass, error) {
	for i, n := range classNames {
		if n == name {
			return CharacterClass(i), nil
		}
	}
	return 0, fmt.Errorf("unknown character class %q", name)
}

// ClassSet is a set of character classes.
type ClassSet uint8

// NewClassSet builds a set from the given classes.
func NewClassSet(classes ...CharacterClass) ClassSet {
	var s ClassSet
	for _, c := range classes {
		s = s.With(c)
	}
	return s
}

// With returns a copy of the set that also contains c.
func (s ClassSet) With(c CharacterClass) ClassSet {
	if c >= numClasses {
		return s
	}
	return s | 1<<c
}

func (s ClassSet) Has(c CharacterClass) bool {
	return c < numClasses && s&(1<<c) != 0
}

func (s ClassSet) Len() int {
	n := 0
	for c := CharacterClass(0); c < numClasses; c++ {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Classes returns the members of the set in canonical order.
func (s ClassSet) Classes() []CharacterClass {
	classes := make([]CharacterClass, 0, numClasses)
	for c := CharacterClass(0); c < numClasses; c++ {
		if s.Has(c) {
			classes = append(classes, c)
		}
	}
	return classes
}

// Alphabet returns the union of the member alphabets without duplicate characters.
func (s ClassSet) Alphabet() string {
	var b strings.Builder
	seen := make(map[rune]bool)
	for _, c := range s.Classes() {
		for _, r := range c.Alphabet() {
			if seen[r] {
				continue
			}
			seen[r] = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s ClassSet) String() string {
	names := make([]string, 0, numClasses)
	for _, c := range s.Classes() {
		names = append(names, c.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// MarshalJSON encodes the set as a list of class names in canonical order.
func (s ClassSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Classes())
}

func (s *ClassSet) UnmarshalJSON(data []byte) error {
	var classes []CharacterClass
	if err := json.Unmarshal(data, &classes); err != nil {
		return err
	}
	*s = NewClassSet(classes...)
	return nil
}
