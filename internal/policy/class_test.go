package policy

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAlphabetsAreDisjoint(t *testing.T) {
	classes := AllClasses()
	for i, a := range classes {
		for _, b := range classes[i+1:] {
			if strings.ContainsAny(a.Alphabet(), b.Alphabet()) {
				t.Errorf("%s and %s alphabets overlap", a, b)
			}
		}
	}
}

func TestClassSet(t *testing.T) {
	set := NewClassSet(Digit, Lowercase, Digit)

	if set.Len() != 2 {
		t.Errorf("Len() = %d, want 2", set.Len())
	}
	if !set.Has(Lowercase) || !set.Has(Digit) {
		t.Errorf("set %s missing members", set)
	}
	if set.Has(Uppercase) || set.Has(Symbol) {
		t.Errorf("set %s has unexpected members", set)
	}

	got := set.Classes()
	if len(got) != 2 || got[0] != Lowercase || got[1] != Digit {
		t.Errorf("Classes() = %v, want canonical order [lowercase digit]", got)
	}
	if set.Alphabet() != lowercaseChars+digitChars {
		t.Errorf("Alphabet() = %q", set.Alphabet())
	}
	if set.String() != "{lowercase,digit}" {
		t.Errorf("String() = %q", set.String())
	}
}

func TestClassSetIgnoresUnknownClass(t *testing.T) {
	set := NewClassSet(CharacterClass(9))
	if set.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for unknown class", set.Len())
	}
}

func TestFullAlphabetHasNoDuplicates(t *testing.T) {
	alphabet := NewClassSet(AllClasses()...).Alphabet()
	seen := make(map[rune]bool)
	for _, r := range alphabet {
		if seen[r] {
			t.Errorf("duplicate character %q in effective alphabet", r)
		}
		seen[r] = true
	}
	want := len(lowercaseChars) + len(uppercaseChars) + len(digitChars) + len(symbolChars)
	if len(alphabet) != want {
		t.Errorf("alphabet length = %d, want %d", len(alphabet), want)
	}
}

func TestCharacterClassJSON(t *testing.T) {
	data, err := json.Marshal([]CharacterClass{Lowercase, Symbol})
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if string(data) != `["lowercase","symbol"]` {
		t.Errorf("Marshal() = %s", data)
	}

	var got []CharacterClass
	if err := json.Unmarshal([]byte(`["uppercase","digit"]`), &got); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != Uppercase || got[1] != Digit {
		t.Errorf("Unmarshal() = %v", got)
	}

	if err := json.Unmarshal([]byte(`["emoji"]`), &got); err == nil {
		t.Error("Unmarshal() expected error for unknown class")
	}
}

func TestGenerationOptionsJSON(t *testing.T) {
	data, err := json.Marshal(DefaultGenerationOptions())
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	want := `{"length":20,"classes":["lowercase","uppercase","digit","symbol"]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var opts GenerationOptions
	if err := json.Unmarshal([]byte(`{"length":16,"classes":["symbol","digit","digit"]}`), &opts); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if opts.Length != 16 || opts.Classes != NewClassSet(Digit, Symbol) {
		t.Errorf("Unmarshal() = %+v", opts)
	}

	if err := json.Unmarshal([]byte(`{"classes":["emoji"]}`), &opts); err == nil {
		t.Error("Unmarshal() expected error for unknown class")
	}

	empty, err := json.Marshal(GenerationOptions{Length: 8})
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if string(empty) != `{"length":8,"classes":[]}` {
		t.Errorf("Marshal() = %s", empty)
	}
}
