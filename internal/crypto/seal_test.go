package crypto

import (
	"bytes"
	"strings"
	"testing"
)

func newTestSealer(t *testing.T) *Sealer {
	t.Helper()
	s, err := NewSealer(bytes.Repeat([]byte{7}, KeySize))
	if err != nil {
		t.Fatalf("NewSealer() unexpected error: %v", err)
	}
	return s
}

func TestSealOpen(t *testing.T) {
	s := newTestSealer(t)
	aad := []byte("entry-1")

	sealed, err := s.Seal([]byte("hunter2"), aad)
	if err != nil {
		t.Fatalf("Seal() unexpected error: %v", err)
	}
	if bytes.Contains(sealed, []byte("hunter2")) {
		t.Fatal("Seal() output contains plaintext")
	}

	got, err := s.Open(sealed, aad)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if string(got) != "hunter2" {
		t.Errorf("Open() = %q, want %q", got, "hunter2")
	}
}

func TestSealUsesFreshNonce(t *testing.T) {
	s := newTestSealer(t)

	a, err := s.Seal([]byte("same"), nil)
	if err != nil {
		t.Fatalf("Seal() unexpected error: %v", err)
	}
	b, err := s.Seal([]byte("same"), nil)
	if err != nil {
		t.Fatalf("Seal() unexpected error: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("Seal() produced identical output twice")
	}
}

func TestOpenRejects(t *testing.T) {
	s := newTestSealer(t)
	sealed, err := s.Seal([]byte("secret"), []byte("entry-1"))
	if err != nil {
		t.Fatalf("Seal() unexpected error: %v", err)
	}

	tampered := append([]byte(nil), sealed...)
	tampered[len(tampered)-1] ^= 0xff

	other, err := NewSealer(bytes.Repeat([]byte{9}, KeySize))
	if err != nil {
		t.Fatalf("NewSealer() unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		sealer *Sealer
		data   []byte
		aad    string
		want   error
	}{
		{name: "tampered", sealer: s, data: tampered, aad: "entry-1", want: ErrDecryptionFailure},
		{name: "wrong aad", sealer: s, data: sealed, aad: "entry-2", want: ErrDecryptionFailure},
		{name: "wrong key", sealer: other, data: sealed, aad: "entry-1", want: ErrDecryptionFailure},
		{name: "truncated", sealer: s, data: sealed[:10], aad: "entry-1", want: ErrMalformedSealed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.sealer.Open(tt.data, []byte(tt.aad)); err != tt.want {
				t.Errorf("Open() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseKey(t *testing.T) {
	if _, err := ParseKey(strings.Repeat("ab", KeySize)); err != nil {
		t.Errorf("ParseKey() unexpected error: %v", err)
	}
	if _, err := ParseKey("abcd"); err != ErrInvalidKey {
		t.Errorf("ParseKey(short) error = %v, want ErrInvalidKey", err)
	}
	if _, err := ParseKey("zz"); err == nil {
		t.Error("ParseKey(non-hex) expected error")
	}
	if _, err := NewSealer([]byte("short")); err != ErrInvalidKey {
		t.Errorf("NewSealer(short) error = %v, want ErrInvalidKey", err)
	}
}
