package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signClaims(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}
	return s
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Generate(42, "user@example.com")
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("Validate() UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Validate() Email = %q", claims.Email)
	}
}

func TestValidateRejects(t *testing.T) {
	secret := "test-secret"
	now := time.Now()
	valid := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenAudience},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	wrongIssuer := valid
	wrongIssuer.Issuer = "wrong-issuer"
	wrongAudience := valid
	wrongAudience.Audience = jwt.ClaimStrings{"wrong-audience"}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))

	otherSecret, err := NewTokenManager("other-secret", time.Hour).Generate(42, "a@b.co")
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-valid-token"},
		{name: "wrong secret", token: otherSecret},
		{name: "wrong issuer", token: signClaims(t, secret, Claims{RegisteredClaims: wrongIssuer, UserID: 42})},
		{name: "wrong audience", token: signClaims(t, secret, Claims{RegisteredClaims: wrongAudience, UserID: 42})},
		{name: "expired", token: signClaims(t, secret, Claims{RegisteredClaims: expired, UserID: 42})},
		{name: "missing user", token: signClaims(t, secret, Claims{RegisteredClaims: valid})},
	}

	m := NewTokenManager(secret, time.Hour)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Validate(tt.token); err != ErrInvalidToken {
				t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestValidateUsesClock(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)
	issued := time.Now()
	m.now = func() time.Time { return issued }

	token, err := m.Generate(7, "a@b.co")
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := m.Validate(token); err != ErrInvalidToken {
		t.Errorf("Validate() after expiry error = %v, want ErrInvalidToken", err)
	}
}
