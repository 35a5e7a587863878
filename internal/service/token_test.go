package service

import (
	"errors"
	"testing"
	"time"

	"conduit/internal/model"
)

func newTestTokenService(secret string, maxAge time.Duration) *TokenService {
	return NewTokenService(secret, maxAge)
}

func TestTokenService_GenerateVerify_Roundtrip(t *testing.T) {
	svc := newTestTokenService("test-secret", time.Hour)

	token, err := svc.Generate(42, "jake")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("user_id = %d, want 42", claims.UserID)
	}
	if claims.Username != "jake" {
		t.Errorf("username = %q, want %q", claims.Username, "jake")
	}
	if remaining := time.Until(claims.ExpiresAt); remaining <= 0 || remaining > time.Hour {
		t.Errorf("expiry %v outside expected window", claims.ExpiresAt)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := newTestTokenService("test-secret", time.Hour)

	// Issue in the past, verify in the present.
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }
	token, err := svc.Generate(42, "jake")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(token); !errors.Is(err, model.ErrInvalidToken) {
		t.Errorf("error = %v, want %v", err, model.ErrInvalidToken)
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	issuer := newTestTokenService("secret-a", time.Hour)
	verifier := newTestTokenService("secret-b", time.Hour)

	token, err := issuer.Generate(42, "jake")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, model.ErrInvalidToken) {
		t.Errorf("error = %v, want %v", err, model.ErrInvalidToken)
	}
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	svc := newTestTokenService("test-secret", time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(input); !errors.Is(err, model.ErrInvalidToken) {
			t.Errorf("Verify(%q) error = %v, want %v", input, err, model.ErrInvalidToken)
		}
	}
}

func TestTokenService_Verify_Tampered(t *testing.T) {
	svc := newTestTokenService("test-secret", time.Hour)

	token, err := svc.Generate(42, "jake")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Flip the last character of the signature.
	tampered := token[:len(token)-1]
	if token[len(token)-1] == 'A' {
		tampered += "B"
	} else {
		tampered += "A"
	}

	if _, err := svc.Verify(tampered); !errors.Is(err, model.ErrInvalidToken) {
		t.Errorf("error = %v, want %v", err, model.ErrInvalidToken)
	}
}
