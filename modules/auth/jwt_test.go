package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenManager_GenerateAndVerify(t *testing.T) {
	config := TokenConfig{
		SecretKey: "test-secret-key",
		TTL:       3600 * time.Second,
	}
	manager := NewTokenManager(config)

	token, err := manager.Generate(42)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if token == "" {
		t.Error("Generate() returned empty token")
	}

	userID, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("Verify() userID = %v, want %v", userID, 42)
	}
}

func TestTokenManager_RejectsDifferentSecret(t *testing.T) {
	issuer := NewTokenManager(TokenConfig{SecretKey: "secret-a", TTL: time.Hour})
	verifier := NewTokenManager(TokenConfig{SecretKey: "secret-b", TTL: time.Hour})

	token, err := issuer.Generate(7)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	manager := NewTokenManager(TokenConfig{SecretKey: "test-secret-key", TTL: -time.Minute})

	token, err := manager.Generate(7)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = manager.Verify(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify() error = %v, want ErrExpiredToken", err)
	}
}

func TestTokenManager_RejectsMalformedToken(t *testing.T) {
	manager := NewTokenManager(DefaultTokenConfig())

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify(%q) error = %v, want ErrInvalidToken", tt.token, err)
			}
		})
	}
}

func TestDefaultTokenConfig_TTL(t *testing.T) {
	manager := NewTokenManager(DefaultTokenConfig())
	if got := manager.TTLSeconds(); got != 3600 {
		t.Errorf("TTLSeconds() = %v, want 3600", got)
	}
}
