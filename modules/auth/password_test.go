package auth

import (
	"testing"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	tests := []struct {
		name     string
		password string
	}{
		{name: "simple password", password: "senha123"},
		{name: "complex password", password: "P@ssw0rd!#$%^&*()"},
		{name: "unicode password", password: "coração123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if hash == "" {
				t.Error("Hash() returned empty string")
			}
			if hash == tt.password {
				t.Error("Hash() returned the original password")
			}
			if !hasher.Verify(tt.password, hash) {
				t.Error("Verify() returned false for correct password")
			}
		})
	}
}

func TestPasswordHasher_RejectsWrongPassword(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("senha-certa")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if hasher.Verify("senha-errada", hash) {
		t.Error("Verify() returned true for wrong password")
	}
	if hasher.Verify("", hash) {
		t.Error("Verify() returned true for empty password")
	}
}

func TestPasswordHasher_HashesAreSalted(t *testing.T) {
	hasher := NewPasswordHasher()

	h1, err := hasher.Hash("mesma-senha")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := hasher.Hash("mesma-senha")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}
