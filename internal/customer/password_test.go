package customer

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := svc.HashPassword("Correct-Horse-7")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if err := svc.VerifyPassword("Correct-Horse-7", hash); err != nil {
		t.Errorf("Expected password to verify, got %v", err)
	}

	if err := svc.VerifyPassword("wrong-password", hash); err != ErrPasswordMismatch {
		t.Errorf("Expected mismatch, got %v", err)
	}
}

func TestHashEmptyPasswordFails(t *testing.T) {
	svc := NewPasswordService()

	if _, err := svc.HashPassword(""); err != ErrInvalidPassword {
		t.Errorf("Expected ErrInvalidPassword, got %v", err)
	}
}

func TestLongPasswordsBeyondBcryptLimit(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	// 100 bytes, beyond bcrypt's 72-byte limit
	long := strings.Repeat("Ab1!", 25)

	hash, err := svc.HashPassword(long)
	if err != nil {
		t.Fatalf("HashPassword failed for long password: %v", err)
	}

	if err := svc.VerifyPassword(long, hash); err != nil {
		t.Errorf("Expected long password to verify, got %v", err)
	}

	// A password differing only after byte 72 must not verify
	other := long[:len(long)-1] + "x"
	if err := svc.VerifyPassword(other, hash); err != ErrPasswordMismatch {
		t.Errorf("Expected mismatch for altered tail, got %v", err)
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	svc := NewPasswordService()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"strong mixed", "Str0ng-Pass", false},
		{"three classes", "lowerUPPER1", false},
		{"too short", "Ab1!", true},
		{"only lowercase", "alllowercaseletters", true},
		{"two classes", "lowercase123", true},
		{"symbols count", "lower-case-pass1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidatePasswordStrength(tt.password)
			if tt.wantErr && err == nil {
				t.Error("Expected weak-password error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected acceptance, got %v", err)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Anna.Schmidt@Example.COM "); got != "anna.schmidt@example.com" {
		t.Errorf("Unexpected normalization: %q", got)
	}
}
