package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	service := NewService("test-secret-key", "mj-advisor", time.Hour)

	token, expiresAt, err := service.GenerateToken("bot-1")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if token == "" {
		t.Error("Token should not be empty")
	}
	if expiresAt <= time.Now().Unix() {
		t.Error("ExpiresAt should be in the future")
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.ClientID != "bot-1" {
		t.Errorf("Expected ClientID bot-1, got %s", claims.ClientID)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	signer := NewService("secret-a", "mj-advisor", time.Hour)
	verifier := NewService("secret-b", "mj-advisor", time.Hour)

	token, _, err := signer.GenerateToken("bot-1")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if _, err := verifier.ValidateToken(token); err != ErrTokenInvalid {
		t.Errorf("Expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	signer := NewService("secret", "someone-else", time.Hour)
	verifier := NewService("secret", "mj-advisor", time.Hour)

	token, _, _ := signer.GenerateToken("bot-1")
	if _, err := verifier.ValidateToken(token); err != ErrTokenInvalid {
		t.Errorf("Expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	service := NewService("test-secret-key", "mj-advisor", -time.Minute)

	token, _, err := service.GenerateToken("bot-1")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if _, err := service.ValidateToken(token); err != ErrTokenExpired {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	service := NewService("test-secret-key", "mj-advisor", time.Hour)
	if _, err := service.ValidateToken("not.a.token"); err != ErrTokenInvalid {
		t.Errorf("Expected ErrTokenInvalid, got %v", err)
	}
}
