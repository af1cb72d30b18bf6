package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("", time.Minute, time.Hour, "test"); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	m, err := NewManager("secret", 15*time.Minute, time.Hour, "devconnect")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	access, refresh, accessExp, refreshExp, err := m.GenerateTokenPair("u1", "alice@example.com", "alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if accessExp >= refreshExp {
		t.Errorf("access exp %d should precede refresh exp %d", accessExp, refreshExp)
	}

	claims, err := m.ValidateToken(access)
	if err != nil {
		t.Fatalf("validate access: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "alice@example.com" || claims.Username != "alice" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Type != TokenTypeAccess {
		t.Errorf("type = %q, want %q", claims.Type, TokenTypeAccess)
	}
	if claims.Issuer != "devconnect" {
		t.Errorf("issuer = %q", claims.Issuer)
	}

	refreshClaims, err := m.ValidateToken(refresh)
	if err != nil {
		t.Fatalf("validate refresh: %v", err)
	}
	if refreshClaims.Type != TokenTypeRefresh {
		t.Errorf("type = %q, want %q", refreshClaims.Type, TokenTypeRefresh)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m1, _ := NewManager("secret-one", time.Minute, time.Hour, "test")
	m2, _ := NewManager("secret-two", time.Minute, time.Hour, "test")

	access, _, _, _, err := m1.GenerateTokenPair("u1", "a@b.c", "alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := m2.ValidateToken(access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	m, _ := NewManager("secret", -time.Minute, time.Hour, "test")

	access, _, _, _, err := m.GenerateTokenPair("u1", "a@b.c", "alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := m.ValidateToken(access); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("err = %v, want ErrExpiredToken", err)
	}
}

func TestRefreshTokens(t *testing.T) {
	m, _ := NewManager("secret", time.Minute, time.Hour, "test")

	_, refresh, _, _, err := m.GenerateTokenPair("u1", "alice@example.com", "alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	newAccess, newRefresh, _, _, err := m.RefreshTokens(refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	claims, err := m.ValidateToken(newAccess)
	if err != nil {
		t.Fatalf("validate new access: %v", err)
	}
	if claims.UserID != "u1" || claims.Type != TokenTypeAccess {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := m.ValidateToken(newRefresh); err != nil {
		t.Errorf("validate new refresh: %v", err)
	}
}

func TestRefreshTokensRejectsAccessToken(t *testing.T) {
	m, _ := NewManager("secret", time.Minute, time.Hour, "test")

	access, _, _, _, err := m.GenerateTokenPair("u1", "a@b.c", "alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, _, _, _, err := m.RefreshTokens(access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
