package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/estrie-eats/checkout-backend/pkg/config"
)

func mintToken(t *testing.T, cfg config.JWTConfig, customerID uuid.UUID, email string, expiry time.Time) string {
	t.Helper()
	claims := AccessTokenClaims{
		CustomerID: customerID,
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return signed
}

func TestParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "estrie-eats"}
	customerID := uuid.New()
	token := mintToken(t, cfg, customerID, "sam@example.com", time.Now().Add(time.Hour))

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.CustomerID != customerID {
		t.Fatalf("expected customer %s, got %s", customerID, claims.CustomerID)
	}
	if claims.Email != "sam@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "estrie-eats"}
	token := mintToken(t, cfg, uuid.New(), "", time.Now().Add(-time.Minute))

	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	wrongIssuer := config.JWTConfig{Secret: "secret", Issuer: "someone-else"}
	token := mintToken(t, wrongIssuer, uuid.New(), "", time.Now().Add(time.Hour))

	cfg := config.JWTConfig{Secret: "secret", Issuer: "estrie-eats"}
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected wrong issuer to be rejected")
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	minted := config.JWTConfig{Secret: "other", Issuer: "estrie-eats"}
	token := mintToken(t, minted, uuid.New(), "", time.Now().Add(time.Hour))

	cfg := config.JWTConfig{Secret: "secret", Issuer: "estrie-eats"}
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected bad signature to be rejected")
	}
}
