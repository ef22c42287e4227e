package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lumicart/storefront/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "https://idp.example.com/"}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, mutate func(*ProfileClaims)) string {
	t.Helper()

	claims := &ProfileClaims{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   "auth0|user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	if mutate != nil {
		mutate(claims)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func TestParseProfileToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	token := mintTestToken(t, cfg, nil)

	claims, err := ParseProfileToken(cfg, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Email != "ada@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.Subject != "auth0|user-1" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
}

func TestParseProfileTokenRejectsBadIssuer(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	token := mintTestToken(t, cfg, func(c *ProfileClaims) {
		c.Issuer = "https://evil.example.com/"
	})
	if _, err := ParseProfileToken(cfg, token); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}
}

func TestParseProfileTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	token := mintTestToken(t, cfg, func(c *ProfileClaims) {
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	})
	if _, err := ParseProfileToken(cfg, token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseProfileTokenRequiresSubject(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	token := mintTestToken(t, cfg, func(c *ProfileClaims) {
		c.Subject = ""
	})
	if _, err := ParseProfileToken(cfg, token); err == nil {
		t.Fatal("expected missing subject to fail")
	}
}
