package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if got := cfg.Checkout.CartTTL; got != 720*time.Hour {
		t.Fatalf("expected default cart ttl 720h, got %v", got)
	}

	if cfg.Checkout.Currency != "usd" {
		t.Fatalf("expected default currency usd, got %q", cfg.Checkout.Currency)
	}

	if cfg.Catalog.Timeout != 10*time.Second {
		t.Fatalf("unexpected catalog timeout %v", cfg.Catalog.Timeout)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestStripeEnvironmentNormalized(t *testing.T) {
	cfg := StripeConfig{Env: "  LIVE "}
	if got := cfg.Environment(); got != "live" {
		t.Fatalf("expected live, got %q", got)
	}
	if got := (StripeConfig{}).Environment(); got != "test" {
		t.Fatalf("expected test fallback, got %q", got)
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvJWTSecret, "secret")
	t.Setenv("LUMICART_JWT_ISSUER", "https://idp.example.com/")
	t.Setenv(EnvCatalogURL, "http://localhost:8080/api")
	t.Setenv(EnvOrdersURL, "http://localhost:8080/api")
	t.Setenv(EnvReturnsURL, "http://localhost:8080/api")
}
