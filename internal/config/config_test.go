package config

import (
	"testing"
	"time"
)

func TestLoadFromEnvironmentOnly(t *testing.T) {
	t.Setenv("WAREHOUSE_DATABASE_URL", "postgres://app:pw@localhost:5432/warehouse")
	t.Setenv("WAREHOUSE_JWT_SECRET", "env-secret")
	t.Setenv("WAREHOUSE_EXTERNAL_API_KEY", "env-sync-key")
	t.Setenv("WAREHOUSE_ACCESS_TOKEN_TTL", "45m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected load to succeed from env vars, got %v", err)
	}
	if cfg.DatabaseURL != "postgres://app:pw@localhost:5432/warehouse" {
		t.Errorf("unexpected database url %q", cfg.DatabaseURL)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Errorf("unexpected jwt secret %q", cfg.JWTSecret)
	}
	if cfg.ExternalAPIKey != "env-sync-key" {
		t.Errorf("unexpected external api key %q", cfg.ExternalAPIKey)
	}
	if cfg.AccessTokenTTL != 45*time.Minute {
		t.Errorf("expected 45m token ttl, got %v", cfg.AccessTokenTTL)
	}

	// Keys not set in the environment keep their defaults.
	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected default redis addr, got %q", cfg.RedisAddr)
	}
	if cfg.LoginBurst != 5 {
		t.Errorf("expected default login burst, got %d", cfg.LoginBurst)
	}
}

func TestLoadMissingRequiredFields(t *testing.T) {
	t.Run("database url", func(t *testing.T) {
		t.Setenv("WAREHOUSE_JWT_SECRET", "env-secret")
		if _, err := Load(); err == nil {
			t.Fatal("expected error when database url is missing")
		}
	})
	t.Run("jwt secret", func(t *testing.T) {
		t.Setenv("WAREHOUSE_DATABASE_URL", "postgres://app:pw@localhost:5432/warehouse")
		if _, err := Load(); err == nil {
			t.Fatal("expected error when jwt secret is missing")
		}
	})
}
