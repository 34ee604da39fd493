package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.App.Port)
	}
	if cfg.Postgres.MaxConns != 10 {
		t.Errorf("expected default max conns 10, got %d", cfg.Postgres.MaxConns)
	}
	if !cfg.Postgres.RunMigrations {
		t.Error("migrations should run by default")
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("expected default bcrypt cost 12, got %d", cfg.Auth.BcryptCost)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Port != "9090" {
		t.Errorf("expected port override, got %s", cfg.App.Port)
	}
	if cfg.Postgres.RunMigrations {
		t.Error("migrations override not applied")
	}
	if cfg.Auth.AccessTokenTTLMinutes != 15 {
		t.Errorf("expected TTL override, got %d", cfg.Auth.AccessTokenTTLMinutes)
	}
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid REDIS_DB")
	}
}

func TestAddr(t *testing.T) {
	app := AppConfig{Host: "0.0.0.0", Port: "8080"}
	if got := app.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("unexpected addr %s", got)
	}
}

func TestTimeouts(t *testing.T) {
	if got := (AppConfig{RequestTimeoutSeconds: 0}).RequestTimeout(); got != 0 {
		t.Errorf("expected disabled timeout, got %v", got)
	}
	if got := (ScoringConfig{TimeoutSeconds: 0}).Timeout(); got != 20*time.Second {
		t.Errorf("expected fallback timeout, got %v", got)
	}
	if got := (ScoringConfig{TimeoutSeconds: 5}).Timeout(); got != 5*time.Second {
		t.Errorf("expected configured timeout, got %v", got)
	}
}
