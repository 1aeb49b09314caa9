package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RESERVATION_HTTP_PORT",
		"RESERVATION_SQLITE_DSN",
		"RESERVATION_SESSION_TTL",
		"RESERVATION_SESSION_SWEEP",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPPort != 8080 {
		t.Fatalf("expected default port, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:reservations.db" {
		t.Fatalf("expected default DSN, got %q", cfg.SQLiteDSN)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected default TTL, got %v", cfg.SessionTTL)
	}
	if cfg.SessionSweep != "@every 10m" {
		t.Fatalf("expected default sweep schedule, got %q", cfg.SessionSweep)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RESERVATION_HTTP_PORT", "9090")
	t.Setenv("RESERVATION_SQLITE_DSN", "file:custom.db")
	t.Setenv("RESERVATION_SESSION_TTL", "45m")
	t.Setenv("RESERVATION_SESSION_SWEEP", "@hourly")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPPort != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:custom.db" {
		t.Fatalf("expected custom DSN, got %q", cfg.SQLiteDSN)
	}
	if cfg.SessionTTL != 45*time.Minute {
		t.Fatalf("expected 45m TTL, got %v", cfg.SessionTTL)
	}
	if cfg.SessionSweep != "@hourly" {
		t.Fatalf("expected @hourly sweep, got %q", cfg.SessionSweep)
	}
}

func TestLoadReportsAllInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("RESERVATION_HTTP_PORT", "not-a-port")
	t.Setenv("RESERVATION_SESSION_TTL", "-5m")
	t.Setenv("RESERVATION_SESSION_SWEEP", "whenever")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid values")
	}
	for _, key := range []string{"RESERVATION_HTTP_PORT", "RESERVATION_SESSION_TTL", "RESERVATION_SESSION_SWEEP"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %s in error, got %v", key, err)
		}
	}
}

func TestLoadIgnoresWhitespaceValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("RESERVATION_HTTP_PORT", "   ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("expected default port, got %d", cfg.HTTPPort)
	}
}
