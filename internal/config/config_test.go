package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppName != "eventdesk" {
		t.Errorf("expected default app name, got %q", cfg.AppName)
	}
	if cfg.Admin.RootEmail != "admin@salaback.com" {
		t.Errorf("expected default root admin email, got %q", cfg.Admin.RootEmail)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("expected 24h session ttl, got %s", cfg.Auth.SessionTTL)
	}
	if cfg.Database.URL == "" {
		t.Error("database URL should be assembled from parts when unset")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("ROOT_ADMIN_EMAIL", "chefe@example.com")
	t.Setenv("SESSION_TTL", "90")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != "9999" {
		t.Errorf("expected port override, got %q", cfg.HTTP.Port)
	}
	if cfg.Admin.RootEmail != "chefe@example.com" {
		t.Errorf("expected root email override, got %q", cfg.Admin.RootEmail)
	}
	if cfg.Auth.SessionTTL != 90*time.Second {
		t.Errorf("bare integers should parse as seconds, got %s", cfg.Auth.SessionTTL)
	}
	if cfg.Address() != "0.0.0.0:9999" {
		t.Errorf("unexpected address %q", cfg.Address())
	}
}
