package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.BoardURL != DefaultBoardURL {
		t.Errorf("unexpected board url: %q", cfg.BoardURL)
	}
	if cfg.Interval() != 10*time.Minute {
		t.Errorf("expected 10m interval, got %v", cfg.Interval())
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.RequestTimeout())
	}
	if cfg.NotifyOnFirstRun {
		t.Error("first run should default to baseline-only")
	}
	if cfg.WebhookURL != "" {
		t.Errorf("webhook url should be empty without env, got %q", cfg.WebhookURL)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
board_url = "https://example.com/board"
interval_minutes = 5
db_path = "/tmp/annwatch-test.db"
notify_on_first_run = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/x/y")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.BoardURL != "https://example.com/board" {
		t.Errorf("unexpected board url: %q", cfg.BoardURL)
	}
	if cfg.Interval() != 5*time.Minute {
		t.Errorf("expected 5m interval, got %v", cfg.Interval())
	}
	if cfg.DBPath != "/tmp/annwatch-test.db" {
		t.Errorf("unexpected db path: %q", cfg.DBPath)
	}
	if !cfg.NotifyOnFirstRun {
		t.Error("expected notify_on_first_run from file")
	}
	if cfg.WebhookURL != "https://discord.com/api/webhooks/x/y" {
		t.Errorf("unexpected webhook url: %q", cfg.WebhookURL)
	}
}

func TestLoad_BadFileSurfaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("interval_minutes = \"ten\""), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}
