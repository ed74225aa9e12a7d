package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultBoardURL lists the Announcements (Altcoins) board sorted by
// first post descending, so new topics appear at the top.
const DefaultBoardURL = "https://bitcointalk.org/index.php?board=159.0;sort=first_post;desc"

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type Config struct {
	BoardURL              string `toml:"board_url"`
	UserAgent             string `toml:"user_agent"`
	IntervalMinutes       int    `toml:"interval_minutes"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	DBPath                string `toml:"db_path"`
	NotifyOnFirstRun      bool   `toml:"notify_on_first_run"`

	// WebhookURL comes only from the DISCORD_WEBHOOK_URL environment
	// variable; it is required only when a run attempts delivery.
	WebhookURL string `toml:"-"`
	ConfigPath string `toml:"-"`
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "annwatch", "config.toml")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "annwatch", "state.db")
}

func Load(configPath string) (*Config, error) {
	cfg := &Config{
		BoardURL:              DefaultBoardURL,
		UserAgent:             defaultUserAgent,
		IntervalMinutes:       10,
		RequestTimeoutSeconds: 30,
		DBPath:                defaultDBPath(),
	}

	if configPath == "" {
		configPath = defaultConfigPath()
	}
	cfg.ConfigPath = configPath

	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.WebhookURL = os.Getenv("DISCORD_WEBHOOK_URL")

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}

	return cfg, nil
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
