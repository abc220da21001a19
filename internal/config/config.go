package config

import (
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the planner daemon.
type Config struct {
	DatabaseURL   string
	TopUpInterval time.Duration
	SummaryTime   string // HH:MM, local time
	ExportDir     string // empty disables ICS export
	OwnerEmail    string // account to create on startup; empty skips bootstrap
	OwnerName     string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TopUpInterval: parseInterval(strings.TrimSpace(os.Getenv("TOPUP_INTERVAL_HOURS"))),
		SummaryTime:   strings.TrimSpace(os.Getenv("SUMMARY_TIME")),
		ExportDir:     strings.TrimSpace(os.Getenv("ICS_EXPORT_DIR")),
		OwnerEmail:    strings.TrimSpace(os.Getenv("OWNER_EMAIL")),
		OwnerName:     strings.TrimSpace(os.Getenv("OWNER_NAME")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "recurring_planner.db"
	}

	if cfg.TopUpInterval == 0 {
		cfg.TopUpInterval = 6 * time.Hour
	}

	if cfg.SummaryTime == "" {
		cfg.SummaryTime = "08:00"
	}

	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
