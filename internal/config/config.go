package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	// WPA_TIMEZONE resolves on hosts without a zoneinfo database
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
	"github.com/VincentSchmalor/WPAnalysis/internal/logger"
	"github.com/VincentSchmalor/WPAnalysis/internal/scraper"
)

// Notification modes for new results
const (
	NotifyNone     = "none"
	NotifyDryRun   = "dry-run"
	NotifyTwitter  = "twitter"
	NotifyTelegram = "telegram"
)

type Config struct {
	// League page
	LeagueURL    string
	FetchTimeout time.Duration
	Timezone     string

	// Server
	Port               string
	RefreshInterval    time.Duration
	MinRefreshInterval time.Duration
	AllowedOrigins     []string

	// Analysis
	ShootoutPolicy league.ShootoutPolicy

	// Logging
	LogLevel logger.Level

	// Notifications
	Notify string
}

// Load reads an optional .env file and then the WPA_* environment variables.
// Variables already set in the environment win over the .env file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{
		LeagueURL:      getEnv("WPA_LEAGUE_URL", scraper.DefaultLeagueURL),
		Timezone:       getEnv("WPA_TIMEZONE", "Europe/Berlin"),
		Port:           getEnv("WPA_PORT", "8050"),
		AllowedOrigins: getList("WPA_ALLOWED_ORIGINS", "*"),
		Notify:         strings.ToLower(getEnv("WPA_NOTIFY", NotifyNone)),
	}

	var err error
	if cfg.FetchTimeout, err = getDuration("WPA_FETCH_TIMEOUT", scraper.Timeout); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getDuration("WPA_REFRESH_INTERVAL", 0); err != nil {
		return nil, err
	}
	if cfg.MinRefreshInterval, err = getDuration("WPA_MIN_REFRESH_INTERVAL", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShootoutPolicy, err = league.ParseShootoutPolicy(getEnv("WPA_SHOOTOUT_POLICY", "")); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = logger.ParseLevel(getEnv("WPA_LOG_LEVEL", string(logger.LevelInfo))); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be caught while parsing.
func (c *Config) Validate() error {
	switch c.Notify {
	case NotifyNone, NotifyDryRun, NotifyTwitter, NotifyTelegram:
	default:
		return fmt.Errorf("invalid WPA_NOTIFY: %q (must be 'none', 'dry-run', 'twitter' or 'telegram')", c.Notify)
	}

	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid WPA_PORT: %q", c.Port)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("WPA_FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.RefreshInterval < 0 || c.MinRefreshInterval < 0 {
		return fmt.Errorf("refresh intervals must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid WPA_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Addr is the listen address of the dashboard server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getList(key, defaultValue string) []string {
	parts := strings.Split(getEnv(key, defaultValue), ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	return list
}
