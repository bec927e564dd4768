// Package config reads service settings from environment variables.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/hinwise/smarttanken/pkg/tankerkoenig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Tankerkönig provider access.
	APIKey           string
	BaseURL          string
	ProviderTimeout  time.Duration
	ProviderCacheTTL time.Duration

	// HTTP serving.
	HTTPAddr           string
	ShutdownTimeout    time.Duration
	RateLimitPerMinute int

	LogLevel  string
	LogFormat string

	// Market is the timezone the trend heuristic reads hours in.
	MarketTZ string
	Market   *time.Location

	// PLZTablePath optionally replaces the bundled postal table.
	PLZTablePath string
}

// Load reads configuration from environment variables, applying defaults
// where unset. The API key is not required here; commands that talk to the
// provider call RequireAPIKey.
func Load() (*Config, error) {
	providerTimeout, err := parsePositiveDuration("TANKER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cacheTTL, err := parsePositiveDuration("PROVIDER_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	rateLimit, err := parseRateLimit()
	if err != nil {
		return nil, err
	}

	tzName := envOrDefault("MARKET_TZ", "Europe/Berlin")
	market, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, errors.New("invalid MARKET_TZ")
	}

	return &Config{
		APIKey:           os.Getenv("TANKER_API_KEY"),
		BaseURL:          envOrDefault("TANKER_BASE_URL", tankerkoenig.DefaultBaseURL),
		ProviderTimeout:  providerTimeout,
		ProviderCacheTTL: cacheTTL,

		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout:    shutdownTimeout,
		RateLimitPerMinute: rateLimit,

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),

		MarketTZ: tzName,
		Market:   market,

		PLZTablePath: os.Getenv("PLZ_TABLE"),
	}, nil
}

// RequireAPIKey fails when no provider key is configured. The lookup
// subcommand works without one; everything touching live prices does not.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return errors.New("TANKER_API_KEY is required")
	}
	return nil
}

func parsePositiveDuration(name, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(name, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return d, nil
}

func parseRateLimit() (int, error) {
	n, err := strconv.Atoi(envOrDefault("RATE_LIMIT_PER_MINUTE", "20"))
	if err != nil || n <= 0 {
		return 0, errors.New("invalid RATE_LIMIT_PER_MINUTE")
	}
	return n, nil
}

func envOrDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
