// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// ValidatorConfig provides settings for phone number validation.
type ValidatorConfig interface {
	GetDefaultRegion() string
}

// NotifierConfig provides settings for the message log stub.
type NotifierConfig interface {
	GetMessageLogPath() string
	GetBotLogPath() string
	GetActivationTTL() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// QuotaConfig provides guest usage limits for the check API.
type QuotaConfig interface {
	GetGuestDailyChecks() int
	GetBulkMaxNumbers() int
}

// RedisConfig provides the optional Redis connection used for quota counters.
type RedisConfig interface {
	GetRedisURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env              string
	DefaultRegion    string
	MessageLogPath   string
	BotLogPath       string
	ActivationTTL    time.Duration
	HTTPAddr         string
	CORSAllowAll     bool
	CORSOrigins      []string
	RateLimitRPS     float64
	RateLimitBurst   int
	GuestDailyChecks int
	BulkMaxNumbers   int
	RedisURL         string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// ValidatorConfig implementation
func (c *Config) GetDefaultRegion() string { return c.DefaultRegion }

// NotifierConfig implementation
func (c *Config) GetMessageLogPath() string       { return c.MessageLogPath }
func (c *Config) GetBotLogPath() string           { return c.BotLogPath }
func (c *Config) GetActivationTTL() time.Duration { return c.ActivationTTL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// QuotaConfig implementation
func (c *Config) GetGuestDailyChecks() int { return c.GuestDailyChecks }
func (c *Config) GetBulkMaxNumbers() int   { return c.BulkMaxNumbers }

// RedisConfig implementation
func (c *Config) GetRedisURL() string { return c.RedisURL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:8000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "true"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	region, err := loadDefaultRegion()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		DefaultRegion:    region,
		MessageLogPath:   getEnv("MESSAGE_LOG_PATH", "data/telegram_messages.json"),
		BotLogPath:       getEnv("BOT_LOG_PATH", "data/telegram_bot.log"),
		ActivationTTL:    mustDuration(getEnv("ACTIVATION_TTL", "30s")),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		RateLimitRPS:     mustFloat(getEnv("RATE_LIMIT_RPS", "5")),
		RateLimitBurst:   mustInt(getEnv("RATE_LIMIT_BURST", "10")),
		GuestDailyChecks: mustInt(getEnv("GUEST_DAILY_CHECKS", "50")),
		BulkMaxNumbers:   mustInt(getEnv("BULK_MAX_NUMBERS", "100")),
		RedisURL:         getEnv("REDIS_URL", ""),
	}

	if cfg.ActivationTTL <= 0 {
		return nil, fmt.Errorf("ACTIVATION_TTL must be a positive duration")
	}
	if cfg.MessageLogPath == "" || cfg.BotLogPath == "" {
		return nil, fmt.Errorf("MESSAGE_LOG_PATH and BOT_LOG_PATH are required")
	}
	if cfg.GuestDailyChecks < 1 || cfg.BulkMaxNumbers < 1 {
		return nil, fmt.Errorf("GUEST_DAILY_CHECKS and BULK_MAX_NUMBERS must be positive")
	}

	return cfg, nil
}

// LoadValidator reads only the settings the validator CLI needs, so a bad
// notifier or API setting cannot stop a number check.
func LoadValidator() (*Config, error) {
	_ = godotenv.Load()

	region, err := loadDefaultRegion()
	if err != nil {
		return nil, err
	}
	return &Config{
		Env:           getEnv("APP_ENV", "development"),
		DefaultRegion: region,
	}, nil
}

func loadDefaultRegion() (string, error) {
	region := strings.ToUpper(strings.TrimSpace(getEnv("DEFAULT_REGION", "")))
	if region != "" && !isRegionCode(region) {
		return "", fmt.Errorf("DEFAULT_REGION must be a two-letter region code, got %q", region)
	}
	return region, nil
}

// isRegionCode reports whether s is exactly two ASCII upper-case letters.
func isRegionCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
