package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// StoreMode selects which backend the memo store gateway talks to. It is
// resolved once at startup and injected, never re-read per call.
type StoreMode string

const (
	StoreModeRemote StoreMode = "remote"
	StoreModeMock   StoreMode = "mock"
)

type AppConfig struct {
	// Rate Limiting
	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	// Response Cache
	CacheEnabled bool
	CacheConfigs map[string]ResponseCacheConfig

	// HTTPS Enforcement
	EnforceHTTPS bool

	// Environment
	Environment string

	// Backing stores
	StoreMode   StoreMode
	DatabaseURL string
	RedisURL    string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type ResponseCacheConfig struct {
	TTL     time.Duration
	Enabled bool
}

// GetDefaultConfig returns default configuration
func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"/api/auth/register": {
				Requests: 5,
				Window:   time.Minute,
			},
			"/api/auth/login": {
				Requests: 10,
				Window:   time.Minute,
			},
			"/api/memos": {
				Requests: 100,
				Window:   time.Minute,
			},
		},
		CacheEnabled: true,
		CacheConfigs: map[string]ResponseCacheConfig{
			"/api/memos": {
				TTL:     3 * time.Second,
				Enabled: true,
			},
		},
		EnforceHTTPS: false,
		Environment:  "development",
		StoreMode:    StoreModeRemote,
	}
}

// Load builds the configuration from the environment, with .env autoload.
func Load() *AppConfig {
	_ = godotenv.Load()

	cfg := GetDefaultConfig()

	if os.Getenv("GIN_MODE") == "release" {
		cfg.Environment = "production"
		cfg.EnforceHTTPS = true
	}

	if os.Getenv("USE_MOCK_DATA") == "true" {
		cfg.StoreMode = StoreModeMock
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.RedisURL = os.Getenv("REDIS_URL")

	return cfg
}
