package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// Environment name constants used in ENVIRONMENT config field.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Snapshot backends accepted by SNAPSHOT_BACKEND.
const (
	SnapshotBackendFile     = "file"
	SnapshotBackendPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP
	HTTPAddr string `conf:"default::8080,env:HTTP_ADDR"`

	// Order history snapshot
	SnapshotBackend string `conf:"default:file,enum:file|postgres,env:SNAPSHOT_BACKEND"`
	OrdersFile      string `conf:"default:orders.json,env:ORDERS_FILE"`

	// Database (postgres snapshot backend, durable event bus). Empty runs the
	// event bus in-process.
	DatabaseURL string `conf:"env:DATABASE_URL"`
	// Redis (sessions, order cache). Empty keeps sessions in cookies and disables the cache.
	RedisURL      string        `conf:"env:REDIS_URL"`
	OrderCacheTTL time.Duration `conf:"default:24h,env:ORDER_CACHE_TTL"`

	// Application
	LogLevel    string `conf:"default:info,env:LOG_LEVEL"`
	Environment string `conf:"default:development,enum:development|testing|production,env:ENVIRONMENT"`

	// Session carries the shopper's last-shown products and delivery details.
	SessionName          string        `conf:"default:voiceshop_session,env:SESSION_NAME"`
	SessionMaxAge        time.Duration `conf:"default:168h,env:SESSION_MAX_AGE"`
	SessionAuthKey       string        `conf:"default:dev-auth-key-must-be-32-bytes!!!,env:SESSION_AUTH_KEY,noprint"`
	SessionEncryptionKey string        `conf:"default:dev-encryption-key-32-bytes-long,env:SESSION_ENCRYPTION_KEY,noprint"`

	// CORS: comma-separated list of allowed origins; use * to allow all (dev only)
	CORSAllowedOrigins string `conf:"default:*,env:CORS_ALLOWED_ORIGINS"`

	// Observability
	ServiceName    string `conf:"default:voiceshop,env:SERVICE_NAME"`
	ServiceVersion string `conf:"default:dev,env:SERVICE_VERSION"`
	OtelEndpoint   string `conf:"env:OTEL_ENDPOINT"`
	SentryDSN      string `conf:"env:SENTRY_DSN,noprint"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	var cfg Config
	_ = godotenv.Load()
	if _, err := conf.Parse("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Validate checks settings that must be consistent in every environment.
func Validate(cfg *Config) error {
	if cfg.SnapshotBackend == SnapshotBackendPostgres && cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set when SNAPSHOT_BACKEND=postgres")
	}
	return nil
}

// ValidateForProduction enforces security requirements when ENVIRONMENT=production.
// Returns an error if any critical settings are missing or unsafe.
// No-ops for non-production environments.
func ValidateForProduction(cfg *Config) error {
	if cfg.Environment != EnvProduction {
		return nil
	}

	var errs []string

	if len(cfg.SessionAuthKey) < 32 {
		errs = append(errs, fmt.Sprintf(
			"SESSION_AUTH_KEY must be at least 32 bytes (got %d); generate with: openssl rand -base64 32",
			len(cfg.SessionAuthKey),
		))
	}

	switch len(cfg.SessionEncryptionKey) {
	case 16, 24, 32:
	default:
		errs = append(errs, fmt.Sprintf(
			"SESSION_ENCRYPTION_KEY must be 16, 24 or 32 bytes (got %d); generate with: openssl rand -hex 16",
			len(cfg.SessionEncryptionKey),
		))
	}

	if cfg.LogLevel == "debug" {
		errs = append(errs, "LOG_LEVEL must not be 'debug' in production (may leak sensitive data)")
	}

	if cfg.SnapshotBackend == SnapshotBackendFile && strings.TrimSpace(cfg.OrdersFile) == "" {
		errs = append(errs, "ORDERS_FILE must be set when SNAPSHOT_BACKEND=file")
	}

	if cfg.CORSAllowedOrigins == "*" {
		errs = append(errs, "CORS_ALLOWED_ORIGINS must list explicit origins in production")
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("production config validation failed: %s", strings.Join(errs, "; "))
}
