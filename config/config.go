package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `env:"GO_ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"5001"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	DBUrl       string `env:"DATABASE_URL"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"1h"`

	UploadsDir     string `env:"UPLOADS_DIR" envDefault:"./uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"5242880"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Optional read cache; empty disables it.
	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	SweepSchedule string        `env:"UPLOAD_SWEEP_SCHEDULE" envDefault:"@every 1h"`
	SweepGrace    time.Duration `env:"UPLOAD_SWEEP_GRACE" envDefault:"10m"`

	LoginRateLimit float64 `env:"LOGIN_RATE_LIMIT" envDefault:"0.5"`
	LoginBurst     int     `env:"LOGIN_BURST" envDefault:"5"`

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a reverse proxy that overwrites those headers.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	Mail MailConfig
}

// MailConfig selects and configures the outgoing mail provider.
type MailConfig struct {
	Provider           string `env:"MAIL_PROVIDER" envDefault:"noop"`
	FromAddress        string `env:"MAIL_FROM_ADDRESS" envDefault:"no-reply@evently.local"`
	FromName           string `env:"MAIL_FROM_NAME" envDefault:"Evently"`
	SESRegion          string `env:"AWS_REGION" envDefault:"us-east-1"`
	SESAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SESSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	InsecureSkipVerify bool   `env:"SES_INSECURE_SKIP_VERIFY" envDefault:"false"`
}

// ErrMissingJWTSecret is returned by Load when JWT_SECRET is unset.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// ErrMissingDatabaseURL is returned by Load when DATABASE_URL is unset.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

// IsProduction reports whether GO_ENV is production.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment reports whether GO_ENV is development.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	// In production we rely on the process environment only.
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: .env file couldn't be loaded: %v", err)
		}
	}
	return Parse()
}

// Parse builds a Config from the current process environment without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, ErrMissingJWTSecret
	}
	if strings.TrimSpace(cfg.DBUrl) == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTExpiry <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRY must be positive, got %s", cfg.JWTExpiry)
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}
	return cfg, nil
}
