package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr     string
	LogLevel slog.Level

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers string

	// Admin panel credentials. PasswordHash is a bcrypt hash; an empty value
	// disables admin endpoints entirely.
	AdminUsername      string
	AdminPasswordHash  string
	AdminJWTSigningKey string
	AdminSessionTTL    time.Duration

	// Public endpoint rate limiting (per client IP, fixed window).
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// StrictIdentity enables the atomic create-or-merge write path that
	// closes the duplicate-client race. Off by default to preserve the
	// documented resolve-then-write semantics.
	StrictIdentity bool
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:               envOr("CLIENTHUB_ADDR", ":8080"),
		LogLevel:           parseLogLevel(os.Getenv("CLIENTHUB_LOG_LEVEL")),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		KafkaBrokers:       os.Getenv("KAFKA_BROKERS"),
		AdminUsername:      envOr("ADMIN_USERNAME", "admin"),
		AdminPasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminJWTSigningKey: os.Getenv("ADMIN_JWT_SIGNING_KEY"),
		AdminSessionTTL:    envDurationOr("ADMIN_SESSION_TTL", 12*time.Hour),
		RateLimitRequests:  envIntOr("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:    envDurationOr("RATE_LIMIT_WINDOW", time.Minute),
		StrictIdentity:     os.Getenv("STRICT_IDENTITY") == "true",
	}
	if cfg.AdminJWTSigningKey == "" {
		// Use a default for development - should be overridden in production
		cfg.AdminJWTSigningKey = "dev-secret-key-change-in-production"
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
