package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Verify    VerifyConfig
	Payment   PaymentConfig
	Reminders ReminderConfig
}

type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Path string
}

type SessionConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	WizardTTL time.Duration
}

type VerifyConfig struct {
	Delay            time.Duration
	DocumentPassRate float64
}

type PaymentConfig struct {
	Delay       time.Duration
	SuccessRate float64
	Fee         decimal.Decimal
}

type ReminderConfig struct {
	Enabled bool
	// Offsets are how far ahead of a booking's start date a reminder fires,
	// e.g. 24h and 2h before.
	Offsets []time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present so local runs don't need exported vars.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Addr:         getEnv("ADDR", ":8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "careconnect.db"),
		},
		Session: SessionConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-production"),
			TokenTTL:  getDurationEnv("SESSION_TTL", 30*24*time.Hour),
			WizardTTL: getDurationEnv("WIZARD_SESSION_TTL", 2*time.Hour),
		},
		Verify: VerifyConfig{
			Delay:            getDurationEnv("VERIFY_DELAY", 2500*time.Millisecond),
			DocumentPassRate: getFloatEnv("VERIFY_DOCUMENT_PASS_RATE", 0.9),
		},
		Payment: PaymentConfig{
			Delay:       getDurationEnv("PAYMENT_DELAY", 2*time.Second),
			SuccessRate: getFloatEnv("PAYMENT_SUCCESS_RATE", 1.0),
			Fee:         getDecimalEnv("REGISTRATION_FEE", decimal.NewFromInt(500)),
		},
		Reminders: ReminderConfig{
			Enabled: getEnv("ENABLE_REMINDERS", "") == "1",
			Offsets: getDurationsEnv("REMIND_OFFSETS", []time.Duration{24 * time.Hour, 2 * time.Hour}),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getFloatEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			return f
		}
	}
	return def
}

// getDurationsEnv parses a comma-separated duration list like "24h,2h,1h".
// Malformed or non-positive entries are skipped; an empty result falls back
// to the defaults.
func getDurationsEnv(key string, def []time.Duration) []time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]time.Duration, 0, len(parts))
	for _, p := range parts {
		d, err := time.ParseDuration(strings.TrimSpace(p))
		if err == nil && d > 0 {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func getDecimalEnv(key string, def decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.IsPositive() {
			return d
		}
	}
	return def
}
