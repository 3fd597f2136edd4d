package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Port               string
	Env                string
	LogLevel           slog.Level
	DatabaseDSN        string
	JWTSecret          string
	JWTExpiry          time.Duration
	EntryKey           string
	PasswordExpiryDays int
	RateLimitRPS       float64
	RateLimitBurst     int
}

// Load reads the configuration from the environment and exits the process
// if it is unusable.
func Load() Config {
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

// FromEnv reads the configuration without validating it.
func FromEnv() Config {
	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnvAsLevel("LOG_LEVEL", slog.LevelInfo),
		DatabaseDSN:        getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/passforge?parseTime=true"),
		JWTSecret:          getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:          getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
		EntryKey:           getEnv("ENTRY_KEY", ""),
		PasswordExpiryDays: getEnvAsInt("PASSWORD_EXPIRY_DAYS", 90),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10),
	}
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) Validate() error {
	if c.IsProduction() && c.JWTSecret == devJWTSecret {
		return errors.New("JWT_SECRET must be set in production environment")
	}
	if c.IsProduction() && c.EntryKey == "" {
		return errors.New("ENTRY_KEY must be set in production environment")
	}
	if c.PasswordExpiryDays < 1 {
		return errors.New("PASSWORD_EXPIRY_DAYS must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsLevel(key string, fallback slog.Level) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(os.Getenv(key)))); err != nil {
		return fallback
	}
	return level
}
