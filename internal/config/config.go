package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment
// variables. It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	DB     DatabaseConfig
	Redis  RedisConfig
	Import ImportConfig
	Worker WorkerConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// ImportConfig contains ingestion defaults.
type ImportConfig struct {
	// OrderRetentionDays is the rolling history window enforced before each
	// order import.
	OrderRetentionDays int
	// OrdersDropDir is scanned by the order sync worker for
	// orders_latest.csv / orders_latest.xlsx exported by the management
	// system. Empty disables the worker.
	OrdersDropDir string
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	OrderSyncInterval time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it is loaded first. It returns a populated Config
// or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if the file is missing so production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Ingestion
	cfg.Import = ImportConfig{
		OrderRetentionDays: getEnvInt("ORDER_RETENTION_DAYS", 31),
		OrdersDropDir:      getEnv("ORDERS_DROP_DIR", ""),
	}
	if cfg.Import.OrderRetentionDays <= 0 {
		return nil, fmt.Errorf("ORDER_RETENTION_DAYS must be positive, got %d", cfg.Import.OrderRetentionDays)
	}

	// Workers
	var err error
	if cfg.Worker.OrderSyncInterval, err = parseDurationEnv("ORDER_SYNC_INTERVAL", "1h"); err != nil {
		return nil, fmt.Errorf("invalid ORDER_SYNC_INTERVAL: %w", err)
	}

	// Basic validation for DB parameters.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for admin authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a
// default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as a
// time.Duration, falling back to the provided default when unset.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
