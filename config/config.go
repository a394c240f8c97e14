// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Environment  string
	LogLevel     string
	Database     DatabaseConfig
	Redis        RedisConfig
	Backup       BackupConfig
	Gemini       GeminiConfig
	Bank         BankConfig
	Email        EmailConfig
	Session      SessionConfig
	Subscription SubscriptionConfig
}

// DatabaseConfig holds the local record store configuration.
type DatabaseConfig struct {
	Driver          string // "sqlite" or "postgres"
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// BackupConfig selects and configures the remote blob store.
type BackupConfig struct {
	Backend      string // "redis", "gcs" or "none"
	Bucket       string
	Prefix       string
	HistoryLimit int
	Timeout      time.Duration
}

// GeminiConfig holds receipt OCR configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// BankConfig holds bank aggregator configuration.
type BankConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// EmailConfig holds email service configuration.
type EmailConfig struct {
	ResendAPIKey string
	FromName     string
	FromEmail    string
	ReplyTo      string
	AppBaseURL   string
}

// SessionConfig identifies the user the local engine runs for.
type SessionConfig struct {
	UserID string
}

// SubscriptionConfig holds the cached subscription of the session user.
type SubscriptionConfig struct {
	Tier      string
	Status    string
	ExpiresAt string // RFC3339, empty for no expiry
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Driver:          getEnv("DATABASE_DRIVER", "sqlite"),
			URL:             getEnv("DATABASE_URL", "fintrack.db"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 1),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Backup: BackupConfig{
			Backend:      getEnv("BACKUP_BACKEND", "redis"),
			Bucket:       getEnv("BACKUP_BUCKET", "finance-tracker-backups"),
			Prefix:       getEnv("BACKUP_PREFIX", "fintrack"),
			HistoryLimit: getEnvAsInt("BACKUP_HISTORY_LIMIT", 10),
			Timeout:      getEnvAsDuration("BACKUP_TIMEOUT", 30*time.Second),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		Bank: BankConfig{
			BaseURL:      getEnv("BANK_AGGREGATOR_URL", ""),
			ClientID:     getEnv("BANK_AGGREGATOR_CLIENT_ID", ""),
			ClientSecret: getEnv("BANK_AGGREGATOR_CLIENT_SECRET", ""),
			Timeout:      getEnvAsDuration("BANK_AGGREGATOR_TIMEOUT", 20*time.Second),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromName:     getEnv("RESEND_FROM_NAME", "Finance Tracker"),
			FromEmail:    getEnv("RESEND_FROM_EMAIL", "onboarding@resend.dev"),
			ReplyTo:      getEnv("RESEND_REPLY_TO", ""),
			AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:5173"),
		},
		Session: SessionConfig{
			UserID: getEnv("FINTRACK_USER_ID", ""),
		},
		Subscription: SubscriptionConfig{
			Tier:      getEnv("SUBSCRIPTION_TIER", "free"),
			Status:    getEnv("SUBSCRIPTION_STATUS", "active"),
			ExpiresAt: getEnv("SUBSCRIPTION_EXPIRES_AT", ""),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
