// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Hashing    HashingConfig
	Validation ValidationConfig
	RateLimit  RateLimitConfig
	RabbitMQ   RabbitMQConfig
	Auth       AuthConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// IsDevelopment reports whether human-readable logs should be used.
func (a AppConfig) IsDevelopment() bool {
	return strings.EqualFold(a.Env, "development")
}

type DatabaseConfig struct {
	Driver      string
	DSN         string
	AutoMigrate bool
}

type HashingConfig struct {
	Iterations int
	SaltSize   int
	KeySize    int
}

type ValidationConfig struct {
	EmailPattern string
}

// RateLimitConfig bounds requests per client. RedisURL empty keeps counters in process.
type RateLimitConfig struct {
	Max      int
	Window   time.Duration
	RedisURL string
}

// RabbitMQConfig enables customer events when URL is set.
type RabbitMQConfig struct {
	URL   string
	Queue string
}

// AuthConfig enables bearer-token checks on the customer API when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

var supportedDrivers = map[string]bool{"postgres": true, "mysql": true, "sqlite": true, "memory": true}

// New returns a viper instance carrying every default.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=customers port=5432 sslmode=disable")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("HASH_ITERATIONS", 10000)
	v.SetDefault("HASH_SALT_SIZE", 16)
	v.SetDefault("HASH_KEY_SIZE", 32)
	v.SetDefault("VALIDATION_EMAIL_PATTERN", "")
	v.SetDefault("RATE_LIMIT_MAX", 60)
	v.SetDefault("RATE_LIMIT_WINDOW", time.Minute)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "customer_events")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("AUTH_TOKEN_TTL", 24*time.Hour)
	v.AutomaticEnv()
	return v
}

// Load reads envFile (if it exists) into the process environment and builds a Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return FromViper(New())
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Driver:      strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:         v.GetString("DATABASE_DSN"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Hashing: HashingConfig{
			Iterations: v.GetInt("HASH_ITERATIONS"),
			SaltSize:   v.GetInt("HASH_SALT_SIZE"),
			KeySize:    v.GetInt("HASH_KEY_SIZE"),
		},
		Validation: ValidationConfig{
			EmailPattern: v.GetString("VALIDATION_EMAIL_PATTERN"),
		},
		RateLimit: RateLimitConfig{
			Max:      v.GetInt("RATE_LIMIT_MAX"),
			Window:   v.GetDuration("RATE_LIMIT_WINDOW"),
			RedisURL: v.GetString("REDIS_URL"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("RABBITMQ_QUEUE"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			TokenTTL:  v.GetDuration("AUTH_TOKEN_TTL"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if !supportedDrivers[c.Database.Driver] {
		return fmt.Errorf("invalid DB_DRIVER %q", c.Database.Driver)
	}
	if c.Database.Driver != "memory" && c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required for driver %s", c.Database.Driver)
	}
	if c.Hashing.Iterations <= 0 || c.Hashing.SaltSize <= 0 || c.Hashing.KeySize <= 0 {
		return fmt.Errorf("hashing parameters must be positive")
	}
	if c.RateLimit.Max <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit max and window must be positive")
	}
	return nil
}
