package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Service authentication
	APIKey string

	// Classification provider configuration
	ChatAPIURL     string
	ZeroShotAPIURL string
	ProviderAPIKey string
	ProviderModel  string

	// Classifier response cache
	ClassifierCacheTTL time.Duration
}

// LoadConfig creates a new Config instance from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "tastemap"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),

		APIKey: os.Getenv("API_KEY"),

		ChatAPIURL:     getEnv("CHAT_API_URL", "https://router.huggingface.co/fireworks-ai/inference/v1/chat/completions"),
		ZeroShotAPIURL: getEnv("ZERO_SHOT_API_URL", "https://api-inference.huggingface.co/models/facebook/bart-large-mnli"),
		ProviderAPIKey: os.Getenv("HF_API_KEY"),
		ProviderModel:  getEnv("PROVIDER_MODEL", "accounts/fireworks/models/qwen2p5-72b-instruct"),

		ClassifierCacheTTL: 24 * time.Hour,
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if ttlStr := os.Getenv("CLASSIFIER_CACHE_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid CLASSIFIER_CACHE_TTL value %q: %w", ttlStr, err)
		}
		cfg.ClassifierCacheTTL = ttl
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
