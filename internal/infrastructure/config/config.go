package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all process configuration.
type Config struct {
	// App
	Port string
	Env  string

	// Postgres
	DatabaseURL string

	// Redis (cache, pub/sub fan-out, asynq backing store)
	RedisURL string

	// Asynq
	AsynqConcurrency int
	AsynqQueues      string // CSV like "default=3,ops=1"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		DatabaseURL:      getEnv("DB_URL", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		AsynqConcurrency: getEnvInt("ASYNQ_CONCURRENCY", 10),
		AsynqQueues:      getEnv("ASYNQ_QUEUES", "default=3,ops=1"),
	}
	return cfg, nil
}

// IsProduction reports whether the process runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
