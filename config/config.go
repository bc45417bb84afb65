package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration. DBDriver selects between the postgres
	// deployment database and the sqlite file used for development.
	DBDriver    string
	DatabaseURL string
	SQLitePath  string

	// Redis configuration (optional; empty disables the token cache)
	RedisURL string

	// Secret used to sign admin session cookies
	SessionSecret string

	// Recipe listing order, validated against sortable columns
	RecipeOrdering string

	// Image storage configuration
	StorageDriver string // "local" or "s3"
	S3Bucket      string
	AWSRegion     string
	UploadDir     string
	BaseURL       string

	// Rate limiting for credential endpoints
	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadConfig creates a new Config instance from the environment,
// reading a .env file first when one is present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		SQLitePath:     getEnv("SQLITE_PATH", "recipehub.db"),
		RedisURL:       getEnv("REDIS_URL", ""),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		RecipeOrdering: getEnv("RECIPE_ORDERING", "title DESC"),
		StorageDriver:  getEnv("STORAGE_DRIVER", "local"),
		S3Bucket:       getEnv("S3_BUCKET_NAME", ""),
		AWSRegion:      getEnv("AWS_REGION", ""),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
	}

	if cfg.SessionSecret == "" && !IsProduction() {
		cfg.SessionSecret = "insecure-dev-session-secret"
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("Invalid integer for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
		log.Printf("Invalid float for %s, using default %f", key, defaultValue)
	}
	return defaultValue
}
