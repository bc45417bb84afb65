package config

import (
	"fmt"
	"strings"
)

// sortable columns accepted for RECIPE_ORDERING
var recipeOrderings = map[string]bool{
	"title ASC":        true,
	"title DESC":       true,
	"created_at ASC":   true,
	"created_at DESC":  true,
	"time_minutes ASC": true,
	"price ASC":        true,
}

// ValidateConfig checks if the configuration meets the requirements
// for the current environment
func ValidateConfig(cfg *Config) error {
	var errors []string

	switch cfg.DBDriver {
	case "sqlite":
		if cfg.SQLitePath == "" {
			errors = append(errors, "SQLITE_PATH is required when DB_DRIVER is sqlite")
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required when DB_DRIVER is postgres")
		}
	default:
		errors = append(errors, fmt.Sprintf("unknown DB_DRIVER %q", cfg.DBDriver))
	}

	if !recipeOrderings[cfg.RecipeOrdering] {
		errors = append(errors, fmt.Sprintf("unsupported RECIPE_ORDERING %q", cfg.RecipeOrdering))
	}

	switch cfg.StorageDriver {
	case "local":
		if cfg.UploadDir == "" {
			errors = append(errors, "UPLOAD_DIR is required when STORAGE_DRIVER is local")
		}
	case "s3":
		if cfg.S3Bucket == "" {
			errors = append(errors, "S3_BUCKET_NAME is required when STORAGE_DRIVER is s3")
		}
	default:
		errors = append(errors, fmt.Sprintf("unknown STORAGE_DRIVER %q", cfg.StorageDriver))
	}

	// Admin sessions cannot be signed without a secret. LoadConfig
	// fills in a development fallback outside production.
	if cfg.SessionSecret == "" && IsProduction() {
		errors = append(errors, "SESSION_SECRET is required in production")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
