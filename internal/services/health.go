package services

import (
	"fmt"
	"log"
	"os"

	"github.com/pantryworks/recipedb/internal/config"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Database     string            `json:"database"`
	MediaStore   string            `json:"media_store"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check the image blob store root
	info, err := os.Stat(cfg.MediaRoot)
	switch {
	case err != nil:
		result.Status = "unhealthy"
		result.MediaStore = "missing"
		result.Details["media_store_error"] = err.Error()
		log.Printf("Health check failed - media store: %v", err)
	case !info.IsDir():
		result.Status = "unhealthy"
		result.MediaStore = "not a directory"
		log.Printf("Health check failed - media store %s is not a directory", cfg.MediaRoot)
	default:
		result.MediaStore = "ok"
		result.Details["media_root"] = cfg.MediaRoot
	}

	return result
}
