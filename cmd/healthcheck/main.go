package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/pantryworks/recipedb/internal/config"
	"github.com/pantryworks/recipedb/internal/database"
	"github.com/pantryworks/recipedb/internal/services"
	"github.com/pantryworks/recipedb/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Fast reachability probe before opening a pooled connection
	if cfg.DBType != "sqlite" {
		if err := utils.PingDatabase(cfg.DBHost, cfg.DBPort); err != nil {
			log.Fatalf("Database endpoint unreachable: %v", err)
		}
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Perform health check
	result := services.HealthCheck(cfg, db)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
}
