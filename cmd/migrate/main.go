package main

import (
	"log"

	"github.com/arogyalab/backend/config"
	"github.com/arogyalab/backend/internal/database"
)

// Applies the schema to the configured database without starting the
// API. Useful in deploy pipelines that migrate before rolling pods.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("All migrations applied successfully.")
}
