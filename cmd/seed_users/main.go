package main

import (
	"fmt"
	"log"

	"github.com/arogyalab/backend/config"
	"github.com/arogyalab/backend/internal/database"
	"github.com/arogyalab/backend/internal/models"
	"github.com/arogyalab/backend/internal/service"
	"github.com/arogyalab/backend/internal/types"
)

// Seeds demo accounts for local development: two patients and a doctor.
// Existing usernames are skipped so the command is rerunnable.
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

	auth := service.NewAuthService(db, cfg.JWTSecret)

	seeds := []types.RegisterRequest{
		{
			Username: "demo_patient",
			Password: "demopass123",
			Age:      34,
			Gender:   "female",
			Height:   162,
			Weight:   58,
			Goal:     "weight_loss",
		},
		{
			Username: "demo_patient2",
			Password: "demopass123",
			Age:      47,
			Gender:   "male",
			Height:   175,
			Weight:   82,
			Goal:     "diabetes_control",
		},
		{
			Username: "demo_doctor",
			Password: "demopass123",
			Role:     models.RoleDoctor,
		},
	}

	for i := range seeds {
		user, _, err := auth.Register(&seeds[i])
		if err == service.ErrUserExists {
			fmt.Printf("Skipping %s (already exists)\n", seeds[i].Username)
			continue
		}
		if err != nil {
			log.Fatalf("Failed to seed %s: %v", seeds[i].Username, err)
		}
		fmt.Printf("Created %s (role %s, patient ID %s)\n", user.Username, user.Role, user.PatientID)
	}
}
