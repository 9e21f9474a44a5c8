package database

import (
	"gorm.io/gorm"

	"github.com/arogyalab/backend/internal/models"
)

// RunMigrations applies the schema via GORM auto-migration. Both the
// postgres deployment and the sqlite test databases go through here.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.HealthReport{},
		&models.ActivityLog{},
		&models.ChatHistory{},
		&models.Message{},
	)
}
