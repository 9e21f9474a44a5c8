package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser   = "user"
	RoleDoctor = "doctor"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Username     string         `gorm:"size:80;uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"not null" json:"-"`
	PatientID    string         `gorm:"size:16;uniqueIndex;not null" json:"patient_id"`
	Age          int            `json:"age"`
	Gender       string         `gorm:"size:10" json:"gender"`
	Height       float64        `json:"height"`
	Weight       float64        `json:"weight"`
	Goal         string         `gorm:"size:32;default:'weight_loss'" json:"goal"`
	Role         string         `gorm:"size:16;default:'user'" json:"role"`
	ProfileImage string         `gorm:"size:200" json:"profile_image"`
}

func (User) TableName() string {
	return "users"
}
