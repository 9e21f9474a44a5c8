package models

import (
	"time"

	"github.com/google/uuid"
)

// HealthReport is one processed upload. Reports form an append-only,
// time-ordered sequence per user; the newest created_at is "latest".
type HealthReport struct {
	ID               uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt        time.Time        `json:"created_at"`
	UserID           uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Filename         string           `gorm:"size:200" json:"filename"`
	ExtractedValues  JSONBStringMap   `gorm:"type:jsonb;not null;default:'{}'" json:"extracted_values"`
	Conditions       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"conditions"`
	DietPlan         JSONBDietPlan    `gorm:"type:jsonb" json:"diet_plan"`
	DoctorComment    string           `gorm:"type:text" json:"doctor_comment"`
	CommentTimestamp *time.Time       `json:"comment_timestamp"`
	SharedWithDoctor bool             `gorm:"default:false" json:"shared_with_doctor"`
}

func (HealthReport) TableName() string {
	return "health_reports"
}

// ActivityLog is one self-reported activity entry, append-only per user.
type ActivityLog struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Date     time.Time `json:"date"`
	Steps    int       `json:"steps"`
	Exercise string    `gorm:"size:100" json:"exercise"`
	Calories int       `json:"calories"`
	UserID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// ChatHistory is one question/reply exchange with the assistant. Fallback
// replies are recorded the same as successful ones.
type ChatHistory struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Message   string    `gorm:"type:text" json:"message"`
	Reply     string    `gorm:"type:text" json:"reply"`
}

func (ChatHistory) TableName() string {
	return "chat_histories"
}
