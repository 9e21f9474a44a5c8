package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageTypeComment    = "comment"
	MessageTypeSuggestion = "suggestion"
	MessageTypeDietUpdate = "diet_update"
)

// Message is a doctor/patient exchange, optionally tied to a report.
type Message struct {
	ID              uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt       time.Time  `json:"created_at"`
	SenderID        uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"sender_id"`
	ReceiverID      uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"receiver_id"`
	MessageType     string     `gorm:"size:20;default:'comment'" json:"message_type"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	IsRead          bool       `gorm:"default:false" json:"is_read"`
	RelatedReportID *uuid.UUID `gorm:"type:varchar(36)" json:"related_report_id"`

	Sender        *User         `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver      *User         `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	RelatedReport *HealthReport `gorm:"foreignKey:RelatedReportID" json:"related_report,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
