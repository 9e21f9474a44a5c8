package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/arogyalab/backend/internal/models"
	"github.com/arogyalab/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(req *types.RegisterRequest) (*models.User, string, error)
	Login(username, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(userID uuid.UUID) (*models.User, error)
}

// IReportService defines the interface for report operations
type IReportService interface {
	Upload(ctx context.Context, userID uuid.UUID, filename string, file io.Reader, lang string, shared bool) (*models.HealthReport, error)
	ListReports(userID uuid.UUID) ([]models.HealthReport, error)
	GetReport(reportID uuid.UUID) (*models.HealthReport, error)
	Download(ctx context.Context, userID, reportID uuid.UUID) (string, string, error)
	AddDoctorComment(doctorID, reportID uuid.UUID, comment string) (*models.HealthReport, error)
	PatientReports(patientID string) (*models.User, []models.HealthReport, error)
}

// IDashboardService defines the interface for dashboard assembly
type IDashboardService interface {
	Build(userID uuid.UUID) (*Dashboard, error)
}

// IActivityService defines the interface for activity logging
type IActivityService interface {
	Log(userID uuid.UUID, req *types.ActivityRequest) (*models.ActivityLog, error)
	List(userID uuid.UUID) ([]models.ActivityLog, error)
	Latest(userID uuid.UUID) (*models.ActivityLog, error)
}

// IChatService defines the interface for the health assistant
type IChatService interface {
	Ask(ctx context.Context, userID uuid.UUID, question string) (string, error)
	History(userID uuid.UUID) ([]models.ChatHistory, error)
	Ping(ctx context.Context) (string, error)
}

// IMessageService defines the interface for the message inbox
type IMessageService interface {
	Send(senderID uuid.UUID, req *types.MessageRequest) (*models.Message, error)
	Inbox(userID uuid.UUID) ([]models.Message, error)
	MarkRead(userID, messageID uuid.UUID) error
	UnreadCount(userID uuid.UUID) (int64, error)
}

// IProfileService defines the interface for profile updates
type IProfileService interface {
	UpdateGoal(userID uuid.UUID, goal string) (*models.User, error)
	SaveProfileImage(userID uuid.UUID, filename string, src io.Reader) (*models.User, error)
}
