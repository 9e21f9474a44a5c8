package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arogyalab/backend/internal/models"
	"github.com/arogyalab/backend/internal/types"
)

// ActivityService records self-reported daily activity.
type ActivityService struct {
	db     *gorm.DB
	mirror *EntityMirror
}

func NewActivityService(db *gorm.DB, mirror *EntityMirror) *ActivityService {
	return &ActivityService{db: db, mirror: mirror}
}

// Log stores one activity entry. A missing or malformed date defaults to
// today; entries are append-only, so logging twice for a day keeps both.
func (s *ActivityService) Log(userID uuid.UUID, req *types.ActivityRequest) (*models.ActivityLog, error) {
	date := time.Now()
	if req.Date != "" {
		if parsed, err := time.Parse("2006-01-02", req.Date); err == nil {
			date = parsed
		}
	}

	entry := models.ActivityLog{
		ID:       uuid.New(),
		Date:     date,
		Steps:    req.Steps,
		Exercise: req.Exercise,
		Calories: req.Calories,
		UserID:   userID,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	s.mirror.Mirror("activity", entry.ID.String(), &entry)
	return &entry, nil
}

// List returns the user's activity entries newest first.
func (s *ActivityService) List(userID uuid.UUID) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&entries).Error
	return entries, err
}

// Latest returns the most recent entry, or nil when none exist.
func (s *ActivityService) Latest(userID uuid.UUID) (*models.ActivityLog, error) {
	var entry models.ActivityLog
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
