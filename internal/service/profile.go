package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arogyalab/backend/internal/models"
)

var (
	ErrInvalidGoal      = errors.New("invalid goal: must be weight_loss, muscle_gain or diabetes_control")
	ErrInvalidImageType = errors.New("unsupported image type: only jpg, jpeg and png are accepted")
)

var validGoals = map[string]bool{
	"weight_loss":      true,
	"muscle_gain":      true,
	"diabetes_control": true,
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ProfileService manages the mutable parts of a user profile.
type ProfileService struct {
	db        *gorm.DB
	uploadDir string
}

func NewProfileService(db *gorm.DB, uploadDir string) *ProfileService {
	return &ProfileService{db: db, uploadDir: uploadDir}
}

// UpdateGoal changes the user's health goal. The goal feeds diet chart
// generation on the next dashboard load.
func (s *ProfileService) UpdateGoal(userID uuid.UUID, goal string) (*models.User, error) {
	if !validGoals[goal] {
		return nil, ErrInvalidGoal
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	user.Goal = goal
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveProfileImage stores the image under a per-user name and records the
// path on the profile. Re-uploading replaces the previous image.
func (s *ProfileService) SaveProfileImage(userID uuid.UUID, filename string, src io.Reader) (*models.User, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return nil, ErrInvalidImageType
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	dir := filepath.Join(s.uploadDir, "profile_images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, fmt.Sprintf("user_%s_profile%s", userID, ext))
	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	user.ProfileImage = path
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
