package service

import (
	"context"
	"errors"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arogyalab/backend/internal/catalog"
	"github.com/arogyalab/backend/internal/models"
	"github.com/arogyalab/backend/internal/parser"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type: only pdf, jpg, jpeg and png are accepted")
	ErrReportNotFound      = errors.New("report not found")
)

var allowedReportExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// TextExtractor pulls plain text out of a stored report file. Extraction
// failures surface as empty text, never as errors.
type TextExtractor interface {
	Extract(path, lang string) string
}

// ReportService runs the upload pipeline: store the file, extract text,
// parse values, detect conditions, persist the report.
type ReportService struct {
	db        *gorm.DB
	files     *FileStore
	extractor TextExtractor
	tests     *catalog.LabTestCatalog
	mirror    *EntityMirror
}

func NewReportService(db *gorm.DB, files *FileStore, extractor TextExtractor, tests *catalog.LabTestCatalog, mirror *EntityMirror) *ReportService {
	return &ReportService{
		db:        db,
		files:     files,
		extractor: extractor,
		tests:     tests,
		mirror:    mirror,
	}
}

// Upload processes one report file end to end. The report row is created
// even when extraction yields nothing; an empty value map is a valid
// outcome for an unreadable scan.
func (s *ReportService) Upload(ctx context.Context, userID uuid.UUID, filename string, file io.Reader, lang string, shared bool) (*models.HealthReport, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedReportExtensions[ext] {
		return nil, ErrUnsupportedFileType
	}
	if lang == "" {
		lang = "eng"
	}

	path, err := s.files.Save(ctx, filename, file)
	if err != nil {
		return nil, err
	}

	text := s.extractor.Extract(path, lang)
	values, _ := parser.ParseValues(text, s.tests)
	conditions := parser.DetectConditions(values)

	report := models.HealthReport{
		ID:               uuid.New(),
		UserID:           userID,
		Filename:         SanitizeFilename(filename),
		ExtractedValues:  models.JSONBStringMap(values),
		Conditions:       models.JSONBStringArray(conditions),
		SharedWithDoctor: shared,
	}
	if report.ExtractedValues == nil {
		report.ExtractedValues = models.JSONBStringMap{}
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}

	s.mirror.Mirror("report", report.ID.String(), &report)
	return &report, nil
}

// ListReports returns the user's reports newest first.
func (s *ReportService) ListReports(userID uuid.UUID) ([]models.HealthReport, error) {
	var reports []models.HealthReport
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (s *ReportService) GetReport(reportID uuid.UUID) (*models.HealthReport, error) {
	var report models.HealthReport
	if err := s.db.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

// Download resolves the stored file for a report owned by userID. When an
// S3 archive is configured a presigned URL is returned alongside the local
// path; a presign failure falls back to the local copy.
func (s *ReportService) Download(ctx context.Context, userID, reportID uuid.UUID) (string, string, error) {
	var report models.HealthReport
	if err := s.db.First(&report, "id = ? AND user_id = ?", reportID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrReportNotFound
		}
		return "", "", err
	}

	path := filepath.Join(s.files.UploadDir(), report.Filename)
	url, err := s.files.ArchiveURL(ctx, report.Filename)
	if err != nil {
		log.Printf("presign failed for report %s: %v", report.ID, err)
		url = ""
	}
	return path, url, nil
}

// AddDoctorComment records a comment on a report and notifies the report
// owner through the message inbox.
func (s *ReportService) AddDoctorComment(doctorID, reportID uuid.UUID, comment string) (*models.HealthReport, error) {
	report, err := s.GetReport(reportID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report.DoctorComment = comment
	report.CommentTimestamp = &now
	if err := s.db.Save(report).Error; err != nil {
		return nil, err
	}

	message := models.Message{
		ID:              uuid.New(),
		SenderID:        doctorID,
		ReceiverID:      report.UserID,
		MessageType:     models.MessageTypeComment,
		Content:         comment,
		RelatedReportID: &report.ID,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}

	s.mirror.Mirror("report", report.ID.String(), report)
	return report, nil
}

// PatientReports resolves a patient ID to the user and their shared
// reports, newest first. Unshared reports stay invisible to doctors.
func (s *ReportService) PatientReports(patientID string) (*models.User, []models.HealthReport, error) {
	var user models.User
	if err := s.db.Where("patient_id = ?", patientID).First(&user).Error; err != nil {
		return nil, nil, err
	}

	var reports []models.HealthReport
	err := s.db.Where("user_id = ? AND shared_with_doctor = ?", user.ID, true).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, nil, err
	}
	return &user, reports, nil
}
