package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arogyalab/backend/internal/service"
	"github.com/arogyalab/backend/internal/types"
)

// DoctorHandler serves the doctor portal: patient lookup and report
// comments. All routes require the doctor role.
type DoctorHandler struct {
	reports  service.IReportService
	activity service.IActivityService
}

func NewDoctorHandler(reports service.IReportService, activity service.IActivityService) *DoctorHandler {
	return &DoctorHandler{reports: reports, activity: activity}
}

func (h *DoctorHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/patients/:patientID", h.GetPatient)
	router.POST("/reports/:id/comment", h.CommentReport)
}

func (h *DoctorHandler) GetPatient(c *gin.Context) {
	patientID := c.Param("patientID")

	patient, reports, err := h.reports.PatientReports(patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up patient"})
		return
	}

	activities, err := h.activity.List(patient.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patient":    patient,
		"reports":    reports,
		"activities": activities,
	})
}

func (h *DoctorHandler) CommentReport(c *gin.Context) {
	doctorID, ok := currentUserID(c)
	if !ok {
		return
	}

	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}

	var req types.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment is required"})
		return
	}

	report, err := h.reports.AddDoctorComment(doctorID, reportID, req.Comment)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save comment"})
		return
	}

	c.JSON(http.StatusOK, report)
}
