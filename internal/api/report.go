package api

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arogyalab/backend/internal/service"
)

// ReportHandler handles report upload and listing.
type ReportHandler struct {
	reports service.IReportService
}

func NewReportHandler(reports service.IReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.POST("", h.Upload)
		reports.GET("", h.List)
		reports.GET("/:id/download", h.Download)
	}
}

func (h *ReportHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("report_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report_file is required"})
		return
	}

	lang := c.PostForm("ocr_language")
	shared := c.PostForm("shared_with_doctor") == "true"

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	report, err := h.reports.Upload(c.Request.Context(), userID, fileHeader.Filename, file, lang, shared)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFileType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process report"})
		return
	}

	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reports, err := h.reports.ListReports(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// Download serves the original report file. Archived copies redirect to a
// presigned S3 URL; otherwise the local file is sent directly.
func (h *ReportHandler) Download(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}

	path, url, err := h.reports.Download(c.Request.Context(), userID, reportID)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve report file"})
		return
	}

	if url != "" {
		c.Redirect(http.StatusFound, url)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
