package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arogyalab/backend/internal/service"
	"github.com/arogyalab/backend/internal/types"
)

// ActivityHandler records daily activity entries.
type ActivityHandler struct {
	activity service.IActivityService
}

func NewActivityHandler(activity service.IActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	activity := router.Group("/activity")
	{
		activity.POST("", h.Log)
		activity.GET("", h.List)
	}
}

func (h *ActivityHandler) Log(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.activity.Log(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log activity"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.activity.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": entries})
}
