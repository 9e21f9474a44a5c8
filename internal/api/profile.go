package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arogyalab/backend/internal/service"
	"github.com/arogyalab/backend/internal/types"
)

// ProfileHandler updates the mutable parts of a user profile.
type ProfileHandler struct {
	profile service.IProfileService
}

func NewProfileHandler(profile service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.PUT("/goal", h.UpdateGoal)
		profile.POST("/image", h.UploadImage)
	}
}

func (h *ProfileHandler) UpdateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.profile.UpdateGoal(userID, req.Goal)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGoal) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": user.Goal})
}

func (h *ProfileHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("profile_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profile_image is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	user, err := h.profile.SaveProfileImage(userID, fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImageType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile_image": user.ProfileImage})
}
