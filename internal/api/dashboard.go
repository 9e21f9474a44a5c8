package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arogyalab/backend/internal/service"
)

// DashboardHandler serves the aggregate dashboard view.
type DashboardHandler struct {
	dashboard service.IDashboardService
}

func NewDashboardHandler(dashboard service.IDashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.Get)
}

func (h *DashboardHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboard.Build(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
