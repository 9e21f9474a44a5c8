package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arogyalab/backend/internal/database"
	"github.com/arogyalab/backend/internal/middleware"
	"github.com/arogyalab/backend/internal/service"
)

// Services bundles everything the route table needs.
type Services struct {
	Auth      service.IAuthService
	Reports   service.IReportService
	Dashboard service.IDashboardService
	Activity  service.IActivityService
	Chat      service.IChatService
	Messages  service.IMessageService
	Profile   service.IProfileService

	HealthDB    *database.DB
	ChatLimiter *middleware.RateLimiter
}

// HealthCheck reports API liveness and database reachability.
func HealthCheck(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		dbStatus := "ok"
		code := http.StatusOK
		if db != nil {
			if err := db.HealthCheck(c.Request.Context()); err != nil {
				status = "degraded"
				dbStatus = err.Error()
				code = http.StatusServiceUnavailable
			}
		} else {
			dbStatus = "not configured"
		}
		c.JSON(code, gin.H{
			"status":   status,
			"database": dbStatus,
		})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svcs *Services) {
	router.GET("/health", HealthCheck(svcs.HealthDB))

	v1 := router.Group("/api/v1")

	authHandler := NewAuthHandler(svcs.Auth)
	authHandler.RegisterRoutes(v1)

	chatHandler := NewChatHandler(svcs.Chat)
	// The bot probe stays public so monitoring can hit it without a token.
	v1.GET("/chatbot/test", chatHandler.Test)

	authed := v1.Group("", middleware.AuthMiddleware(svcs.Auth))
	{
		NewReportHandler(svcs.Reports).RegisterRoutes(authed)
		NewDashboardHandler(svcs.Dashboard).RegisterRoutes(authed)
		NewActivityHandler(svcs.Activity).RegisterRoutes(authed)
		NewProfileHandler(svcs.Profile).RegisterRoutes(authed)
		NewMessageHandler(svcs.Messages).RegisterRoutes(authed)
		chatHandler.RegisterRoutes(authed, svcs.ChatLimiter)

		doctor := authed.Group("/doctor", middleware.RequireDoctor())
		NewDoctorHandler(svcs.Reports, svcs.Activity).RegisterRoutes(doctor)
	}
}

// currentUserID pulls the authenticated user's ID out of the context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	return userID, true
}
