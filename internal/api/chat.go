package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arogyalab/backend/internal/middleware"
	"github.com/arogyalab/backend/internal/service"
	"github.com/arogyalab/backend/internal/types"
)

// ChatHandler relays questions to the health assistant.
type ChatHandler struct {
	chat service.IChatService
}

func NewChatHandler(chat service.IChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	ask := []gin.HandlerFunc{}
	if limiter != nil {
		ask = append(ask, limiter.RateLimitMiddleware())
	}
	ask = append(ask, h.Ask)

	router.POST("/chatbot", ask...)
	router.GET("/chatbot/history", h.History)
}

func (h *ChatHandler) Ask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply, err := h.chat.Ask(c.Request.Context(), userID, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record chat"})
		return
	}

	history, err := h.chat.History(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":   reply,
		"history": history,
	})
}

func (h *ChatHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	history, err := h.chat.History(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// Test probes upstream connectivity without auth so monitoring can use it.
func (h *ChatHandler) Test(c *gin.Context) {
	reply, err := h.chat.Ping(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"reply":  reply,
	})
}
