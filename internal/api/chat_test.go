package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyalab/backend/internal/models"
)

func TestChatbotEndpoint(t *testing.T) {
	env := setupTestAPI(t, "")
	token := env.register(t, "asha", "")

	rr := env.do(t, "POST", "/api/v1/chatbot", token, gin.H{"message": "Am I healthy?"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Reply   string               `json:"reply"`
		History []models.ChatHistory `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Stay hydrated.", resp.Reply)
	require.Len(t, resp.History, 1)
	assert.Equal(t, "Am I healthy?", resp.History[0].Message)
}

func TestChatbotRequiresMessage(t *testing.T) {
	env := setupTestAPI(t, "")
	token := env.register(t, "asha", "")

	rr := env.do(t, "POST", "/api/v1/chatbot", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChatbotHistoryEndpoint(t *testing.T) {
	env := setupTestAPI(t, "")
	token := env.register(t, "asha", "")

	for i := 0; i < 3; i++ {
		rr := env.do(t, "POST", "/api/v1/chatbot", token, gin.H{"message": "q"})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := env.do(t, "GET", "/api/v1/chatbot/history", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		History []models.ChatHistory `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.History, 3)
}

func TestChatbotTestEndpointIsPublic(t *testing.T) {
	env := setupTestAPI(t, "")

	rr := env.do(t, "GET", "/api/v1/chatbot/test", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}
