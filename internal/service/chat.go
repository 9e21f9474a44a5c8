package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arogyalab/backend/internal/models"
)

const (
	chatSystemPrompt = "You are a health assistant. Answer based ONLY on the user's data provided. Keep responses under 100 words."

	fallbackNoAPIKey  = "The assistant is not configured yet. Please ask your administrator to set an API key."
	fallbackAPIDown   = "I could not reach the assistant right now. Please try again in a little while."
	fallbackEmptyBody = "I could not come up with an answer to that. Try rephrasing your question."
)

// ChatMessage is one turn in the relayed conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatClient sends an assembled conversation to the language model and
// returns the reply text.
type ChatClient interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// openRouterRequest is the OpenRouter chat completion payload.
type openRouterRequest struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type openRouterResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// OpenRouterClient relays conversations to the OpenRouter API.
type OpenRouterClient struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

func NewOpenRouterClient(apiKey, apiURL, model string) *OpenRouterClient {
	return &OpenRouterClient{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *OpenRouterClient) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("no API key configured")
	}

	body, err := json.Marshal(openRouterRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: 150,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(payload))
	}

	var parsed openRouterResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// ChatService answers user questions against their own health data. Every
// exchange is persisted, including fallback replies when the upstream API
// is unreachable.
type ChatService struct {
	db         *gorm.DB
	client     ChatClient
	reports    *ReportService
	activities *ActivityService
	configured bool
}

func NewChatService(db *gorm.DB, client ChatClient, configured bool, reports *ReportService, activities *ActivityService) *ChatService {
	return &ChatService{
		db:         db,
		client:     client,
		configured: configured,
		reports:    reports,
		activities: activities,
	}
}

// Ask relays the question with a compact context built from the user's
// latest report and activity, persists the exchange and returns the
// reply. Upstream failures degrade to a canned reply, never an error.
func (s *ChatService) Ask(ctx context.Context, userID uuid.UUID, question string) (string, error) {
	reply := s.answer(ctx, userID, question)

	history := models.ChatHistory{
		ID:      uuid.New(),
		UserID:  userID,
		Message: question,
		Reply:   reply,
	}
	if err := s.db.Create(&history).Error; err != nil {
		return "", err
	}
	return reply, nil
}

func (s *ChatService) answer(ctx context.Context, userID uuid.UUID, question string) string {
	if !s.configured {
		return fallbackNoAPIKey
	}

	messages := []ChatMessage{
		{Role: "system", Content: chatSystemPrompt},
		{Role: "system", Content: s.buildContext(userID)},
	}
	messages = append(messages, s.recentExchanges(userID)...)
	messages = append(messages, ChatMessage{Role: "user", Content: question})

	reply, err := s.client.Complete(ctx, messages)
	if err != nil {
		log.Printf("chat completion failed for user %s: %v", userID, err)
		return fallbackAPIDown
	}
	if reply == "" {
		return fallbackEmptyBody
	}
	return reply
}

// buildContext summarizes the user's record: profile line, up to three
// values and two conditions from the latest report, latest activity.
func (s *ChatService) buildContext(userID uuid.UUID) string {
	var b strings.Builder
	b.WriteString("User data:\n")

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err == nil {
		fmt.Fprintf(&b, "Profile: age %d, gender %s, goal %s\n", user.Age, user.Gender, user.Goal)
	}

	reports, err := s.reports.ListReports(userID)
	if err == nil && len(reports) > 0 {
		latest := reports[0]
		count := 0
		for key, value := range latest.ExtractedValues {
			if count >= 3 {
				break
			}
			fmt.Fprintf(&b, "%s: %s\n", key, value)
			count++
		}
		for i, cond := range latest.Conditions {
			if i >= 2 {
				break
			}
			fmt.Fprintf(&b, "Condition: %s\n", cond)
		}
	}

	if activity, err := s.activities.Latest(userID); err == nil && activity != nil {
		fmt.Fprintf(&b, "Latest activity: %d steps, %s, %d kcal\n",
			activity.Steps, activity.Exercise, activity.Calories)
	}

	return b.String()
}

// recentExchanges replays up to three prior exchanges so the model keeps
// short-term conversational context.
func (s *ChatService) recentExchanges(userID uuid.UUID) []ChatMessage {
	var entries []models.ChatHistory
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(3).
		Find(&entries).Error
	if err != nil {
		return nil
	}

	var messages []ChatMessage
	for i := len(entries) - 1; i >= 0; i-- {
		messages = append(messages,
			ChatMessage{Role: "user", Content: entries[i].Message},
			ChatMessage{Role: "assistant", Content: entries[i].Reply},
		)
	}
	return messages
}

// History returns the user's last ten exchanges, oldest first.
func (s *ChatService) History(userID uuid.UUID) ([]models.ChatHistory, error) {
	var entries []models.ChatHistory
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(10).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Ping checks connectivity with a one-word prompt.
func (s *ChatService) Ping(ctx context.Context) (string, error) {
	if !s.configured {
		return "", fmt.Errorf("chat API key not configured")
	}
	return s.client.Complete(ctx, []ChatMessage{
		{Role: "user", Content: "Reply with the single word: pong"},
	})
}
