package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arogyalab/backend/internal/models"
	"github.com/arogyalab/backend/internal/types"
)

var ErrMessageNotFound = errors.New("message not found")

// MessageService handles the doctor/patient inbox.
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Send delivers a message to another user. The message type defaults to
// comment when absent or unrecognized.
func (s *MessageService) Send(senderID uuid.UUID, req *types.MessageRequest) (*models.Message, error) {
	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return nil, errors.New("invalid receiver ID")
	}

	var receiver models.User
	if err := s.db.First(&receiver, "id = ?", receiverID).Error; err != nil {
		return nil, errors.New("receiver not found")
	}

	messageType := req.MessageType
	switch messageType {
	case models.MessageTypeComment, models.MessageTypeSuggestion, models.MessageTypeDietUpdate:
	default:
		messageType = models.MessageTypeComment
	}

	message := models.Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		ReceiverID:  receiverID,
		MessageType: messageType,
		Content:     req.Content,
	}
	if req.RelatedReportID != "" {
		if reportID, err := uuid.Parse(req.RelatedReportID); err == nil {
			message.RelatedReportID = &reportID
		}
	}

	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// Inbox returns messages the user sent or received, newest first, with
// both parties preloaded.
func (s *MessageService) Inbox(userID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.Where("receiver_id = ? OR sender_id = ?", userID, userID).
		Preload("Sender").
		Preload("Receiver").
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

// MarkRead flags a received message as read. Only the receiver may mark
// their own messages.
func (s *MessageService) MarkRead(userID, messageID uuid.UUID) error {
	result := s.db.Model(&models.Message{}).
		Where("id = ? AND receiver_id = ?", messageID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// UnreadCount returns how many received messages are still unread.
func (s *MessageService) UnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
