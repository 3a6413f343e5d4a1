package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"nexus/internal/domain"
	"nexus/internal/repository"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrMessageNotFound  = errors.New("message not found")
	ErrNotMessageSender = errors.New("only the message sender can perform this action")
)

// Notifier fans out real-time events to connected clients. Fan-out is
// fire-and-forget: no delivery acknowledgement is awaited.
type Notifier interface {
	// NotifyNewMessage delivers the persisted record to both the
	// recipient and the sender, carrying the client correlation id
	// through unchanged.
	NotifyNewMessage(msg *domain.Message, tempID string)
	// NotifyDeletedMessage delivers the deleted-flagged record to both
	// parties so open clients can redact it locally.
	NotifyDeletedMessage(msg *domain.Message)
	NotifyStatus(username string, messageID int64, status domain.MessageStatus)
	NotifyTyping(signal domain.TypingSignal)
}

// BlobStore removes stored media files backing media messages.
type BlobStore interface {
	Delete(filename string) error
}

type MessageService struct {
	messageRepo  repository.MessageRepository
	userRepo     repository.UserRepository
	blobs        BlobStore
	notifier     Notifier
	ephemeralTTL time.Duration
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	blobs BlobStore,
	ephemeralTTL time.Duration,
) *MessageService {
	return &MessageService{
		messageRepo:  messageRepo,
		userRepo:     userRepo,
		blobs:        blobs,
		ephemeralTTL: ephemeralTTL,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *MessageService) SetNotifier(n Notifier) {
	s.notifier = n
}

type SendInput struct {
	RecipientUsername string             `json:"recipient_username"`
	Content           string             `json:"content"`
	Type              domain.MessageType `json:"type,omitempty"`
	TempID            string             `json:"temp_id,omitempty"`
	Ephemeral         bool               `json:"ephemeral,omitempty"`
}

type ConversationPage struct {
	Messages []domain.Message `json:"messages"`
	HasMore  bool             `json:"has_more"`
}

// Send persists an inbound chat event and fans the stored record out to
// both parties. The sender identity comes from the authenticated
// connection, never from the payload. A persistence failure propagates
// before any fan-out happens.
func (s *MessageService) Send(ctx context.Context, senderUsername string, input SendInput) (*domain.Message, error) {
	sender, err := s.userRepo.GetByUsername(ctx, senderUsername)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, ErrUserNotFound
	}

	recipient, err := s.userRepo.GetByUsername(ctx, input.RecipientUsername)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, ErrUserNotFound
	}

	msgType := input.Type
	if msgType == "" {
		msgType = domain.TypeText
	}

	msg := &domain.Message{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Content:     input.Content,
		Type:        msgType,
		Status:      domain.StatusSent,
		Timestamp:   time.Now(),
	}
	if input.Ephemeral {
		expiry := msg.Timestamp.Add(s.ephemeralTTL)
		msg.ExpiresAt = &expiry
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	// Re-read with the joined usernames clients correlate on.
	full, err := s.messageRepo.GetByID(ctx, msg.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(full, input.TempID)
	}

	return full, nil
}

// MarkRead transitions the message to READ and notifies only the
// original sender. The write is last-write-wins; the reader is not
// re-notified of its own action.
func (s *MessageService) MarkRead(ctx context.Context, messageID int64) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg == nil {
		return ErrMessageNotFound
	}

	if err := s.messageRepo.UpdateStatus(ctx, messageID, domain.StatusRead); err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyStatus(msg.SenderUsername, messageID, domain.StatusRead)
	}

	return nil
}

// Typing forwards the signal unchanged to the target identity. Nothing
// is persisted and repeats are not de-duplicated.
func (s *MessageService) Typing(signal domain.TypingSignal) {
	if s.notifier != nil {
		s.notifier.NotifyTyping(signal)
	}
}

// SoftDelete flags the message deleted while keeping its content for
// audit. Only the original sender may do this; both parties receive the
// updated record.
func (s *MessageService) SoftDelete(ctx context.Context, username string, messageID int64) (*domain.Message, error) {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	if msg.SenderUsername != username {
		return nil, ErrNotMessageSender
	}

	if err := s.messageRepo.SoftDelete(ctx, messageID); err != nil {
		return nil, fmt.Errorf("soft-deleting message: %w", err)
	}

	updated, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyDeletedMessage(updated)
	}

	return updated, nil
}

// HardDelete irreversibly erases a message. For media messages the
// backing file is removed first; if that fails the database record is
// left untouched so blob and database state never diverge. No broadcast
// is sent, this is an out-of-band administrative action.
func (s *MessageService) HardDelete(ctx context.Context, messageID int64) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg == nil {
		return ErrMessageNotFound
	}

	if msg.Type.IsMedia() && msg.Content != "" {
		filename := path.Base(msg.Content)
		if err := s.blobs.Delete(filename); err != nil {
			return fmt.Errorf("deleting media file %q: %w", filename, err)
		}
	}

	if err := s.messageRepo.HardDelete(ctx, messageID, domain.TombstoneContent); err != nil {
		return fmt.Errorf("hard-deleting message: %w", err)
	}

	return nil
}

// History returns one page of the conversation between two users,
// newest first.
func (s *MessageService) History(ctx context.Context, userAID, userBID int64, page, size int) (*ConversationPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 50
	}

	messages, hasMore, err := s.messageRepo.FindConversation(ctx, userAID, userBID, page, size)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}

	return &ConversationPage{Messages: messages, HasMore: hasMore}, nil
}

// MediaMessages lists media-typed messages for the admin surface. An
// unrecognized type filter yields an empty list.
func (s *MessageService) MediaMessages(ctx context.Context, typeFilter string) ([]domain.Message, error) {
	types := []domain.MessageType{domain.TypeImage, domain.TypeFile}
	if typeFilter != "" {
		t := domain.MessageType(typeFilter)
		if !t.IsMedia() {
			return []domain.Message{}, nil
		}
		types = []domain.MessageType{t}
	}

	messages, err := s.messageRepo.FindAllByType(ctx, types)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}
