package ws

import (
	"encoding/json"
	"time"

	"nexus/internal/domain"
)

// Event types - Client → Server. This set is closed: the router rejects
// anything else.
const (
	EventTypeChatSend   = "chat.send"
	EventTypeChatRead   = "chat.read"
	EventTypeChatTyping = "chat.typing"
)

// Event types - Server → Client
const (
	EventTypeMessage  = "message"
	EventTypeStatus   = "status"
	EventTypeTyping   = "typing"
	EventTypePresence = "presence"
	EventTypeError    = "error"
)

// Delivery destinations. Queues are private per-identity channels;
// topics reach every connected client.
const (
	DestMessages  = "queue/messages"
	DestStatus    = "queue/status"
	TopicPresence = "topic/presence"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type        string          `json:"type"`
	Destination string          `json:"destination,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Timestamp   int64           `json:"ts,omitempty"`
}

// --- Client → Server payloads ---

// ChatSendPayload carries an outgoing chat message. The sender field is
// kept for wire compatibility but the connection-bound identity always
// wins over it.
type ChatSendPayload struct {
	SenderUsername    string             `json:"sender_username,omitempty"`
	RecipientUsername string             `json:"recipient_username"`
	Content           string             `json:"content"`
	Type              domain.MessageType `json:"type,omitempty"`
	TempID            string             `json:"temp_id,omitempty"`
	Ephemeral         bool               `json:"ephemeral,omitempty"`
}

type StatusUpdatePayload struct {
	MessageID int64                `json:"message_id"`
	Status    domain.MessageStatus `json:"status"`
}

// --- Server → Client payloads ---

// MessagePayload is the persisted record, echoing the client
// correlation id so optimistic local renders can be matched up.
type MessagePayload struct {
	domain.Message
	TempID string `json:"temp_id,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType, destination string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:        eventType,
		Destination: destination,
		Payload:     data,
		Timestamp:   time.Now().Unix(),
	}, nil
}
