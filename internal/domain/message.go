package domain

import "time"

type MessageType string

const (
	TypeText  MessageType = "TEXT"
	TypeImage MessageType = "IMAGE"
	TypeFile  MessageType = "FILE"
)

// IsMedia reports whether messages of this type reference a stored file
// instead of inline text.
func (t MessageType) IsMedia() bool {
	return t == TypeImage || t == TypeFile
}

type MessageStatus string

const (
	StatusSent      MessageStatus = "SENT"
	StatusDelivered MessageStatus = "DELIVERED"
	StatusRead      MessageStatus = "READ"
)

// TombstoneContent replaces the content of hard-deleted media messages.
const TombstoneContent = "[media permanently deleted by admin]"

type Message struct {
	ID          int64         `json:"id"`
	SenderID    int64         `json:"-"`
	RecipientID int64         `json:"-"`
	Content     string        `json:"content"`
	Type        MessageType   `json:"type"`
	Status      MessageStatus `json:"status"`
	Timestamp   time.Time     `json:"timestamp"`
	ExpiresAt   *time.Time    `json:"expires_at,omitempty"`
	Deleted     bool          `json:"deleted"`
	// Joined fields
	SenderUsername    string `json:"sender_username,omitempty"`
	RecipientUsername string `json:"recipient_username,omitempty"`
}
