package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"nexus/internal/domain"
	"nexus/internal/service"
)

// ChatService is the slice of message semantics the router drives.
type ChatService interface {
	Send(ctx context.Context, senderUsername string, input service.SendInput) (*domain.Message, error)
	MarkRead(ctx context.Context, messageID int64) error
	Typing(signal domain.TypingSignal)
}

// Router dispatches inbound events over the closed event-type set.
type Router struct {
	chat ChatService
}

func NewRouter(chat ChatService) *Router {
	return &Router{chat: chat}
}

// Dispatch routes one inbound event from an admitted connection. Every
// inbound event kind requires a bound identity; events from
// unauthenticated connections are rejected with an explicit error, not
// silently dropped.
func (rt *Router) Dispatch(ctx context.Context, c *Client, evt *Event) {
	switch evt.Type {
	case EventTypeChatSend, EventTypeChatRead, EventTypeChatTyping:
		if c.username == "" {
			c.sendError("AUTH_REQUIRED", "This connection is not authenticated")
			return
		}
	default:
		c.sendError("UNKNOWN_EVENT", "unknown event type: "+evt.Type)
		return
	}

	switch evt.Type {
	case EventTypeChatSend:
		var p ChatSendPayload
		if err := json.Unmarshal(evt.Payload, &p); err != nil {
			c.sendError("INVALID_PAYLOAD", "invalid chat.send payload")
			return
		}
		// The connection-bound identity wins over whatever the payload
		// claims.
		input := service.SendInput{
			RecipientUsername: p.RecipientUsername,
			Content:           p.Content,
			Type:              p.Type,
			TempID:            p.TempID,
			Ephemeral:         p.Ephemeral,
		}
		if _, err := rt.chat.Send(ctx, c.username, input); err != nil {
			rt.replyError(c, err)
		}

	case EventTypeChatRead:
		var p StatusUpdatePayload
		if err := json.Unmarshal(evt.Payload, &p); err != nil {
			c.sendError("INVALID_PAYLOAD", "invalid chat.read payload")
			return
		}
		if err := rt.chat.MarkRead(ctx, p.MessageID); err != nil {
			rt.replyError(c, err)
		}

	case EventTypeChatTyping:
		var p domain.TypingSignal
		if err := json.Unmarshal(evt.Payload, &p); err != nil {
			c.sendError("INVALID_PAYLOAD", "invalid chat.typing payload")
			return
		}
		p.FromUsername = c.username
		rt.chat.Typing(p)
	}
}

func (rt *Router) replyError(c *Client, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.sendError("NOT_FOUND", "Unknown user")
	case errors.Is(err, service.ErrMessageNotFound):
		c.sendError("NOT_FOUND", "Unknown message")
	default:
		log.Printf("ws router: %v", err)
		c.sendError("INTERNAL", "Something went wrong")
	}
}
