package ws

import (
	"log"

	"nexus/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyNewMessage(msg *domain.Message, tempID string) {
	evt, err := NewEvent(EventTypeMessage, DestMessages, MessagePayload{Message: *msg, TempID: tempID})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	// The recipient gets the record; the sender gets the same echo so
	// multi-tab UIs confirm without a second round trip.
	n.hub.SendToUser(msg.RecipientUsername, evt)
	n.hub.SendToUser(msg.SenderUsername, evt)
}

func (n *HubNotifier) NotifyDeletedMessage(msg *domain.Message) {
	evt, err := NewEvent(EventTypeMessage, DestMessages, MessagePayload{Message: *msg})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.SendToUser(msg.SenderUsername, evt)
	n.hub.SendToUser(msg.RecipientUsername, evt)
}

func (n *HubNotifier) NotifyStatus(username string, messageID int64, status domain.MessageStatus) {
	evt, err := NewEvent(EventTypeStatus, DestStatus, StatusUpdatePayload{MessageID: messageID, Status: status})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.SendToUser(username, evt)
}

func (n *HubNotifier) NotifyTyping(signal domain.TypingSignal) {
	evt, err := NewEvent(EventTypeTyping, DestStatus, signal)
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.SendToUser(signal.ToUsername, evt)
}
