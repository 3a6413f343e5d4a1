package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"nexus/internal/service"
	"nexus/internal/transport/http/middleware"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// History returns one page of the conversation between two users,
// newest first.
func (h *MessageHandler) History(w http.ResponseWriter, r *http.Request) {
	senderID, err := strconv.ParseInt(r.PathValue("senderId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid sender ID")
		return
	}
	recipientID, err := strconv.ParseInt(r.PathValue("recipientId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid recipient ID")
		return
	}

	page := 0
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p >= 0 {
			page = p
		}
	}
	size := 50
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
			size = s
		}
	}

	resp, err := h.messageService.History(r.Context(), senderID, recipientID, page, size)
	if err != nil {
		log.Printf("ERROR message history: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// SoftDelete flags a message deleted. Only the original sender may do
// this; both parties' open clients receive the updated record.
func (h *MessageHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	messageID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	msg, err := h.messageService.SoftDelete(r.Context(), username, messageID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Message not found")
		case errors.Is(err, service.ErrNotMessageSender):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the sender can delete this message")
		default:
			log.Printf("ERROR soft delete message: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, msg)
}
