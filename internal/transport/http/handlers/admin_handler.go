package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"nexus/internal/service"
)

type AdminHandler struct {
	userService    *service.UserService
	messageService *service.MessageService
}

func NewAdminHandler(userService *service.UserService, messageService *service.MessageService) *AdminHandler {
	return &AdminHandler{userService: userService, messageService: messageService}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		log.Printf("ERROR list users: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	user, err := h.userService.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			log.Printf("ERROR get user: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messageService.MediaMessages(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		log.Printf("ERROR list media: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// HardDelete irreversibly erases a message and its backing media file.
// If the file cannot be removed the database record stays untouched.
func (h *AdminHandler) HardDelete(w http.ResponseWriter, r *http.Request) {
	messageID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	if err := h.messageService.HardDelete(r.Context(), messageID); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Message not found")
		} else {
			log.Printf("ERROR hard delete message %d: %v", messageID, err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Failed to delete media")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
