package handlers

import (
	"log"
	"net/http"

	"nexus/internal/presence"
	"nexus/internal/service"
	"nexus/internal/transport/http/middleware"
)

type UserHandler struct {
	userService *service.UserService
	registry    *presence.Registry
}

func NewUserHandler(userService *service.UserService, registry *presence.Registry) *UserHandler {
	return &UserHandler{userService: userService, registry: registry}
}

func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	fragment := r.URL.Query().Get("username")
	if fragment == "" {
		writeError(w, http.StatusBadRequest, "MISSING_QUERY", "username query parameter is required")
		return
	}

	users, err := h.userService.Search(r.Context(), fragment)
	if err != nil {
		log.Printf("ERROR search users: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	contacts, err := h.userService.Contacts(r.Context(), username)
	if err != nil {
		log.Printf("ERROR list contacts: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, contacts)
}

// Online returns the identities that currently hold at least one open
// real-time connection.
func (h *UserHandler) Online(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"online": h.registry.Snapshot(),
	})
}
