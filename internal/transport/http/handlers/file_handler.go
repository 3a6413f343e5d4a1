package handlers

import (
	"log"
	"net/http"

	"nexus/internal/storage"
)

const maxUploadSize = 32 << 20 // 32 MB

type FileHandler struct {
	store *storage.DiskStore
}

func NewFileHandler(store *storage.DiskStore) *FileHandler {
	return &FileHandler{store: store}
}

// Upload stores a media file and returns the reference to embed as
// message content, plus the message type inferred from the content.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_UPLOAD", "A file field is required")
		return
	}
	defer file.Close()

	name, msgType, err := h.store.Store(file, header.Filename)
	if err != nil {
		log.Printf("ERROR store upload: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Failed to store file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"url":  "/media/" + name,
		"type": msgType,
	})
}
