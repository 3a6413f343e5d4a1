// Package storage holds uploaded media files on local disk.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"nexus/internal/domain"
)

type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

// Store writes the upload under a generated unique name and reports the
// stored filename together with the message type inferred from the
// sniffed content type.
func (s *DiskStore) Store(r io.Reader, originalName string) (string, domain.MessageType, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("reading upload: %w", err)
	}
	if len(data) == 0 {
		return "", "", fmt.Errorf("refusing to store empty file %q", originalName)
	}

	name := uuid.NewString() + filepath.Ext(originalName)

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", "", fmt.Errorf("creating upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.root, name), data, 0o644); err != nil {
		return "", "", fmt.Errorf("writing %s: %w", name, err)
	}

	msgType := domain.TypeFile
	if strings.HasPrefix(mimetype.Detect(data).String(), "image/") {
		msgType = domain.TypeImage
	}

	return name, msgType, nil
}

// Delete removes a stored file. A file that is already gone counts as
// deleted so a retried hard delete converges instead of failing again.
func (s *DiskStore) Delete(filename string) error {
	if filename != filepath.Base(filename) {
		return fmt.Errorf("invalid filename %q", filename)
	}
	err := os.Remove(filepath.Join(s.root, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
