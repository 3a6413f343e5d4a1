package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus/internal/domain"
)

// Minimal valid PNG header, enough for content sniffing.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDiskStore_StoreImage(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	name, msgType, err := store.Store(bytes.NewReader(pngBytes), "photo.png")
	require.NoError(t, err)

	assert.Equal(t, domain.TypeImage, msgType)
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotEqual(t, "photo.png", name)
}

func TestDiskStore_StoreFile(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir)

	name, msgType, err := store.Store(strings.NewReader("plain text contents"), "notes.txt")
	require.NoError(t, err)

	assert.Equal(t, domain.TypeFile, msgType)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "plain text contents", string(data))
}

func TestDiskStore_StoreUniqueNames(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	first, _, err := store.Store(strings.NewReader("a"), "same.txt")
	require.NoError(t, err)
	second, _, err := store.Store(strings.NewReader("a"), "same.txt")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDiskStore_StoreEmpty(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	_, _, err := store.Store(strings.NewReader(""), "empty.txt")
	assert.Error(t, err)
}

func TestDiskStore_Delete(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir)

	name, _, err := store.Store(strings.NewReader("bye"), "doc.txt")
	require.NoError(t, err)

	require.NoError(t, store.Delete(name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	// Deleting again converges instead of failing.
	assert.NoError(t, store.Delete(name))
}

func TestDiskStore_DeleteRejectsPaths(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	assert.Error(t, store.Delete("../escape.txt"))
	assert.Error(t, store.Delete("nested/file.txt"))
}
