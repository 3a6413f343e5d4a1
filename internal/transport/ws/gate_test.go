package ws

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeVerifier struct {
	username string
	err      error
	seen     []string
}

func (v *fakeVerifier) VerifyToken(_ context.Context, token string) (string, error) {
	v.seen = append(v.seen, token)
	if v.err != nil {
		return "", v.err
	}
	return v.username, nil
}

func TestGate_Authenticate(t *testing.T) {
	verifier := &fakeVerifier{username: "alice"}
	gate := NewGate(verifier, "")

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set(DefaultAuthHeader, "Bearer token-123")

	assert.Equal(t, "alice", gate.Authenticate(r))
	assert.Equal(t, []string{"token-123"}, verifier.seen)
}

func TestGate_AnonymousAdmission(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		gate := NewGate(&fakeVerifier{username: "alice"}, "")
		r := httptest.NewRequest("GET", "/ws", nil)
		assert.Empty(t, gate.Authenticate(r))
	})

	t.Run("malformed header", func(t *testing.T) {
		verifier := &fakeVerifier{username: "alice"}
		gate := NewGate(verifier, "")
		r := httptest.NewRequest("GET", "/ws", nil)
		r.Header.Set(DefaultAuthHeader, "token-123")

		assert.Empty(t, gate.Authenticate(r))
		// A malformed credential never reaches the verifier.
		assert.Empty(t, verifier.seen)
	})

	t.Run("rejected credential", func(t *testing.T) {
		gate := NewGate(&fakeVerifier{err: errors.New("expired")}, "")
		r := httptest.NewRequest("GET", "/ws", nil)
		r.Header.Set(DefaultAuthHeader, "Bearer stale")

		assert.Empty(t, gate.Authenticate(r))
	})
}

func TestGate_CustomHeader(t *testing.T) {
	gate := NewGate(&fakeVerifier{username: "alice"}, "X-Custom-Auth")

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("X-Custom-Auth", "Bearer token-123")
	assert.Equal(t, "alice", gate.Authenticate(r))

	// The credential is only read from the configured header.
	r = httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set(DefaultAuthHeader, "Bearer token-123")
	assert.Empty(t, gate.Authenticate(r))
}
