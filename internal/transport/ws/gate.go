package ws

import (
	"context"
	"log"
	"net/http"
	"strings"
)

// DefaultAuthHeader carries the real-time credential on the handshake.
// It is distinct from the HTTP Authorization header so the two
// credential channels stay independently configurable.
const DefaultAuthHeader = "X-Authorization"

// TokenVerifier validates a bearer credential and resolves the identity
// it belongs to.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// Gate authenticates incoming WebSocket handshakes before the
// connection is admitted into the hub. It never rejects the handshake:
// a missing, malformed or invalid credential admits the connection
// unauthenticated, and identity-requiring events are rejected later at
// the router.
type Gate struct {
	verifier TokenVerifier
	header   string
}

func NewGate(verifier TokenVerifier, header string) *Gate {
	if header == "" {
		header = DefaultAuthHeader
	}
	return &Gate{verifier: verifier, header: header}
}

// Authenticate extracts and verifies the bearer credential from the
// handshake request. It returns the bound identity, or "" for an
// unauthenticated connection.
func (g *Gate) Authenticate(r *http.Request) string {
	raw := r.Header.Get(g.header)
	if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
		return ""
	}

	username, err := g.verifier.VerifyToken(r.Context(), strings.TrimPrefix(raw, "Bearer "))
	if err != nil {
		log.Printf("ws gate: credential rejected: %v", err)
		return ""
	}

	log.Printf("ws gate: user %q authenticated for WebSocket session", username)
	return username
}
