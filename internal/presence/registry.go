// Package presence tracks which identities currently hold at least one
// open real-time connection. The registry is purely in-memory and is
// rebuilt empty on process restart.
package presence

import "sync"

// Registry counts open connections per identity. A user with several
// simultaneous connections stays online until the last one closes.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]int
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]int)}
}

// MarkOnline records one more open connection for username and reports
// whether this took the user from offline to online.
func (r *Registry) MarkOnline(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[username]++
	return r.conns[username] == 1
}

// MarkOffline records one closed connection for username and reports
// whether this took the user offline. Calling it for a user with no
// recorded connections is a no-op.
func (r *Registry) MarkOffline(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.conns[username]
	if !ok {
		return false
	}
	if n <= 1 {
		delete(r.conns, username)
		return true
	}
	r.conns[username] = n - 1
	return false
}

func (r *Registry) IsOnline(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conns[username] > 0
}

// Snapshot returns the identities currently online. The result is a
// copy and may be stale by the time the caller reads it.
func (r *Registry) Snapshot() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	online := make([]string, 0, len(r.conns))
	for username := range r.conns {
		online = append(online, username)
	}
	return online
}
