package interview

import (
	"sync"
	"time"
)

// Registry holds at most one in-progress session per user. Hosts call
// Clear on cancellation and completion; an external inactivity policy
// calls ClearIdle. The registry itself never expires sessions.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewRegistry returns an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[int64]*Session)}
}

// Start creates a fresh session for userID, replacing any in-progress
// one.
func (r *Registry) Start(userID int64, kind FlowKind) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := NewSession(userID, kind)
	r.sessions[userID] = s
	return s
}

// Get returns the user's in-progress session, if any.
func (r *Registry) Get(userID int64) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	return s, ok
}

// Clear destroys the user's session. Safe to call when none exists.
func (r *Registry) Clear(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}

// ClearIdle evicts sessions inactive for longer than window and
// returns how many were cleared.
func (r *Registry) ClearIdle(window time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().Add(-window)
	n := 0
	for id, s := range r.sessions {
		if s.LastActive.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Len reports the number of in-progress sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
