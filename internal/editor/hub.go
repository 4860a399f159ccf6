package editor

import (
	"sync"

	"github.com/google/uuid"
)

// SaverFactory builds the persistence hook for one user's session.
type SaverFactory func(userID uuid.UUID) Saver

// Hub hands out one editing session per user. Sessions live for the
// lifetime of the process; a restart simply reloads plots from storage.
type Hub struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	factory  SaverFactory
}

func NewHub(factory SaverFactory) *Hub {
	return &Hub{
		sessions: make(map[uuid.UUID]*Session),
		factory:  factory,
	}
}

// Session returns the user's editing session, creating it on first use.
// The second return reports whether the session is new and needs seeding.
func (h *Hub) Session(userID uuid.UUID) (*Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.sessions[userID]; ok {
		return s, false
	}
	s := NewSession(h.factory(userID))
	h.sessions[userID] = s
	return s, true
}

// Drop discards a user's session, forcing a reload on next access. Called
// after out-of-band plot mutations so the session does not serve stale
// state.
func (h *Hub) Drop(userID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, userID)
}
