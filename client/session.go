package client

import (
	"sync"

	"learnhub-backend/models"
)

// SessionStore holds the bearer token and user profile for a client session.
// Implementations stand in for the browser's local storage in the original
// frontend; the store is injected so no ambient shared state exists.
type SessionStore interface {
	Session() (token string, user models.PublicUser)
	SetSession(token string, user models.PublicUser)
	Clear()
}

// MemorySession is an in-memory SessionStore safe for concurrent use.
type MemorySession struct {
	mu    sync.RWMutex
	token string
	user  models.PublicUser
}

// NewMemorySession creates an empty MemorySession.
func NewMemorySession() *MemorySession {
	return &MemorySession{}
}

func (s *MemorySession) Session() (string, models.PublicUser) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.user
}

func (s *MemorySession) SetSession(token string, user models.PublicUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

func (s *MemorySession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = models.PublicUser{}
}

// LoggedIn reports whether a token is stored.
func (s *MemorySession) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}
