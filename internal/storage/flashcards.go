package storage

import (
	"sync"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/flashcard"
)

// SessionStorage provides in-memory storage for flashcard sessions by session ID.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[string]*flashcard.Session
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[string]*flashcard.Session),
	}
}

// Store saves a session under the given ID.
func (s *SessionStorage) Store(sessionID string, session *flashcard.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
}

// Get retrieves the session stored under the given ID.
func (s *SessionStorage) Get(sessionID string) (*flashcard.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

// Delete removes the session stored under the given ID.
func (s *SessionStorage) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len returns the number of stored sessions.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
