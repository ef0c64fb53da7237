package memory

import (
	"context"
	"sync"
	"time"

	"portal-learning/internal/domain"
)

// GameSessionStore is an in-memory implementation of app.GameSessionStore.
type GameSessionStore struct {
	mu       sync.Mutex
	clock    func() time.Time
	sessions map[string]domain.GameSession
}

func NewGameSessionStore() *GameSessionStore {
	return &GameSessionStore{
		clock:    time.Now,
		sessions: make(map[string]domain.GameSession),
	}
}

// WithClock is test-only for deterministic expiry.
func (s *GameSessionStore) WithClock(now func() time.Time) *GameSessionStore {
	s.clock = now
	return s
}

func (s *GameSessionStore) Put(_ context.Context, session domain.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

// Take removes and returns the session; a token is playable exactly once.
func (s *GameSessionStore) Take(_ context.Context, token string) (domain.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return domain.GameSession{}, domain.ErrSessionNotFound
	}
	delete(s.sessions, token)
	if s.clock().After(session.ExpiresAt) {
		return domain.GameSession{}, domain.ErrSessionExpired
	}
	return session, nil
}
