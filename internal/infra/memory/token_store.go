package memory

import (
	"context"
	"sync"
	"time"

	"portal-learning/internal/domain"
)

// TokenStore is an in-memory implementation of app.TokenStore with per-token
// expiry.
type TokenStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu     sync.Mutex
	tokens map[string]tokenEntry
}

type tokenEntry struct {
	userID    int64
	expiresAt time.Time
}

func NewTokenStore(ttl time.Duration) *TokenStore {
	return &TokenStore{
		ttl:    ttl,
		clock:  time.Now,
		tokens: make(map[string]tokenEntry),
	}
}

// WithClock is test-only for deterministic expiry.
func (s *TokenStore) WithClock(now func() time.Time) *TokenStore {
	s.clock = now
	return s
}

func (s *TokenStore) PutToken(_ context.Context, token string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = tokenEntry{userID: userID, expiresAt: s.clock().Add(s.ttl)}
	return nil
}

func (s *TokenStore) ResolveToken(_ context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[token]
	if !ok {
		return 0, domain.ErrUnauthenticated
	}
	if s.clock().After(entry.expiresAt) {
		delete(s.tokens, token)
		return 0, domain.ErrUnauthenticated
	}
	return entry.userID, nil
}

func (s *TokenStore) DeleteToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
