package memory

import (
	"context"
	"fmt"
	"sync"

	"portal-learning/internal/domain"
)

// UserStore is an in-memory implementation of app.UserStore.
type UserStore struct {
	mu         sync.RWMutex
	nextID     int64
	users      map[int64]domain.User
	byUsername map[string]int64
}

func NewUserStore() *UserStore {
	return &UserStore{
		nextID:     1,
		users:      make(map[int64]domain.User),
		byUsername: make(map[string]int64),
	}
}

func (s *UserStore) GetUser(_ context.Context, id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserStore) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return s.users[id], nil
}

func (s *UserStore) CreateUser(_ context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byUsername[user.Username]; ok {
		return domain.User{}, fmt.Errorf("%w: username %q already taken", domain.ErrValidation, user.Username)
	}
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = user
	s.byUsername[user.Username] = user.ID
	return user, nil
}
