package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"portal-learning/internal/domain"
)

// GameSessionStore keeps drawn scenario sessions in Redis. The key TTL
// mirrors the session countdown, so expiry needs no reaper.
type GameSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGameSessionStore(client *redis.Client, ttl time.Duration) *GameSessionStore {
	return &GameSessionStore{client: client, ttl: ttl}
}

func (s *GameSessionStore) Put(ctx context.Context, session domain.GameSession) error {
	data, err := json.Marshal(sessionPayload{
		UserID:     session.UserID,
		ScenarioID: session.ScenarioID,
		ExpiresAt:  session.ExpiresAt,
	})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(session.Token), data, s.ttl).Err()
}

// Take atomically fetches and deletes the session; an expired key reads as
// missing, which callers surface as an expired/unknown token.
func (s *GameSessionStore) Take(ctx context.Context, token string) (domain.GameSession, error) {
	raw, err := s.client.GetDel(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.GameSession{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.GameSession{}, err
	}
	var payload sessionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return domain.GameSession{}, err
	}
	return domain.GameSession{
		Token:      token,
		UserID:     payload.UserID,
		ScenarioID: payload.ScenarioID,
		ExpiresAt:  payload.ExpiresAt,
	}, nil
}

func (s *GameSessionStore) key(token string) string {
	return "game:session:" + token
}

type sessionPayload struct {
	UserID     int64     `json:"userId"`
	ScenarioID int64     `json:"scenarioId"`
	ExpiresAt  time.Time `json:"expiresAt"`
}
