package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"portal-learning/internal/domain"
)

func TestGameSessionTakeOnce(t *testing.T) {
	ctx := context.Background()
	_, client := newTestClient(t)
	store := NewGameSessionStore(client, time.Minute)

	session := domain.GameSession{Token: "tok", UserID: 1, ScenarioID: 7, ExpiresAt: time.Now().Add(time.Minute)}
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Take(ctx, "tok")
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if got.UserID != 1 || got.ScenarioID != 7 {
		t.Fatalf("unexpected session: %+v", got)
	}

	if _, err := store.Take(ctx, "tok"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected taken token to be gone, got %v", err)
	}
}

func TestGameSessionKeyExpiry(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	store := NewGameSessionStore(client, time.Minute)

	session := domain.GameSession{Token: "tok", UserID: 1, ScenarioID: 7, ExpiresAt: time.Now().Add(time.Minute)}
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("put: %v", err)
	}

	mr.FastForward(61 * time.Second)
	if _, err := store.Take(ctx, "tok"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected expired key to read as missing, got %v", err)
	}
}
