package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"portal-learning/internal/domain"
)

func TestSessionTakeOnce(t *testing.T) {
	ctx := context.Background()
	store := NewGameSessionStore()

	session := domain.GameSession{Token: "tok", UserID: 1, ScenarioID: 7, ExpiresAt: time.Now().Add(time.Minute)}
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Take(ctx, "tok")
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if got.ScenarioID != 7 || got.UserID != 1 {
		t.Fatalf("unexpected session: %+v", got)
	}

	if _, err := store.Take(ctx, "tok"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected taken token to be gone, got %v", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	ctx := context.Background()

	current := time.Now()
	store := NewGameSessionStore().WithClock(func() time.Time { return current })

	session := domain.GameSession{Token: "tok", UserID: 1, ScenarioID: 7, ExpiresAt: current.Add(60 * time.Second)}
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("put: %v", err)
	}

	current = current.Add(61 * time.Second)
	if _, err := store.Take(ctx, "tok"); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected expired session, got %v", err)
	}
	// Expiry consumes the token too.
	if _, err := store.Take(ctx, "tok"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected token to be consumed, got %v", err)
	}
}
