package memory

import (
	"context"
	"testing"

	"portal-learning/internal/domain"
)

func TestProgressApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewProgressStore()

	record, applied, err := store.ApplyCorrectAnswer(ctx, 1, 7, 10, false)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !applied || record.TotalPoints != 10 || !record.HasCompleted(7) {
		t.Fatalf("unexpected first apply: applied=%v record=%+v", applied, record)
	}

	record, applied, err = store.ApplyCorrectAnswer(ctx, 1, 7, 10, false)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if applied || record.TotalPoints != 10 || len(record.CompletedScenarios) != 1 {
		t.Fatalf("duplicate apply must be a no-op: applied=%v record=%+v", applied, record)
	}

	record, applied, err = store.ApplyCorrectAnswer(ctx, 1, 7, 10, true)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !applied || record.TotalPoints != 20 {
		t.Fatalf("retry mode must re-award: applied=%v record=%+v", applied, record)
	}
}

func TestProgressLevelTracksPoints(t *testing.T) {
	ctx := context.Background()
	store := NewProgressStore()

	record, _, err := store.ApplyCorrectAnswer(ctx, 1, 1, 250, false)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if record.Level != domain.LevelForPoints(250) {
		t.Fatalf("expected level %d, got %d", domain.LevelForPoints(250), record.Level)
	}
}

func TestGrantBadgeOnce(t *testing.T) {
	ctx := context.Background()
	store := NewProgressStore()

	if err := store.GrantBadge(ctx, 1, 3); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if err := store.GrantBadge(ctx, 1, 3); err != nil {
		t.Fatalf("grant again: %v", err)
	}
	record, err := store.GetOrCreate(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(record.Badges) != 1 || record.Badges[0] != 3 {
		t.Fatalf("badge must be granted once, got %v", record.Badges)
	}
}

func TestTopRecordsOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewProgressStore()

	if _, _, err := store.ApplyCorrectAnswer(ctx, 1, 1, 30, false); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, _, err := store.ApplyCorrectAnswer(ctx, 2, 1, 50, false); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, _, err := store.ApplyCorrectAnswer(ctx, 3, 1, 30, false); err != nil {
		t.Fatalf("apply: %v", err)
	}

	records, err := store.TopRecords(ctx, 2)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].UserID != 2 || records[1].UserID != 1 {
		t.Fatalf("unexpected order: %+v", records)
	}
}
