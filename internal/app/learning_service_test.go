package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"portal-learning/internal/app"
	"portal-learning/internal/domain"
	"portal-learning/internal/infra/memory"
)

func TestSubmitAnswerVerdicts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(app.LearningConfig{})

	result, err := svc.SubmitAnswer(ctx, 1, 7, 2)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !result.Correct || result.Points != 10 {
		t.Fatalf("expected correct with 10 points, got %+v", result)
	}

	record, err := svc.GetProgress(ctx, 1)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if record.TotalPoints != 10 {
		t.Fatalf("expected 10 total points, got %d", record.TotalPoints)
	}
	if !record.HasCompleted(7) {
		t.Fatalf("expected scenario 7 in completed set, got %v", record.CompletedScenarios)
	}

	result, err = svc.SubmitAnswer(ctx, 2, 7, 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Correct || result.Points != 0 {
		t.Fatalf("expected wrong answer with 0 points, got %+v", result)
	}
	record, _ = svc.GetProgress(ctx, 2)
	if record.TotalPoints != 0 || len(record.CompletedScenarios) != 0 {
		t.Fatalf("wrong answer must not mutate progress, got %+v", record)
	}
}

func TestProgressCreatedLazily(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(app.LearningConfig{})

	record, err := svc.GetProgress(ctx, 42)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if record.UserID != 42 || record.TotalPoints != 0 || record.Level != 1 {
		t.Fatalf("unexpected fresh record: %+v", record)
	}
	if len(record.CompletedScenarios) != 0 || len(record.CompletedQuizzes) != 0 || len(record.Badges) != 0 {
		t.Fatalf("fresh record must have empty sets: %+v", record)
	}
}

func TestRepeatSubmissionDoesNotReaward(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(app.LearningConfig{})

	if _, err := svc.SubmitAnswer(ctx, 1, 7, 2); err != nil {
		t.Fatalf("submit: %v", err)
	}
	result, err := svc.SubmitAnswer(ctx, 1, 7, 2)
	if err != nil {
		t.Fatalf("repeat submit: %v", err)
	}
	if !result.Correct || result.Points != 0 || !result.AlreadyCompleted {
		t.Fatalf("expected zero-point repeat verdict, got %+v", result)
	}

	record, _ := svc.GetProgress(ctx, 1)
	if record.TotalPoints != 10 {
		t.Fatalf("repeat must not re-award, total=%d", record.TotalPoints)
	}
	if len(record.CompletedScenarios) != 1 {
		t.Fatalf("repeat must not duplicate the completed set: %v", record.CompletedScenarios)
	}
}

func TestAllowRetryReawards(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(app.LearningConfig{AllowRetry: true})

	for i := 0; i < 2; i++ {
		result, err := svc.SubmitAnswer(ctx, 1, 7, 2)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if !result.Correct || result.Points != 10 {
			t.Fatalf("submit %d: expected full award, got %+v", i, result)
		}
	}
	record, _ := svc.GetProgress(ctx, 1)
	if record.TotalPoints != 20 {
		t.Fatalf("retry mode should re-award, total=%d", record.TotalPoints)
	}
}

func TestUnknownScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(app.LearningConfig{})

	_, err := svc.SubmitAnswer(ctx, 1, 9999, 0)
	if !errors.Is(err, domain.ErrScenarioNotFound) {
		t.Fatalf("expected scenario not found, got %v", err)
	}
	record, _ := svc.GetProgress(ctx, 1)
	if record.TotalPoints != 0 || len(record.CompletedScenarios) != 0 {
		t.Fatalf("failed submit must not mutate progress: %+v", record)
	}
}

func TestInvalidChoiceRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(app.LearningConfig{})

	if _, err := svc.SubmitAnswer(ctx, 1, 7, -1); !errors.Is(err, domain.ErrInvalidChoice) {
		t.Fatalf("expected invalid choice for negative index, got %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, 1, 7, 3); !errors.Is(err, domain.ErrInvalidChoice) {
		t.Fatalf("expected invalid choice for out-of-range index, got %v", err)
	}
}

func TestDefaultScenarioPoints(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(app.LearningConfig{})

	result, err := svc.SubmitAnswer(ctx, 1, 9, 1)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Points != 10 {
		t.Fatalf("zero-point scenario should default to 10, got %d", result.Points)
	}
}

func TestConcurrentDuplicateSubmissionsAwardOnce(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(app.LearningConfig{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.SubmitAnswer(ctx, 1, 7, 2)
		}()
	}
	wg.Wait()

	record, _ := svc.GetProgress(ctx, 1)
	if record.TotalPoints != 10 {
		t.Fatalf("duplicate submissions must award once, total=%d", record.TotalPoints)
	}
	if len(record.CompletedScenarios) != 1 {
		t.Fatalf("expected a single completed entry, got %v", record.CompletedScenarios)
	}
}

func TestBadgeAwards(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(app.LearningConfig{})

	if _, err := svc.SubmitAnswer(ctx, 1, 7, 2); err != nil {
		t.Fatalf("submit: %v", err)
	}
	record, _ := svc.GetProgress(ctx, 1)
	if !record.HasBadge(1) {
		t.Fatalf("expected first-win badge, got %v", record.Badges)
	}
	if record.HasBadge(2) {
		t.Fatalf("100-point badge awarded too early: %v", record.Badges)
	}

	if _, err := svc.SubmitAnswer(ctx, 1, 10, 0); err != nil {
		t.Fatalf("submit: %v", err)
	}
	record, _ = svc.GetProgress(ctx, 1)
	if !record.HasBadge(2) {
		t.Fatalf("expected 100-point badge at %d points, got %v", record.TotalPoints, record.Badges)
	}
}

func TestLevelDerivedFromPoints(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(app.LearningConfig{})

	if _, err := svc.SubmitAnswer(ctx, 1, 10, 0); err != nil {
		t.Fatalf("submit: %v", err)
	}
	record, _ := svc.GetProgress(ctx, 1)
	if record.TotalPoints != 120 || record.Level != 2 {
		t.Fatalf("expected level 2 at 120 points, got level %d at %d", record.Level, record.TotalPoints)
	}
}

func TestGameSessionFlow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(app.LearningConfig{})

	session, scenario, err := svc.StartSession(ctx, 1)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if session.Token == "" || scenario.ID != session.ScenarioID {
		t.Fatalf("inconsistent session: %+v vs %+v", session, scenario)
	}

	result, err := svc.SubmitSession(ctx, 1, session.Token, scenario.CorrectAnswer)
	if err != nil {
		t.Fatalf("submit session: %v", err)
	}
	if !result.Correct {
		t.Fatalf("expected correct verdict, got %+v", result)
	}

	// The token is consumed by submission.
	if _, err := svc.SubmitSession(ctx, 1, session.Token, scenario.CorrectAnswer); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected consumed token to be unknown, got %v", err)
	}
}

func TestGameSessionExpiry(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(app.LearningConfig{})

	current := time.Now()
	svc.WithClock(func() time.Time { return current })

	session, scenario, err := svc.StartSession(ctx, 1)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	current = current.Add(61 * time.Second)
	if _, err := svc.SubmitSession(ctx, 1, session.Token, scenario.CorrectAnswer); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected expired session, got %v", err)
	}

	record, _ := svc.GetProgress(ctx, 1)
	if record.TotalPoints != 0 {
		t.Fatalf("expired session must not award points, total=%d", record.TotalPoints)
	}
}

func TestGameSessionForeignToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(app.LearningConfig{})

	session, scenario, err := svc.StartSession(ctx, 1)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if _, err := svc.SubmitSession(ctx, 2, session.Token, scenario.CorrectAnswer); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected foreign token to read as unknown, got %v", err)
	}
}

func TestScoreboardSubscribe(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestService(app.LearningConfig{})

	user, err := users.CreateUser(ctx, domain.User{Username: "marie", Role: domain.RoleTeleconseiller})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	updates, cancel := svc.Subscribe()
	defer cancel()

	if _, err := svc.SubmitAnswer(ctx, user.ID, 7, 2); err != nil {
		t.Fatalf("submit: %v", err)
	}

	select {
	case board := <-updates:
		if len(board.Entries) != 1 {
			t.Fatalf("expected one scoreboard entry, got %+v", board.Entries)
		}
		entry := board.Entries[0]
		if entry.UserID != user.ID || entry.Points != 10 || entry.Username != "marie" {
			t.Fatalf("unexpected scoreboard entry: %+v", entry)
		}
	case <-time.After(time.Second):
		t.Fatalf("no scoreboard update received")
	}
}

func newTestService(cfg app.LearningConfig) (*app.LearningService, *memory.UserStore) {
	users := memory.NewUserStore()
	scenarios := memory.NewScenarioCache(memory.NewStaticScenarioLoader(testScenarios()), 5*time.Minute)
	progress := memory.NewProgressStore()
	badges := memory.NewStaticBadgeRepository(testBadges())
	sessions := memory.NewGameSessionStore()
	return app.NewLearningService(scenarios, progress, badges, sessions, users, cfg), users
}

func testScenarios() []domain.Scenario {
	return []domain.Scenario{
		{
			ID:            7,
			Title:         "Appel résiliation",
			Description:   "Un adhérent souhaite résilier",
			Choices:       []string{"Transférer", "Argumenter", "Écouter puis vérifier les garanties"},
			CorrectAnswer: 2,
			Points:        10,
			Category:      "fidélisation",
			Difficulty:    domain.DifficultyEasy,
		},
		{
			ID:            9,
			Title:         "Tiers payant",
			Description:   "Question sur la carte de tiers payant",
			Choices:       []string{"Raccrocher", "Vérifier les droits"},
			CorrectAnswer: 1,
			Points:        0, // exercises the default
			Category:      "remboursements",
			Difficulty:    domain.DifficultyEasy,
		},
		{
			ID:            10,
			Title:         "Cas complexe",
			Description:   "Réclamation multi-contrats",
			Choices:       []string{"Tout reprendre depuis le début", "Improviser"},
			CorrectAnswer: 0,
			Points:        120,
			Category:      "réclamations",
			Difficulty:    domain.DifficultyHard,
		},
	}
}

func testBadges() []domain.Badge {
	return []domain.Badge{
		{ID: 1, Name: "Première victoire", Requirement: domain.BadgeRequirement{MinScenarios: 1}},
		{ID: 2, Name: "Centurion", Requirement: domain.BadgeRequirement{MinPoints: 100}},
	}
}
