package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	mrand "math/rand"
	"sync"
	"time"

	"portal-learning/internal/domain"
)

// ScenarioRepository reads the immutable scenario catalog (from cache/backing store).
type ScenarioRepository interface {
	ListScenarios(ctx context.Context) ([]domain.Scenario, error)
	GetScenario(ctx context.Context, id int64) (domain.Scenario, error)
}

// ProgressStore is the per-user progress ledger.
//
// ApplyCorrectAnswer performs the create-or-update in one logical step: it
// increments total points, appends the scenario to the completed set and
// refreshes the update timestamp, creating the record seeded with this answer
// when absent. When allowRetry is false and the scenario is already completed
// the call must be a no-op and report applied=false. Implementations must be
// safe under concurrent calls for the same user: duplicate submissions may
// award at most once.
type ProgressStore interface {
	GetOrCreate(ctx context.Context, userID int64) (domain.ProgressRecord, error)
	ApplyCorrectAnswer(ctx context.Context, userID, scenarioID int64, points int, allowRetry bool) (record domain.ProgressRecord, applied bool, err error)
	GrantBadge(ctx context.Context, userID, badgeID int64) error
	TopRecords(ctx context.Context, limit int) ([]domain.ProgressRecord, error)
}

// BadgeRepository lists the earnable badge definitions.
type BadgeRepository interface {
	ListBadges(ctx context.Context) ([]domain.Badge, error)
}

// GameSessionStore holds server-drawn scenario sessions until they are
// consumed. Take removes the session so a token can be played once only.
type GameSessionStore interface {
	Put(ctx context.Context, session domain.GameSession) error
	Take(ctx context.Context, token string) (domain.GameSession, error)
}

// UserDirectory resolves user identity for scoreboard display.
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (domain.User, error)
}

const (
	defaultScenarioPoints = 10
	scoreboardSize        = 10
)

// LearningService contains the gamified learning use cases: scenario
// delivery, answer evaluation, progress tracking and timed game sessions.
type LearningService struct {
	scenarios  ScenarioRepository
	progress   ProgressStore
	badges     BadgeRepository
	sessions   GameSessionStore
	users      UserDirectory
	hub        *ScoreboardHub
	allowRetry bool
	sessionTTL time.Duration
	now        func() time.Time

	rndMu sync.Mutex
	rnd   *mrand.Rand
}

// LearningConfig tunes evaluator policy.
type LearningConfig struct {
	// AllowRetry re-enables the legacy behavior of re-awarding points for a
	// scenario the user already completed. Off by default.
	AllowRetry bool
	// SessionTTL bounds a drawn scenario session; defaults to 60s.
	SessionTTL time.Duration
}

func NewLearningService(scenarios ScenarioRepository, progress ProgressStore, badges BadgeRepository, sessions GameSessionStore, users UserDirectory, cfg LearningConfig) *LearningService {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &LearningService{
		scenarios:  scenarios,
		progress:   progress,
		badges:     badges,
		sessions:   sessions,
		users:      users,
		hub:        NewScoreboardHub(),
		allowRetry: cfg.AllowRetry,
		sessionTTL: ttl,
		now:        time.Now,
		rnd:        mrand.New(mrand.NewSource(time.Now().UnixNano())),
	}
}

// WithClock is test-only for deterministic timestamps and session expiry.
func (s *LearningService) WithClock(now func() time.Time) *LearningService {
	s.now = now
	return s
}

// ListScenarios returns the full catalog, unordered, no pagination.
func (s *LearningService) ListScenarios(ctx context.Context) ([]domain.Scenario, error) {
	return s.scenarios.ListScenarios(ctx)
}

// GetProgress returns the caller's progress record, creating it lazily.
func (s *LearningService) GetProgress(ctx context.Context, userID int64) (domain.ProgressRecord, error) {
	return s.progress.GetOrCreate(ctx, userID)
}

// SubmitAnswer evaluates a choice against a scenario and applies the award.
//
// A wrong answer is not an error: the verdict is returned and nothing is
// mutated. An unknown scenario or out-of-range choice fails with no partial
// effects. Repeat submissions of an already completed scenario return the
// verdict with zero points unless retries are enabled.
func (s *LearningService) SubmitAnswer(ctx context.Context, userID, scenarioID int64, choice int) (domain.AnswerResult, error) {
	if choice < 0 {
		return domain.AnswerResult{}, domain.ErrInvalidChoice
	}
	scenario, err := s.scenarios.GetScenario(ctx, scenarioID)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	if choice >= len(scenario.Choices) {
		return domain.AnswerResult{}, domain.ErrInvalidChoice
	}

	if choice != scenario.CorrectAnswer {
		return domain.AnswerResult{Correct: false, Points: 0}, nil
	}

	points := scenarioPoints(scenario)
	record, applied, err := s.progress.ApplyCorrectAnswer(ctx, userID, scenarioID, points, s.allowRetry)
	if err != nil {
		return domain.AnswerResult{}, fmt.Errorf("apply answer: %w", err)
	}
	if !applied {
		return domain.AnswerResult{Correct: true, Points: 0, AlreadyCompleted: true}, nil
	}

	s.awardBadges(ctx, userID, record)
	s.publishScoreboard(ctx)
	return domain.AnswerResult{Correct: true, Points: points}, nil
}

// StartSession draws one scenario uniformly at random and binds it to the
// user behind an opaque token with a 60-second countdown. The token expires
// server-side; a late submission scores nothing.
func (s *LearningService) StartSession(ctx context.Context, userID int64) (domain.GameSession, domain.Scenario, error) {
	scenarios, err := s.scenarios.ListScenarios(ctx)
	if err != nil {
		return domain.GameSession{}, domain.Scenario{}, err
	}
	if len(scenarios) == 0 {
		return domain.GameSession{}, domain.Scenario{}, domain.ErrNoScenarios
	}

	s.rndMu.Lock()
	scenario := scenarios[s.rnd.Intn(len(scenarios))]
	s.rndMu.Unlock()

	token, err := newSessionToken()
	if err != nil {
		return domain.GameSession{}, domain.Scenario{}, fmt.Errorf("session token: %w", err)
	}
	session := domain.GameSession{
		Token:      token,
		UserID:     userID,
		ScenarioID: scenario.ID,
		ExpiresAt:  s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return domain.GameSession{}, domain.Scenario{}, fmt.Errorf("store session: %w", err)
	}
	return session, scenario, nil
}

// SubmitSession consumes a drawn session and evaluates the answer against the
// scenario bound at draw time. Submission is terminal regardless of verdict.
func (s *LearningService) SubmitSession(ctx context.Context, userID int64, token string, choice int) (domain.AnswerResult, error) {
	session, err := s.sessions.Take(ctx, token)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	// A foreign token is indistinguishable from a missing one on purpose.
	if session.UserID != userID {
		return domain.AnswerResult{}, domain.ErrSessionNotFound
	}
	if s.now().After(session.ExpiresAt) {
		return domain.AnswerResult{}, domain.ErrSessionExpired
	}
	return s.SubmitAnswer(ctx, userID, session.ScenarioID, choice)
}

// Scoreboard builds an ordered snapshot of the top scorers.
func (s *LearningService) Scoreboard(ctx context.Context) (domain.Scoreboard, error) {
	records, err := s.progress.TopRecords(ctx, scoreboardSize)
	if err != nil {
		return domain.Scoreboard{}, err
	}
	entries := make([]domain.ScoreboardEntry, 0, len(records))
	for _, record := range records {
		entry := domain.ScoreboardEntry{
			UserID: record.UserID,
			Points: record.TotalPoints,
			Level:  record.Level,
		}
		if user, err := s.users.GetUser(ctx, record.UserID); err == nil {
			entry.Username = user.Username
		}
		entries = append(entries, entry)
	}
	return domain.Scoreboard{Entries: entries, UpdatedAt: s.now()}, nil
}

// Subscribe returns a channel of scoreboard updates plus a cancel function.
func (s *LearningService) Subscribe() (<-chan domain.Scoreboard, func()) {
	return s.hub.Subscribe()
}

// Account joins the user row with the derived gamification counters; the
// progress ledger is the single source of truth for points.
func (s *LearningService) Account(ctx context.Context, userID int64) (domain.Account, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return domain.Account{}, err
	}
	record, err := s.progress.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Account{}, err
	}
	return domain.Account{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		Points:   record.TotalPoints,
		Level:    record.Level,
	}, nil
}

func (s *LearningService) awardBadges(ctx context.Context, userID int64, record domain.ProgressRecord) {
	badges, err := s.badges.ListBadges(ctx)
	if err != nil {
		log.Printf("list badges: %v", err)
		return
	}
	for _, badge := range badges {
		if record.HasBadge(badge.ID) {
			continue
		}
		if record.TotalPoints < badge.Requirement.MinPoints {
			continue
		}
		if len(record.CompletedScenarios) < badge.Requirement.MinScenarios {
			continue
		}
		if err := s.progress.GrantBadge(ctx, userID, badge.ID); err != nil {
			log.Printf("grant badge %d to user %d: %v", badge.ID, userID, err)
		}
	}
}

func (s *LearningService) publishScoreboard(ctx context.Context) {
	board, err := s.Scoreboard(ctx)
	if err != nil {
		log.Printf("build scoreboard: %v", err)
		return
	}
	s.hub.Publish(board)
}

func scenarioPoints(scenario domain.Scenario) int {
	if scenario.Points <= 0 {
		return defaultScenarioPoints
	}
	return scenario.Points
}

func newSessionToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
