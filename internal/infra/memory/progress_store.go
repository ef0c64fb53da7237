package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"portal-learning/internal/domain"
)

// ProgressStore is an in-memory implementation of app.ProgressStore. A single
// mutex serializes all read-modify-write cycles, so concurrent duplicate
// submissions cannot double-award.
type ProgressStore struct {
	mu      sync.Mutex
	clock   func() time.Time
	records map[int64]*domain.ProgressRecord
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{
		clock:   time.Now,
		records: make(map[int64]*domain.ProgressRecord),
	}
}

// WithClock is test-only for deterministic timestamps.
func (s *ProgressStore) WithClock(now func() time.Time) *ProgressStore {
	s.clock = now
	return s
}

func (s *ProgressStore) GetOrCreate(_ context.Context, userID int64) (domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.ensureLocked(userID)), nil
}

func (s *ProgressStore) ApplyCorrectAnswer(_ context.Context, userID, scenarioID int64, points int, allowRetry bool) (domain.ProgressRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.ensureLocked(userID)
	if !allowRetry && snapshot(record).HasCompleted(scenarioID) {
		return snapshot(record), false, nil
	}

	record.TotalPoints += points
	record.CompletedScenarios = append(record.CompletedScenarios, scenarioID)
	record.Level = domain.LevelForPoints(record.TotalPoints)
	record.UpdatedAt = s.clock()
	return snapshot(record), true, nil
}

func (s *ProgressStore) GrantBadge(_ context.Context, userID, badgeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.ensureLocked(userID)
	if snapshot(record).HasBadge(badgeID) {
		return nil
	}
	record.Badges = append(record.Badges, badgeID)
	record.UpdatedAt = s.clock()
	return nil
}

func (s *ProgressStore) TopRecords(_ context.Context, limit int) ([]domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]domain.ProgressRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, snapshot(record))
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].TotalPoints != records[j].TotalPoints {
			return records[i].TotalPoints > records[j].TotalPoints
		}
		return records[i].UserID < records[j].UserID
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *ProgressStore) ensureLocked(userID int64) *domain.ProgressRecord {
	if record, ok := s.records[userID]; ok {
		return record
	}
	now := s.clock()
	record := &domain.ProgressRecord{
		UserID:             userID,
		CompletedScenarios: []int64{},
		CompletedQuizzes:   []int64{},
		Badges:             []int64{},
		Level:              1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.records[userID] = record
	return record
}

// snapshot copies the record so callers never alias store-owned slices.
func snapshot(record *domain.ProgressRecord) domain.ProgressRecord {
	out := *record
	out.CompletedScenarios = append([]int64(nil), record.CompletedScenarios...)
	out.CompletedQuizzes = append([]int64(nil), record.CompletedQuizzes...)
	out.Badges = append([]int64(nil), record.Badges...)
	return out
}
