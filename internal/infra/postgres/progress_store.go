package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"portal-learning/internal/domain"
)

// ProgressStore is the Postgres progress ledger. Every mutation is a single
// conditional statement, so concurrent submissions for the same user
// serialize on the row and cannot double-award.
type ProgressStore struct {
	db *bun.DB
}

func NewProgressStore(db *bun.DB) *ProgressStore {
	return &ProgressStore{db: db}
}

func (s *ProgressStore) GetOrCreate(ctx context.Context, userID int64) (domain.ProgressRecord, error) {
	// Insert-if-absent first; the unique constraint on user_id makes this
	// safe to call repeatedly and from concurrent requests.
	_, err := s.db.NewInsert().
		Model(&progressRow{UserID: userID, CompletedScenarios: []int64{}, CompletedQuizzes: []int64{}, Badges: []int64{}, Level: 1}).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return domain.ProgressRecord{}, fmt.Errorf("create progress: %w", err)
	}

	var row progressRow
	if err := s.db.NewSelect().Model(&row).Where("user_id = ?", userID).Scan(ctx); err != nil {
		return domain.ProgressRecord{}, fmt.Errorf("load progress: %w", err)
	}
	return row.toDomain(), nil
}

func (s *ProgressStore) ApplyCorrectAnswer(ctx context.Context, userID, scenarioID int64, points int, allowRetry bool) (domain.ProgressRecord, bool, error) {
	// Create-or-update in one statement. The WHERE guard on the conflict
	// branch makes an already-completed scenario a no-op (no row returned)
	// unless retries are allowed. Level math mirrors domain.PointsPerLevel.
	query := `
INSERT INTO user_progress (user_id, total_points, completed_scenarios, completed_quizzes, badges, level, created_at, updated_at)
VALUES (?, ?, jsonb_build_array(?::bigint), '[]'::jsonb, '[]'::jsonb, ?, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
	total_points = user_progress.total_points + EXCLUDED.total_points,
	completed_scenarios = user_progress.completed_scenarios || EXCLUDED.completed_scenarios,
	level = (user_progress.total_points + EXCLUDED.total_points) / ? + 1,
	updated_at = now()
WHERE ? OR NOT user_progress.completed_scenarios @> to_jsonb(?::bigint)
RETURNING user_id, total_points, completed_scenarios, completed_quizzes, badges, level, created_at, updated_at`

	row := s.db.QueryRowContext(ctx, query,
		userID, points, scenarioID, domain.LevelForPoints(points),
		domain.PointsPerLevel, allowRetry, scenarioID)

	record, err := scanProgress(row)
	if errors.Is(err, sql.ErrNoRows) {
		// Guard fired: the scenario was already completed.
		existing, err := s.GetOrCreate(ctx, userID)
		if err != nil {
			return domain.ProgressRecord{}, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return domain.ProgressRecord{}, false, fmt.Errorf("apply answer: %w", err)
	}
	return record, true, nil
}

func (s *ProgressStore) GrantBadge(ctx context.Context, userID, badgeID int64) error {
	_, err := s.db.ExecContext(ctx, `
UPDATE user_progress
SET badges = badges || to_jsonb(?::bigint), updated_at = now()
WHERE user_id = ? AND NOT badges @> to_jsonb(?::bigint)`,
		badgeID, userID, badgeID)
	if err != nil {
		return fmt.Errorf("grant badge: %w", err)
	}
	return nil
}

func (s *ProgressStore) TopRecords(ctx context.Context, limit int) ([]domain.ProgressRecord, error) {
	var rows []progressRow
	err := s.db.NewSelect().
		Model(&rows).
		Order("total_points DESC", "user_id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("top records: %w", err)
	}
	records := make([]domain.ProgressRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toDomain())
	}
	return records, nil
}

func scanProgress(row *sql.Row) (domain.ProgressRecord, error) {
	var (
		record                             domain.ProgressRecord
		completedScenarios, quizzes, badge []byte
	)
	err := row.Scan(&record.UserID, &record.TotalPoints, &completedScenarios, &quizzes, &badge,
		&record.Level, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return domain.ProgressRecord{}, err
	}
	for _, pair := range []struct {
		raw []byte
		dst *[]int64
	}{
		{completedScenarios, &record.CompletedScenarios},
		{quizzes, &record.CompletedQuizzes},
		{badge, &record.Badges},
	} {
		*pair.dst = []int64{}
		if len(pair.raw) > 0 {
			if err := unmarshalIDs(pair.raw, pair.dst); err != nil {
				return domain.ProgressRecord{}, err
			}
		}
	}
	return record, nil
}
