package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"portal-learning/internal/domain"
)

// ScenarioLoader reads the scenario catalog from Postgres. It sits on the hot
// read path behind the cache, so it uses the pgx pool directly.
type ScenarioLoader struct {
	pool *pgxpool.Pool
}

func NewScenarioLoader(pool *pgxpool.Pool) *ScenarioLoader {
	return &ScenarioLoader{pool: pool}
}

func (l *ScenarioLoader) LoadScenarios(ctx context.Context) ([]domain.Scenario, error) {
	rows, err := l.pool.Query(ctx, `
SELECT id, title, description, choices, correct_answer, points, category, difficulty
FROM scenarios`)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []domain.Scenario
	for rows.Next() {
		var (
			scenario domain.Scenario
			choices  []byte
		)
		if err := rows.Scan(&scenario.ID, &scenario.Title, &scenario.Description, &choices,
			&scenario.CorrectAnswer, &scenario.Points, &scenario.Category, &scenario.Difficulty); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		if err := json.Unmarshal(choices, &scenario.Choices); err != nil {
			return nil, fmt.Errorf("unmarshal choices: %w", err)
		}
		scenarios = append(scenarios, scenario)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	return scenarios, nil
}

func unmarshalIDs(raw []byte, dst *[]int64) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshal id set: %w", err)
	}
	return nil
}
