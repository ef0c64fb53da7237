package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"portal-learning/internal/domain"
)

// Seed inserts starter content. Existing rows are left untouched so the
// command is safe to run against a populated database.
func Seed(ctx context.Context, db *bun.DB, scenarios []domain.Scenario, badges []domain.Badge, users []domain.User) error {
	for _, scenario := range scenarios {
		row := scenarioRow{
			ID:            scenario.ID,
			Title:         scenario.Title,
			Description:   scenario.Description,
			Choices:       scenario.Choices,
			CorrectAnswer: scenario.CorrectAnswer,
			Points:        scenario.Points,
			Category:      scenario.Category,
			Difficulty:    scenario.Difficulty,
		}
		if _, err := db.NewInsert().Model(&row).On("CONFLICT (id) DO NOTHING").Exec(ctx); err != nil {
			return fmt.Errorf("seed scenario %d: %w", scenario.ID, err)
		}
	}
	for _, badge := range badges {
		row := badgeRow{
			ID:          badge.ID,
			Name:        badge.Name,
			Description: badge.Description,
			Image:       badge.Image,
			Requirement: badge.Requirement,
			Points:      badge.Points,
		}
		if _, err := db.NewInsert().Model(&row).On("CONFLICT (id) DO NOTHING").Exec(ctx); err != nil {
			return fmt.Errorf("seed badge %d: %w", badge.ID, err)
		}
	}
	for _, user := range users {
		row := userRow{
			Username:     user.Username,
			PasswordHash: user.PasswordHash,
			Role:         user.Role,
		}
		if _, err := db.NewInsert().Model(&row).On("CONFLICT (username) DO NOTHING").Exec(ctx); err != nil {
			return fmt.Errorf("seed user %s: %w", user.Username, err)
		}
	}
	return nil
}
