package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"portal-learning/internal/domain"
)

// BadgeStore reads badge definitions from Postgres.
type BadgeStore struct {
	db *bun.DB
}

func NewBadgeStore(db *bun.DB) *BadgeStore {
	return &BadgeStore{db: db}
}

func (s *BadgeStore) ListBadges(ctx context.Context) ([]domain.Badge, error) {
	var rows []badgeRow
	if err := s.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	badges := make([]domain.Badge, 0, len(rows))
	for _, row := range rows {
		badges = append(badges, domain.Badge{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Image:       row.Image,
			Requirement: row.Requirement,
			Points:      row.Points,
		})
	}
	return badges, nil
}
