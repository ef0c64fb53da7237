package memory

import (
	"context"

	"portal-learning/internal/domain"
)

// StaticBadgeRepository serves a fixed badge catalog.
type StaticBadgeRepository struct {
	badges []domain.Badge
}

func NewStaticBadgeRepository(badges []domain.Badge) *StaticBadgeRepository {
	return &StaticBadgeRepository{badges: badges}
}

func (r *StaticBadgeRepository) ListBadges(_ context.Context) ([]domain.Badge, error) {
	out := make([]domain.Badge, len(r.badges))
	copy(out, r.badges)
	return out, nil
}
