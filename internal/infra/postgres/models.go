package postgres

import (
	"time"

	"github.com/uptrace/bun"

	"portal-learning/internal/domain"
)

type userRow struct {
	bun.BaseModel `bun:"table:users"`

	ID           int64       `bun:"id,pk,autoincrement"`
	Username     string      `bun:"username"`
	PasswordHash string      `bun:"password_hash"`
	Role         domain.Role `bun:"role"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
	}
}

type scenarioRow struct {
	bun.BaseModel `bun:"table:scenarios"`

	ID            int64             `bun:"id,pk,autoincrement"`
	Title         string            `bun:"title"`
	Description   string            `bun:"description"`
	Choices       []string          `bun:"choices,type:jsonb"`
	CorrectAnswer int               `bun:"correct_answer"`
	Points        int               `bun:"points"`
	Category      string            `bun:"category"`
	Difficulty    domain.Difficulty `bun:"difficulty"`
}

type progressRow struct {
	bun.BaseModel `bun:"table:user_progress"`

	ID                 int64     `bun:"id,pk,autoincrement"`
	UserID             int64     `bun:"user_id"`
	TotalPoints        int       `bun:"total_points"`
	CompletedScenarios []int64   `bun:"completed_scenarios,type:jsonb"`
	CompletedQuizzes   []int64   `bun:"completed_quizzes,type:jsonb"`
	Badges             []int64   `bun:"badges,type:jsonb"`
	Level              int       `bun:"level"`
	CreatedAt          time.Time `bun:"created_at,nullzero,default:now()"`
	UpdatedAt          time.Time `bun:"updated_at,nullzero,default:now()"`
}

func (r progressRow) toDomain() domain.ProgressRecord {
	record := domain.ProgressRecord{
		UserID:             r.UserID,
		TotalPoints:        r.TotalPoints,
		CompletedScenarios: r.CompletedScenarios,
		CompletedQuizzes:   r.CompletedQuizzes,
		Badges:             r.Badges,
		Level:              r.Level,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if record.CompletedScenarios == nil {
		record.CompletedScenarios = []int64{}
	}
	if record.CompletedQuizzes == nil {
		record.CompletedQuizzes = []int64{}
	}
	if record.Badges == nil {
		record.Badges = []int64{}
	}
	return record
}

type badgeRow struct {
	bun.BaseModel `bun:"table:badges"`

	ID          int64                   `bun:"id,pk,autoincrement"`
	Name        string                  `bun:"name"`
	Description string                  `bun:"description"`
	Image       string                  `bun:"image"`
	Requirement domain.BadgeRequirement `bun:"requirement,type:jsonb"`
	Points      int                     `bun:"points"`
}

type contactRow struct {
	bun.BaseModel `bun:"table:contacts"`

	ID      int64  `bun:"id,pk,autoincrement"`
	Name    string `bun:"name"`
	Phone   string `bun:"phone"`
	Email   string `bun:"email"`
	Address string `bun:"address"`
}

type faqRow struct {
	bun.BaseModel `bun:"table:faq_entries"`

	ID       int64  `bun:"id,pk,autoincrement"`
	Question string `bun:"question"`
	Answer   string `bun:"answer"`
	Category string `bun:"category"`
}

type linkRow struct {
	bun.BaseModel `bun:"table:links"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Title       string `bun:"title"`
	URL         string `bun:"url"`
	Description string `bun:"description"`
}

type pageRow struct {
	bun.BaseModel `bun:"table:pages"`

	ID      int64  `bun:"id,pk,autoincrement"`
	Title   string `bun:"title"`
	Content string `bun:"content"`
	Slug    string `bun:"slug"`
}

type callLogRow struct {
	bun.BaseModel `bun:"table:call_logs"`

	ID        int64     `bun:"id,pk,autoincrement"`
	UserID    int64     `bun:"user_id"`
	Duration  int       `bun:"duration"`
	Outcome   string    `bun:"outcome"`
	Notes     string    `bun:"notes"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:now()"`
}
