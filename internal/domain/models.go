package domain

import "time"

// Role identifies what a portal user is allowed to do.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleTeleconseiller Role = "teleconseiller"
)

// Difficulty tags a scenario for the learning module.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// User is a portal account. Displayed points and level are derived from the
// user's ProgressRecord at read time; they are not stored on the user row.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

// Account is the authenticated-user view returned by the API, with the
// gamification counters joined in from the progress ledger.
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Points   int    `json:"points"`
	Level    int    `json:"level"`
}

// Scenario is a multiple-choice training question. Immutable at runtime from
// the evaluator's point of view; only admin tooling writes scenarios.
type Scenario struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Choices       []string   `json:"choices"`
	CorrectAnswer int        `json:"correctAnswer"`
	Points        int        `json:"points"` // defaults to 10 if zero
	Category      string     `json:"category"`
	Difficulty    Difficulty `json:"difficulty"`
}

// ProgressRecord aggregates a user's gamification state. One record per user,
// created lazily on first progress read or first correct answer.
type ProgressRecord struct {
	UserID             int64     `json:"userId"`
	TotalPoints        int       `json:"totalPoints"`
	CompletedScenarios []int64   `json:"completedScenarios"`
	CompletedQuizzes   []int64   `json:"completedQuizzes"`
	Badges             []int64   `json:"badges"`
	Level              int       `json:"level"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// HasCompleted reports whether scenarioID is already in the completed set.
func (p ProgressRecord) HasCompleted(scenarioID int64) bool {
	for _, id := range p.CompletedScenarios {
		if id == scenarioID {
			return true
		}
	}
	return false
}

// HasBadge reports whether badgeID has already been earned.
func (p ProgressRecord) HasBadge(badgeID int64) bool {
	for _, id := range p.Badges {
		if id == badgeID {
			return true
		}
	}
	return false
}

// PointsPerLevel is the number of points separating two levels.
const PointsPerLevel = 100

// LevelForPoints derives a user's level from their accumulated points.
func LevelForPoints(points int) int {
	if points < 0 {
		return 1
	}
	return points/PointsPerLevel + 1
}

// AnswerResult is the verdict returned for a submitted answer.
type AnswerResult struct {
	Correct          bool `json:"correct"`
	Points           int  `json:"points"`
	AlreadyCompleted bool `json:"alreadyCompleted"`
}

// BadgeRequirement describes the thresholds a user must reach to earn a badge.
type BadgeRequirement struct {
	MinPoints    int `json:"minPoints"`
	MinScenarios int `json:"minScenarios"`
}

// Badge is an earnable distinction. Points is display metadata and never
// feeds back into ProgressRecord.TotalPoints.
type Badge struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Requirement BadgeRequirement `json:"requirement"`
	Points      int              `json:"points"`
}

// GameSession binds a server-drawn scenario to a user for one timed attempt.
// The session is terminal: it is consumed by submission or by expiry.
type GameSession struct {
	Token      string    `json:"token"`
	UserID     int64     `json:"-"`
	ScenarioID int64     `json:"-"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// ScoreboardEntry is one row of the live points scoreboard.
type ScoreboardEntry struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Level    int    `json:"level"`
}

// Scoreboard is an ordered snapshot of the top scorers.
type Scoreboard struct {
	Entries   []ScoreboardEntry `json:"entries"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Contact is a directory entry curated by administrators.
type Contact struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// FaqEntry is a categorized question/answer pair.
type FaqEntry struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// Link is a curated useful link.
type Link struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Page is an informational page identified by a unique slug.
type Page struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Slug    string `json:"slug"`
}

// CallLog records one handled call for a teleconseiller.
type CallLog struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Duration  int       `json:"duration"`
	Outcome   string    `json:"outcome"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}
