package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"portal-learning/internal/app"
	"portal-learning/internal/domain"
	pgstore "portal-learning/internal/infra/postgres"
	pgmigrations "portal-learning/internal/infra/postgres/migrations"
	infraredis "portal-learning/internal/infra/redis"
)

func TestLearningEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(pgURL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	hash, err := app.HashPassword("marie-pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	err = pgstore.Seed(ctx, db,
		[]domain.Scenario{
			{ID: 1, Title: "Appel résiliation", Choices: []string{"a", "b", "c"}, CorrectAnswer: 1, Points: 10, Category: "fidélisation", Difficulty: domain.DifficultyEasy},
			{ID: 2, Title: "Remboursement optique", Choices: []string{"a", "b"}, CorrectAnswer: 0, Points: 20, Category: "remboursements", Difficulty: domain.DifficultyMedium},
		},
		[]domain.Badge{
			{ID: 1, Name: "Première victoire", Requirement: domain.BadgeRequirement{MinScenarios: 1}},
		},
		[]domain.User{
			{Username: "marie", PasswordHash: hash, Role: domain.RoleTeleconseiller},
		},
	)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	scenarios := infraredis.NewScenarioCache(redisClient, pgstore.NewScenarioLoader(pool), 5*time.Minute)
	progress := pgstore.NewProgressStore(db)
	badges := pgstore.NewBadgeStore(db)
	users := pgstore.NewUserStore(db)
	sessions := infraredis.NewGameSessionStore(redisClient, time.Minute)
	tokens := infraredis.NewTokenStore(redisClient, time.Hour)

	auth := app.NewAuthService(users, tokens)
	learning := app.NewLearningService(scenarios, progress, badges, sessions, users, app.LearningConfig{})

	token, user, err := auth.Login(ctx, "marie", "marie-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resolved, err := auth.Authenticate(ctx, token); err != nil || resolved.ID != user.ID {
		t.Fatalf("authenticate: user=%+v err=%v", resolved, err)
	}

	result, err := learning.SubmitAnswer(ctx, user.ID, 1, 1)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Correct || result.Points != 10 {
		t.Fatalf("unexpected verdict: %+v", result)
	}

	// The upsert guard makes the replay a no-op at the SQL layer.
	result, err = learning.SubmitAnswer(ctx, user.ID, 1, 1)
	if err != nil {
		t.Fatalf("replay submit: %v", err)
	}
	if !result.AlreadyCompleted || result.Points != 0 {
		t.Fatalf("expected zero-point replay, got %+v", result)
	}

	record, err := learning.GetProgress(ctx, user.ID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if record.TotalPoints != 10 || !record.HasCompleted(1) {
		t.Fatalf("unexpected progress: %+v", record)
	}
	if !record.HasBadge(1) {
		t.Fatalf("expected first-win badge, got %v", record.Badges)
	}

	session, scenario, err := learning.StartSession(ctx, user.ID)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	sessionResult, err := learning.SubmitSession(ctx, user.ID, session.Token, scenario.CorrectAnswer)
	if err != nil {
		t.Fatalf("submit session: %v", err)
	}
	if !sessionResult.Correct {
		t.Fatalf("expected correct session verdict, got %+v", sessionResult)
	}
	if _, err := learning.SubmitSession(ctx, user.ID, session.Token, scenario.CorrectAnswer); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected consumed token to be gone, got %v", err)
	}

	board, err := learning.Scoreboard(ctx)
	if err != nil {
		t.Fatalf("scoreboard: %v", err)
	}
	if len(board.Entries) != 1 || board.Entries[0].Username != "marie" {
		t.Fatalf("unexpected scoreboard: %+v", board.Entries)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "portal", "POSTGRES_PASSWORD": "portalpass", "POSTGRES_DB": "portaldb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://portal:portalpass@%s:%s/portaldb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
