package cli

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"portal-learning/internal/app"
	"portal-learning/internal/config"
	"portal-learning/internal/domain"
	"portal-learning/internal/infra/memory"
	pgstore "portal-learning/internal/infra/postgres"
	redisstore "portal-learning/internal/infra/redis"
	transport "portal-learning/internal/transport/http"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the portal server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var (
		pool  *pgxpool.Pool
		bunDB *bun.DB
	)
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
		bunDB = bun.NewDB(sqldb, pgdialect.New())
		defer bunDB.Close()
	}

	scenarioTTL := config.TTLDuration(cfg.Scenarios.TTL, 10*time.Minute)
	authTTL := config.TTLDuration(cfg.Auth.SessionTTL, 12*time.Hour)
	gameTTL := config.TTLDuration(cfg.Game.SessionTTL, 60*time.Second)

	var loader memory.ScenarioLoader = memory.NewStaticScenarioLoader(sampleScenarios())
	if pool != nil {
		loader = pgstore.NewScenarioLoader(pool)
	}

	var scenarios app.ScenarioRepository
	if redisClient != nil {
		scenarios = redisstore.NewScenarioCache(redisClient, loader, scenarioTTL)
	} else {
		scenarios = memory.NewScenarioCache(loader, scenarioTTL)
	}

	var (
		progress app.ProgressStore
		badges   app.BadgeRepository
		users    app.UserStore
		content  app.ContentStore
	)
	if bunDB != nil {
		progress = pgstore.NewProgressStore(bunDB)
		badges = pgstore.NewBadgeStore(bunDB)
		users = pgstore.NewUserStore(bunDB)
		content = pgstore.NewContentStore(bunDB)
	} else {
		progress = memory.NewProgressStore()
		badges = memory.NewStaticBadgeRepository(sampleBadges())
		users = memory.NewUserStore()
		content = memory.NewContentStore()
	}

	var (
		gameSessions app.GameSessionStore
		tokens       app.TokenStore
	)
	if redisClient != nil {
		gameSessions = redisstore.NewGameSessionStore(redisClient, gameTTL)
		tokens = redisstore.NewTokenStore(redisClient, authTTL)
	} else {
		gameSessions = memory.NewGameSessionStore()
		tokens = memory.NewTokenStore(authTTL)
	}

	authService := app.NewAuthService(users, tokens)
	learningService := app.NewLearningService(scenarios, progress, badges, gameSessions, users, app.LearningConfig{
		AllowRetry: cfg.Game.AllowRetry,
		SessionTTL: gameTTL,
	})
	contentService := app.NewContentService(content)

	if bunDB == nil {
		// Demo mode: no database means no accounts, so register the samples.
		for _, user := range sampleUsers() {
			if _, err := authService.Register(ctx, user.username, user.password, user.role); err != nil {
				return err
			}
		}
		log.Printf("running without postgres; sample accounts registered")
	}

	api := transport.NewAPI(authService, learningService, contentService)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      api.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting portal server on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

type sampleUser struct {
	username string
	password string
	role     domain.Role
}

func sampleUsers() []sampleUser {
	return []sampleUser{
		{username: "admin", password: "admin", role: domain.RoleAdmin},
		{username: "marie", password: "marie", role: domain.RoleTeleconseiller},
	}
}
