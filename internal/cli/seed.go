package cli

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"portal-learning/internal/app"
	"portal-learning/internal/config"
	"portal-learning/internal/domain"
	pgstore "portal-learning/internal/infra/postgres"
)

// NewSeedCmd loads starter scenarios, badges and accounts into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with sample portal content",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			if err := runMigrationsWithConfig(cmd.Context(), cfg); err != nil {
				return err
			}

			sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
			db := bun.NewDB(sqldb, pgdialect.New())
			defer db.Close()

			users := make([]domain.User, 0, len(sampleUsers()))
			for _, u := range sampleUsers() {
				hash, err := app.HashPassword(u.password)
				if err != nil {
					return err
				}
				users = append(users, domain.User{
					Username:     u.username,
					PasswordHash: hash,
					Role:         u.role,
				})
			}

			if err := pgstore.Seed(cmd.Context(), db, sampleScenarios(), sampleBadges(), users); err != nil {
				return err
			}
			log.Printf("seed data loaded")
			return nil
		},
	}
}
