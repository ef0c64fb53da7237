package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_portal_tables.sql
var createPortalTablesSQL string

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(createPortalTablesSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`
DROP TABLE IF EXISTS call_logs;
DROP TABLE IF EXISTS pages;
DROP TABLE IF EXISTS links;
DROP TABLE IF EXISTS faq_entries;
DROP TABLE IF EXISTS contacts;
DROP TABLE IF EXISTS badges;
DROP TABLE IF EXISTS user_progress;
DROP TABLE IF EXISTS scenarios;
DROP TABLE IF EXISTS users`)
			return err
		},
	)
}
