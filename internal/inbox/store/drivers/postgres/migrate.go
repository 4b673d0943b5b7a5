package postgres

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/whisper/internal/inbox/store/drivers/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// applyMigrations runs the embedded goose migrations.
func applyMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
