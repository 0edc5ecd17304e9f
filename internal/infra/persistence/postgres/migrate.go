package postgres

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"hirepro/internal/errors"
	"hirepro/internal/infra/persistence/postgres/migrations"
)

// runMigrations applies the embedded goose migrations. It is idempotent and
// runs on every startup before the pool is handed to the application.
func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	return nil
}
