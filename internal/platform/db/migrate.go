package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"trip-route-service/migrations"

	"github.com/pressly/goose/v3"
)

// Migrate applies all pending route cache migrations.
// dialect is goose.DialectPostgres or goose.DialectSQLite3.
func Migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	provider, err := goose.NewProvider(dialect, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("migrate: create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate: apply migrations: %w", err)
	}

	for _, r := range results {
		slog.InfoContext(ctx, "migration applied",
			"version", r.Source.Version, "file", r.Source.Path, "dur_ms", r.Duration.Milliseconds())
	}

	return nil
}
