package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/formcraft-backend/internal/adapter/postgres"
)

// Migration directions accepted by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// Migrate applies, rolls back or reports the schema migrations.
// Down rolls back a single version.
func Migrate(ctx context.Context, dsn, direction string, logger *slog.Logger) error {
	switch direction {
	case MigrateUp, MigrateDown, MigrateStatus:
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}

	m, err := postgres.NewMigrator(ctx, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	switch direction {
	case MigrateUp:
		results, err := m.Up(ctx)
		if err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
		for _, r := range results {
			logger.InfoContext(ctx, "migration applied",
				slog.Int64("version", r.Source.Version),
				slog.Duration("duration", r.Duration))
		}
		if len(results) == 0 {
			logger.InfoContext(ctx, "schema up to date")
		}
	case MigrateDown:
		r, err := m.Down(ctx)
		if err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
		logger.InfoContext(ctx, "migration rolled back", slog.Int64("version", r.Source.Version))
	case MigrateStatus:
		statuses, err := m.Status(ctx)
		if err != nil {
			return fmt.Errorf("goose status: %w", err)
		}
		for _, s := range statuses {
			logger.InfoContext(ctx, "migration",
				slog.Int64("version", s.Source.Version),
				slog.String("path", s.Source.Path),
				slog.String("state", string(s.State)))
		}
	}
	return nil
}
