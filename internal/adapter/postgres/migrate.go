package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/formcraft-backend/migrations"
)

// Migrator runs the embedded goose migrations over its own database/sql
// handle, which Close releases.
type Migrator struct {
	*goose.Provider
	db *sql.DB
}

// NewMigrator connects to dsn and loads the embedded migrations.
func NewMigrator(ctx context.Context, dsn string) (*Migrator, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("goose new provider: %w", err)
	}

	return &Migrator{Provider: provider, db: db}, nil
}

// Close closes the underlying database handle.
func (m *Migrator) Close() error {
	return m.db.Close()
}
