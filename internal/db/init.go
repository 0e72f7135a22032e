package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/taskboard/internal/migrations"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// InitPostgres opens a PostgreSQL connection for the given DSN,
// verifies it, and applies the embedded goose migrations.
func InitPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.UpContext(ctx, db, "."); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return db, nil
}
