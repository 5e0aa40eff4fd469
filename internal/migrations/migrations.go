// AngelaMos | 2026
// migrations.go

package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

const dir = "sql"

// goose keeps its dialect and filesystem in package state.
var mu sync.Mutex

func setup(dialect string) error {
	goose.SetBaseFS(files)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	return nil
}

func Up(ctx context.Context, db *sql.DB, dialect string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := setup(dialect); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB, dialect string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := setup(dialect); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

func Version(ctx context.Context, db *sql.DB, dialect string) (int64, error) {
	mu.Lock()
	defer mu.Unlock()

	if err := setup(dialect); err != nil {
		return 0, err
	}
	v, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	return v, nil
}

// Status logs the applied state of every migration through goose's logger.
func Status(ctx context.Context, db *sql.DB, dialect string, logger goose.Logger) error {
	mu.Lock()
	defer mu.Unlock()

	if err := setup(dialect); err != nil {
		return err
	}
	goose.SetLogger(logger)
	if err := goose.StatusContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return nil
}
