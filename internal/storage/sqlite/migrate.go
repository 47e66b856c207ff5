package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

var gooseMu sync.Mutex

// OpenDB opens a plain database/sql handle for running migrations by hand.
func OpenDB(path string) (*sql.DB, error) {
	db, err := goose.OpenDBWithDriver("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("goose: failed to open DB: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded schema migrations. goose keeps its settings in
// package globals, so runs are serialized.
func Migrate(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	goose.SetTableName("schema_migrations")

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose: set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Rollback reverts the most recent migration.
func Rollback(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	goose.SetTableName("schema_migrations")

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose: set dialect: %w", err)
	}
	if err := goose.DownContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}
