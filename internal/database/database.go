package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// dsn appends the connection pragmas. WAL keeps readers (list fetches,
// websocket-triggered reloads) from blocking writers; the busy timeout
// absorbs bursts of concurrent item writes from household members; foreign
// keys back the list -> item and household -> member relationships.
func dsn(dbPath string) string {
	return dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
}

// Open opens the SQLite database at the given path and runs migrations.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// SQLite allows one writer at a time; funneling the pool through a
	// single connection turns lock contention into queueing instead of
	// SQLITE_BUSY errors under concurrent item updates.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
