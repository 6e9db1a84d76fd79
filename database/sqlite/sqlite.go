package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// New opens the database at DB_PATH (or a local default) and migrates it.
// The expense repository is the only component that touches the handle.
func New() (*sqlx.DB, error) {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "./storage/expenses.db"
	}

	return Open(path)
}

// Open connects to the sqlite file at path and brings the schema up to date.
// Write transactions take the write lock at BEGIN (_txlock=immediate), so the
// idempotency lookup-or-insert unit executes serially across writers.
func Open(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := fmt.Sprintf(
		"file:%s?_txlock=immediate&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		path,
	)

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := RunMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}
