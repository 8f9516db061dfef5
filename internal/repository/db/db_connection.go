package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

// MemoryPath keeps the journal in process memory; nothing survives a restart.
const MemoryPath = "file::memory:?cache=shared"

const schemaCommandEvents = `
CREATE TABLE IF NOT EXISTS command_events (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    kind TEXT NOT NULL,
    device TEXT NOT NULL DEFAULT '',
    summary TEXT NOT NULL,
    detail TEXT
);
`

const indexCommandEventsTime = `
CREATE INDEX IF NOT EXISTS idx_command_events_occurred_at ON command_events (occurred_at);
`

const indexCommandEventsDevice = `
CREATE INDEX IF NOT EXISTS idx_command_events_device ON command_events (device, occurred_at);
`

// InitDB opens the SQLite journal at path (MemoryPath when empty) and
// ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	if path == "" {
		path = MemoryPath
	}
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// a single connection keeps an in-memory database alive and serializes writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{"PRAGMA busy_timeout = 5000;"}
	if !isMemory(path) {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL;")
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", strings.TrimSuffix(p, ";"), err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory")
}

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{schemaCommandEvents, indexCommandEventsTime, indexCommandEventsDevice} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
