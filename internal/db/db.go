// Package db owns the SQLite connection, schema, and migrations.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (creating if needed) the SQLite database at path and runs
// schema migrations. The returned handle is shared by all repositories;
// SQLite serializes writes internally.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := database.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// A failed column-add indicates a corrupted schema expectation and
	// must abort startup.
	if err := EnsureSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return database, nil
}
