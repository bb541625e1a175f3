package db

import (
	"database/sql"
	"fmt"
)

// columnMigration describes one column introduced after the base schema.
// EnsureSchema adds it when missing and runs the backfill statements so
// rows written by older versions get sensible values.
type columnMigration struct {
	Table    string
	Column   string
	AddSQL   string
	Backfill []string
}

// baseSchemaSQL creates the two tables with their original (v1) columns.
// Later columns are added by columnMigrations below, which keeps the
// migrator exercising the same path on old and fresh databases alike.
const baseSchemaSQL = `
CREATE TABLE IF NOT EXISTS plans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('proposed', 'in_progress', 'completed')) DEFAULT 'proposed',
	changelog TEXT NOT NULL DEFAULT '[]',
	timestamp TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS thoughts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	content TEXT NOT NULL,
	plan_id INTEGER
);
`

// columnMigrations lists every column added after v1, in order.
var columnMigrations = []columnMigration{
	{
		Table:  "plans",
		Column: "created_at",
		AddSQL: "ALTER TABLE plans ADD COLUMN created_at INTEGER",
		Backfill: []string{
			// Epoch millis derived from the ISO creation timestamp.
			"UPDATE plans SET created_at = CAST(strftime('%s', timestamp) AS INTEGER) * 1000 WHERE created_at IS NULL",
		},
	},
	{
		Table:  "plans",
		Column: "last_modified_by",
		AddSQL: "ALTER TABLE plans ADD COLUMN last_modified_by TEXT DEFAULT 'agent'",
		Backfill: []string{
			"UPDATE plans SET last_modified_by = 'agent' WHERE last_modified_by IS NULL",
		},
	},
	{
		Table:  "plans",
		Column: "last_modified_at",
		AddSQL: "ALTER TABLE plans ADD COLUMN last_modified_at INTEGER",
		Backfill: []string{
			"UPDATE plans SET last_modified_at = created_at WHERE last_modified_at IS NULL",
		},
	},
	{
		Table:  "plans",
		Column: "needs_review",
		AddSQL: "ALTER TABLE plans ADD COLUMN needs_review INTEGER DEFAULT 0",
		Backfill: []string{
			"UPDATE plans SET needs_review = 0 WHERE needs_review IS NULL",
		},
	},
	{
		Table:  "plans",
		Column: "tags",
		AddSQL: "ALTER TABLE plans ADD COLUMN tags TEXT DEFAULT '[]'",
		Backfill: []string{
			"UPDATE plans SET tags = '[]' WHERE tags IS NULL",
		},
	},
	{
		Table:  "thoughts",
		Column: "tags",
		AddSQL: "ALTER TABLE thoughts ADD COLUMN tags TEXT DEFAULT '[]'",
		Backfill: []string{
			"UPDATE thoughts SET tags = '[]' WHERE tags IS NULL",
		},
	},
}

// EnsureSchema creates the base tables if absent and adds any missing
// later-version columns with their backfills. Running it twice is a
// no-op beyond the checks. Any failure here is fatal to startup.
func EnsureSchema(database *sql.DB) error {
	if _, err := database.Exec(baseSchemaSQL); err != nil {
		return fmt.Errorf("failed to create base tables: %w", err)
	}

	for _, table := range []string{"plans", "thoughts"} {
		existing, err := tableColumns(database, table)
		if err != nil {
			return fmt.Errorf("failed to inspect %s columns: %w", table, err)
		}

		for _, m := range columnMigrations {
			if m.Table != table || existing[m.Column] {
				continue
			}

			if _, err := database.Exec(m.AddSQL); err != nil {
				return fmt.Errorf("failed to add %s.%s: %w", m.Table, m.Column, err)
			}
			for _, stmt := range m.Backfill {
				if _, err := database.Exec(stmt); err != nil {
					return fmt.Errorf("failed to backfill %s.%s: %w", m.Table, m.Column, err)
				}
			}
		}
	}

	return nil
}

// tableColumns returns the set of column names for a table.
func tableColumns(database *sql.DB, table string) (map[string]bool, error) {
	rows, err := database.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := map[string]bool{}
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
