// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the SINGLE POINT where the database schema is loaded for
// tests. All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema, preventing drift between test and production.
package sqlite_test

import (
	"database/sql"
	"encoding/json"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/tpc/internal/db"
	"github.com/example/tpc/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedPlan inserts a plan row directly and returns its id.
func seedPlan(t *testing.T, testDB *sql.DB, title, status, timestamp string, createdAt int64, tags []string) int64 {
	t.Helper()

	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		t.Fatalf("failed to marshal tags: %v", err)
	}

	res, err := testDB.Exec(
		`INSERT INTO plans (title, description, status, changelog, timestamp, created_at, last_modified_by, last_modified_at, needs_review, tags)
		VALUES (?, ?, ?, '[]', ?, ?, 'agent', ?, 0, ?)`,
		title, "description of "+title, status, timestamp, createdAt, createdAt, string(tagsJSON),
	)
	if err != nil {
		t.Fatalf("failed to seed plan: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read seeded plan id: %v", err)
	}
	return id
}

// seedThought inserts a thought row directly and returns its id.
func seedThought(t *testing.T, testDB *sql.DB, content, timestamp string, planID *int64, tags []string) int64 {
	t.Helper()

	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		t.Fatalf("failed to marshal tags: %v", err)
	}

	var planIDVal sql.NullInt64
	if planID != nil {
		planIDVal = sql.NullInt64{Int64: *planID, Valid: true}
	}

	res, err := testDB.Exec(
		"INSERT INTO thoughts (timestamp, content, plan_id, tags) VALUES (?, ?, ?, ?)",
		timestamp, content, planIDVal, string(tagsJSON),
	)
	if err != nil {
		t.Fatalf("failed to seed thought: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read seeded thought id: %v", err)
	}
	return id
}

func int64Ptr(v int64) *int64 { return &v }

func anyTags(tags ...string) *secondary.TagFilter {
	return &secondary.TagFilter{Mode: secondary.TagModeAny, Tags: tags}
}

func allTags(tags ...string) *secondary.TagFilter {
	return &secondary.TagFilter{Mode: secondary.TagModeAll, Tags: tags}
}
