package db

// SchemaSQL is the complete modern schema for fresh TPC installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All
// repository tests load it via GetSchemaSQL() so that test schemas
// cannot drift from production.
//
// Keep this in sync with the column migrations in migrations.go: a fresh
// install built from SchemaSQL and an old install upgraded by
// EnsureSchema must end up with the same column set.
const SchemaSQL = `
-- Plans (structured task/goal records with status, changelog, and tags)
CREATE TABLE IF NOT EXISTS plans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('proposed', 'in_progress', 'completed')) DEFAULT 'proposed',
	changelog TEXT NOT NULL DEFAULT '[]',
	timestamp TEXT NOT NULL,
	created_at INTEGER,
	last_modified_by TEXT DEFAULT 'agent',
	last_modified_at INTEGER,
	needs_review INTEGER DEFAULT 0,
	tags TEXT DEFAULT '[]'
);

-- Thoughts (free-form notes, optionally linked to a plan)
-- plan_id is a weak reference: no FK, dangling values are permitted.
CREATE TABLE IF NOT EXISTS thoughts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	content TEXT NOT NULL,
	plan_id INTEGER,
	tags TEXT DEFAULT '[]'
);
`

// GetSchemaSQL returns the authoritative schema SQL.
// Tests MUST use this instead of hardcoding CREATE TABLE statements.
func GetSchemaSQL() string {
	return SchemaSQL
}
