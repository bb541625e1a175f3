package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// legacyPlan mirrors the flat-file plan snapshot written by pre-database
// versions of the server. Absent fields get defaults on import.
type legacyPlan struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Timestamp   string            `json:"timestamp"`
	Changelog   []legacyChangelog `json:"changelog"`
	Tags        []string          `json:"tags"`
}

type legacyChangelog struct {
	Timestamp string `json:"timestamp"`
	Change    string `json:"change"`
}

type legacyThought struct {
	Timestamp string   `json:"timestamp"`
	Content   string   `json:"content"`
	PlanID    *int64   `json:"plan_id"`
	Tags      []string `json:"tags"`
}

// ImportLegacySnapshots performs the one-time import of flat-file JSON
// snapshots. It only runs when both tables are empty; on subsequent
// startups it is a no-op. Callers log a returned error and continue —
// a failed import never aborts startup.
func ImportLegacySnapshots(database *sql.DB, plansPath, thoughtsPath string) error {
	empty, err := tablesEmpty(database)
	if err != nil {
		return fmt.Errorf("failed to check for existing rows: %w", err)
	}
	if !empty {
		return nil
	}

	if err := importLegacyPlans(database, plansPath); err != nil {
		return err
	}
	return importLegacyThoughts(database, thoughtsPath)
}

func tablesEmpty(database *sql.DB) (bool, error) {
	var planCount, thoughtCount int
	if err := database.QueryRow("SELECT COUNT(*) FROM plans").Scan(&planCount); err != nil {
		return false, err
	}
	if err := database.QueryRow("SELECT COUNT(*) FROM thoughts").Scan(&thoughtCount); err != nil {
		return false, err
	}
	return planCount == 0 && thoughtCount == 0, nil
}

func importLegacyPlans(database *sql.DB, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read legacy plans: %w", err)
	}

	var plans []legacyPlan
	if err := json.Unmarshal(data, &plans); err != nil {
		return fmt.Errorf("failed to parse legacy plans: %w", err)
	}

	for _, p := range plans {
		status := p.Status
		switch status {
		case "proposed", "in_progress", "completed":
		default:
			status = "proposed"
		}

		ts := p.Timestamp
		if ts == "" {
			ts = time.Now().UTC().Format(time.RFC3339)
		}
		createdAt := epochMillis(ts)

		changelog := p.Changelog
		if changelog == nil {
			changelog = []legacyChangelog{}
		}
		changelogJSON, err := json.Marshal(changelog)
		if err != nil {
			return fmt.Errorf("failed to encode legacy changelog: %w", err)
		}

		tagsJSON, err := json.Marshal(normalizeLegacyTags(p.Tags))
		if err != nil {
			return fmt.Errorf("failed to encode legacy tags: %w", err)
		}

		_, err = database.Exec(
			`INSERT INTO plans (title, description, status, changelog, timestamp, created_at, last_modified_by, last_modified_at, needs_review, tags)
			VALUES (?, ?, ?, ?, ?, ?, 'agent', ?, 0, ?)`,
			p.Title, p.Description, status, string(changelogJSON), ts, createdAt, createdAt, string(tagsJSON),
		)
		if err != nil {
			return fmt.Errorf("failed to insert legacy plan: %w", err)
		}
	}

	return nil
}

func importLegacyThoughts(database *sql.DB, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read legacy thoughts: %w", err)
	}

	var thoughts []legacyThought
	if err := json.Unmarshal(data, &thoughts); err != nil {
		return fmt.Errorf("failed to parse legacy thoughts: %w", err)
	}

	for _, t := range thoughts {
		ts := t.Timestamp
		if ts == "" {
			ts = time.Now().UTC().Format(time.RFC3339)
		}

		var planID sql.NullInt64
		if t.PlanID != nil {
			planID = sql.NullInt64{Int64: *t.PlanID, Valid: true}
		}

		tagsJSON, err := json.Marshal(normalizeLegacyTags(t.Tags))
		if err != nil {
			return fmt.Errorf("failed to encode legacy tags: %w", err)
		}

		_, err = database.Exec(
			"INSERT INTO thoughts (timestamp, content, plan_id, tags) VALUES (?, ?, ?, ?)",
			ts, t.Content, planID, string(tagsJSON),
		)
		if err != nil {
			return fmt.Errorf("failed to insert legacy thought: %w", err)
		}
	}

	return nil
}

// normalizeLegacyTags lowercases and deduplicates, preserving order.
// Snapshots predate tag validation, so oversize sets are kept as-is.
func normalizeLegacyTags(tags []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// epochMillis parses an ISO timestamp to epoch milliseconds,
// falling back to now when the value is unparseable.
func epochMillis(ts string) int64 {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Now().UnixMilli()
	}
	return parsed.UnixMilli()
}
