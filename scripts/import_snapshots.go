//go:build ignore

// One-off importer for legacy flat-file snapshots. Unlike the
// automatic import at server startup, this runs against a non-empty
// database and supports previewing what would be inserted.
//
// Usage:
//   go run scripts/import_snapshots.go -db tpc.db -plans plans.json -thoughts thoughts.json [-dry-run]
package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type snapshotPlan struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Changelog   []struct {
		Timestamp string `json:"timestamp"`
		Change    string `json:"change"`
	} `json:"changelog"`
	Tags []string `json:"tags"`
}

type snapshotThought struct {
	Timestamp string   `json:"timestamp"`
	Content   string   `json:"content"`
	PlanID    *int64   `json:"plan_id"`
	Tags      []string `json:"tags"`
}

func main() {
	dbPath := flag.String("db", "tpc.db", "path to the TPC database")
	plansPath := flag.String("plans", "plans.json", "legacy plans snapshot")
	thoughtsPath := flag.String("thoughts", "thoughts.json", "legacy thoughts snapshot")
	dryRun := flag.Bool("dry-run", false, "preview without inserting")
	flag.Parse()

	database, err := sql.Open("sqlite3", *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	planCount, err := importPlans(database, *plansPath, *dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing plans: %v\n", err)
		os.Exit(1)
	}

	thoughtCount, err := importThoughts(database, *thoughtsPath, *dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing thoughts: %v\n", err)
		os.Exit(1)
	}

	verb := "Imported"
	if *dryRun {
		verb = "Would import"
	}
	fmt.Printf("%s %d plans and %d thoughts\n", verb, planCount, thoughtCount)
}

func importPlans(database *sql.DB, path string, dryRun bool) (int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var plans []snapshotPlan
	if err := json.Unmarshal(data, &plans); err != nil {
		return 0, err
	}

	count := 0
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

		changelogJSON, err := json.Marshal(p.Changelog)
		if err != nil {
			return count, err
		}
		if p.Changelog == nil {
			changelogJSON = []byte("[]")
		}
		tagsJSON, err := json.Marshal(normalizeTags(p.Tags))
		if err != nil {
			return count, err
		}

		if dryRun {
			fmt.Printf("plan: %q (%s, %d tags)\n", p.Title, status, len(p.Tags))
			count++
			continue
		}

		_, err = database.Exec(
			`INSERT INTO plans (title, description, status, changelog, timestamp, created_at, last_modified_by, last_modified_at, needs_review, tags)
			VALUES (?, ?, ?, ?, ?, ?, 'agent', ?, 0, ?)`,
			p.Title, p.Description, status, string(changelogJSON), ts, createdAt, createdAt, string(tagsJSON),
		)
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func importThoughts(database *sql.DB, path string, dryRun bool) (int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var thoughts []snapshotThought
	if err := json.Unmarshal(data, &thoughts); err != nil {
		return 0, err
	}

	count := 0
	for _, t := range thoughts {
		ts := t.Timestamp
		if ts == "" {
			ts = time.Now().UTC().Format(time.RFC3339)
		}

		var planID sql.NullInt64
		if t.PlanID != nil {
			planID = sql.NullInt64{Int64: *t.PlanID, Valid: true}
		}

		tagsJSON, err := json.Marshal(normalizeTags(t.Tags))
		if err != nil {
			return count, err
		}

		if dryRun {
			preview := t.Content
			if len(preview) > 40 {
				preview = preview[:40] + "..."
			}
			fmt.Printf("thought: %q\n", preview)
			count++
			continue
		}

		_, err = database.Exec(
			"INSERT INTO thoughts (timestamp, content, plan_id, tags) VALUES (?, ?, ?, ?)",
			ts, t.Content, planID, string(tagsJSON),
		)
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func normalizeTags(tags []string) []string {
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

func epochMillis(ts string) int64 {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Now().UnixMilli()
	}
	return parsed.UnixMilli()
}
