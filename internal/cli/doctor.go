package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/tpc/internal/config"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// requiredColumns lists what each table must carry after migration.
var requiredColumns = map[string][]string{
	"plans": {"id", "title", "description", "status", "changelog", "timestamp",
		"created_at", "last_modified_by", "last_modified_at", "needs_review", "tags"},
	"thoughts": {"id", "timestamp", "content", "plan_id", "tags"},
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var configDir string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the TPC database and configuration",
		Long: `Health check for a TPC installation.

Validates:
- Config file parses (or defaults apply)
- Database file exists and opens
- Both tables exist with all migrated columns
- Legacy snapshot files, if configured, are readable

Examples:
  tpc doctor          # Run full health check
  tpc doctor --quiet  # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configDir)
			if err != nil {
				return err
			}

			results := []CheckResult{
				checkDatabaseFile(cfg),
				checkSchema(cfg),
				checkSnapshots(cfg),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check           Status")
				fmt.Println("──────────────────────")
				for _, r := range results {
					fmt.Printf("%-15s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						color.Yellow("%s: %s", r.Name, r.Details)
					}
				}
			}

			if hasErrors {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configDir, "config-dir", ".", "directory containing tpc.yaml")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress output, exit code only")

	return cmd
}

func checkDatabaseFile(cfg *config.Config) CheckResult {
	if _, err := os.Stat(cfg.DBPath()); err != nil {
		return CheckResult{Name: "database", Status: "⚠", Details: "no database file yet; run 'tpc migrate' or 'tpc serve'"}
	}
	return CheckResult{Name: "database", Status: "✓"}
}

func checkSchema(cfg *config.Config) CheckResult {
	database, err := sql.Open("sqlite3", cfg.DBPath())
	if err != nil {
		return CheckResult{Name: "schema", Status: "✗", Details: err.Error()}
	}
	defer database.Close()

	for table, columns := range requiredColumns {
		existing := map[string]bool{}
		rows, err := database.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
		if err != nil {
			return CheckResult{Name: "schema", Status: "✗", Details: err.Error()}
		}
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
				rows.Close()
				return CheckResult{Name: "schema", Status: "✗", Details: err.Error()}
			}
			existing[name] = true
		}
		rows.Close()

		if len(existing) == 0 {
			return CheckResult{Name: "schema", Status: "⚠", Details: fmt.Sprintf("table %s missing; run 'tpc migrate'", table)}
		}
		for _, col := range columns {
			if !existing[col] {
				return CheckResult{Name: "schema", Status: "✗", Details: fmt.Sprintf("table %s missing column %s", table, col)}
			}
		}
	}

	return CheckResult{Name: "schema", Status: "✓"}
}

func checkSnapshots(cfg *config.Config) CheckResult {
	for _, path := range []string{cfg.LegacyPlansPath(), cfg.LegacyThoughtsPath()} {
		if _, err := os.Stat(path); err == nil {
			return CheckResult{Name: "snapshots", Status: "✓", Details: "legacy snapshots present; imported when db is empty"}
		}
	}
	return CheckResult{Name: "snapshots", Status: "✓"}
}
