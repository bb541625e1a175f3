package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/tpc/internal/config"
	"github.com/example/tpc/internal/db"
)

// MigrateCmd returns the migrate command
func MigrateCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run schema migrations standalone",
		Long: `Open the database, create missing tables, add any missing
columns with their backfills, and import legacy JSON snapshots when
both tables are empty. Safe to run repeatedly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configDir)
			if err != nil {
				return err
			}

			database, err := db.Open(cfg.DBPath())
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.ImportLegacySnapshots(database, cfg.LegacyPlansPath(), cfg.LegacyThoughtsPath()); err != nil {
				color.Yellow("⚠ legacy snapshot import failed: %v", err)
			}

			color.Green("✓ schema up to date (%s)", cfg.DBPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&configDir, "config-dir", ".", "directory containing tpc.yaml")

	return cmd
}
