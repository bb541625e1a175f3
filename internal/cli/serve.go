// Package cli contains the cobra subcommands.
package cli

import (
	"log"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/tpc/internal/adapters/web"
	"github.com/example/tpc/internal/config"
	"github.com/example/tpc/internal/db"
	"github.com/example/tpc/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var configDir string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the TPC HTTP server",
		Long: `Start the knowledge-tracking server.

Opens (creating if needed) the SQLite database, runs schema
migrations, performs the one-time legacy JSON import when the
database is empty, and serves the REST API plus the static UI.

Examples:
  tpc serve
  tpc serve --addr :9000
  tpc serve --config-dir /var/lib/tpc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configDir)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			database, err := db.Open(cfg.DBPath())
			if err != nil {
				return err
			}
			defer database.Close()

			// Import failures never abort startup.
			if err := db.ImportLegacySnapshots(database, cfg.LegacyPlansPath(), cfg.LegacyThoughtsPath()); err != nil {
				log.Printf("WARNING: legacy snapshot import failed: %v", err)
			}

			services := wire.Build(database)
			server := web.NewServer(services.Plans, services.Thoughts, services.Search, services.Context, web.Options{
				DBPath:    cfg.DBPath(),
				StaticDir: cfg.StaticDir,
				DevMode:   cfg.DevMode,
			})

			color.Green("✓ tpc serving on %s (db: %s)", cfg.ListenAddr, cfg.DBPath())
			return server.Run(cfg.ListenAddr)
		},
	}

	cmd.Flags().StringVar(&configDir, "config-dir", ".", "directory containing tpc.yaml")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address override")

	return cmd
}
