package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/tpc/internal/cli"
	"github.com/example/tpc/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "tpc",
		Short:   "TPC - thoughts, plans, and changelog server",
		Version: version.String(),
		Long: `TPC is a personal knowledge-tracking server. It records free-form
thoughts and structured plans (status, changelog, tags), links thoughts
to plans, and exposes everything over a REST API plus a browser UI.`,
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
