package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"venueadmin/internal/config"
	"venueadmin/internal/logging"
)

// cliState is filled by the root command before any subcommand runs.
type cliState struct {
	cfg     config.Config
	cleanup func()
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newRootCmd builds the command tree. Running it without a subcommand serves
// HTTP.
func newRootCmd(ver string) *cobra.Command {
	st := &cliState{}
	var dbPath string
	var debug bool

	cmd := &cobra.Command{
		Use:           "venueadmin",
		Short:         "Sports venue administration",
		Long:          "venueadmin serves the venue admin web app and exposes its list pages on the terminal.",
		Version:       ver,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			level := cfg.SlogLevel()
			if debug {
				level = slog.LevelDebug
			}
			logger, cleanup := logging.Setup(logging.Options{Level: level, SeqURL: cfg.SeqURL, Output: cmd.ErrOrStderr()})
			slog.SetDefault(logger)
			st.cfg, st.cleanup = cfg, cleanup
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if st.cleanup != nil {
				st.cleanup()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), st.cfg, false)
		},
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides VENUEADMIN_DB_PATH)")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.AddCommand(newServeCmd(st), newSeedCmd(st), newListCmd(st), newSettingsCmd(st))
	return cmd
}
