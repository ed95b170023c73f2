package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tudu/internal/storage"
	"tudu/internal/todo"
	"tudu/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dbPath    string
		transient bool
	)

	cmd := &cobra.Command{
		Use:           "tudu",
		Short:         "A terminal todo list",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var kv storage.KV
			if transient {
				kv = storage.NewMemory()
			} else {
				db, err := storage.Open(dbPath)
				if err != nil {
					return fmt.Errorf("initializing storage: %w", err)
				}
				kv = db
			}
			defer kv.Close()

			// Composition root: storage, store, controller, and UI are
			// constructed once and wired explicitly.
			store := todo.NewStore(kv)
			ctrl := todo.NewController(store)
			app := ui.NewApp(kv, ctrl)

			p := tea.NewProgram(app, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running application: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "database file path (default: XDG data directory)")
	cmd.Flags().BoolVar(&transient, "transient", false, "keep tasks in memory only; nothing is persisted")

	return cmd
}
