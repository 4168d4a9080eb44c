package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stagehand/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var sessionID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent backend lifecycle events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := journal.Open(cfg.JournalPath())
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			var events []journal.Event
			if sessionID != "" {
				events, err = store.Session(cmd.Context(), sessionID)
			} else {
				events, err = store.Recent(cmd.Context(), limit)
			}
			if err != nil {
				return fmt.Errorf("read journal: %w", err)
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events recorded")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderEventTable(events))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of events to show")
	cmd.Flags().StringVar(&sessionID, "session", "", "Show all events for one session")
	return cmd
}
