package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stagehand/internal/config"
	"stagehand/internal/ipc"
	"stagehand/internal/journal"
	"stagehand/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show supervisor and backend status",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			colorize := shouldColorize(cmd.OutOrStdout())

			err := ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return fmt.Errorf("query status: %w", err)
				}
				printRunningStatus(cmd, resp, colorize)
				return nil
			})
			if err == nil {
				return nil
			}

			// No reachable instance; report that, the last journal
			// event, and whether a fresh launch would pass its
			// environment checks.
			fmt.Fprintln(out, renderStatusLine("Stagehand", statusError, "Not running", colorize))
			cfg, cfgErr := ctx.ensureConfig()
			if cfgErr != nil {
				return cfgErr
			}
			if last := lastJournalEvent(cmd, cfg); last != "" {
				fmt.Fprintln(out, renderStatusLine("Last event", statusInfo, last, colorize))
			}
			for _, result := range preflight.RunAll(cfg, projectRoot()) {
				kind := statusError
				if result.Passed {
					kind = statusOK
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			return nil
		},
	}
}

func lastJournalEvent(cmd *cobra.Command, cfg *config.Config) string {
	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		return ""
	}
	defer store.Close()
	events, err := store.Recent(cmd.Context(), 1)
	if err != nil || len(events) == 0 {
		return ""
	}
	event := events[0]
	detail := string(event.Type)
	if event.Detail != "" {
		detail = fmt.Sprintf("%s (%s)", detail, event.Detail)
	}
	return fmt.Sprintf("%s at %s", detail, event.CreatedAt.Local().Format("2006-01-02 15:04:05"))
}

func printRunningStatus(cmd *cobra.Command, resp *ipc.StatusResponse, colorize bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderStatusLine("Stagehand", statusOK, fmt.Sprintf("Running (pid %d)", resp.PID), colorize))
	fmt.Fprintln(out, renderStatusLine("State", stateKind(resp.State), humanizeState(resp.State), colorize))

	readiness := humanizeState(resp.Readiness)
	if resp.Reason != "" {
		readiness = fmt.Sprintf("%s (%s)", readiness, resp.Reason)
	}
	fmt.Fprintln(out, renderStatusLine("Readiness", stateKind(resp.Readiness), readiness, colorize))

	backend := "not running"
	kind := statusWarn
	if resp.BackendPID > 0 {
		backend = "pid " + strconv.Itoa(resp.BackendPID)
		kind = statusOK
	}
	fmt.Fprintln(out, renderStatusLine("Backend", kind, backend, colorize))
	fmt.Fprintln(out, renderStatusLine("Backend URL", statusInfo, resp.BackendURL, colorize))
	fmt.Fprintln(out, renderStatusLine("Session", statusInfo, resp.SessionID, colorize))
}
