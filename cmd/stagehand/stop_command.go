package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stagehand/internal/ipc"
)

func newStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running instance and its backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Shutdown()
				if err != nil {
					return fmt.Errorf("request shutdown: %w", err)
				}
				if !resp.Stopping {
					return fmt.Errorf("instance declined to stop")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Shutdown requested")
				return nil
			})
		},
	}
}
