package main

import (
	"github.com/spf13/cobra"

	"verilens/internal/history"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var polling pollingFlags

	cmd := &cobra.Command{
		Use:   "detect <file>",
		Short: "Upload a media file and wait for its verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path := args[0]
			handle, err := client.Upload(cmd.Context(), path)
			if err != nil {
				return err
			}

			recordSubmission(ctx, handle.RequestID, handle.MediaID, path, history.SourceTypeFile, "")

			opts := polling.resolve(cfg)
			result, err := client.GetResult(cmd.Context(), handle.RequestID, opts)
			if err != nil {
				return err
			}

			recordOutcome(ctx, result)
			cacheTerminal(ctx, result)

			return printResult(cmd, ctx, result)
		},
	}

	// detect waits by default; --wait=false degrades it to upload+fetch.
	polling.register(cmd, true)

	return cmd
}
