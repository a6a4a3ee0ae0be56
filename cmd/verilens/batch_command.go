package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"verilens"
	"verilens/internal/history"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var polling pollingFlags
	var concurrency int

	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Upload several media files for analysis",
		Long: `Batch uploads every file with bounded concurrency. With --wait it
also polls each upload to a terminal status; otherwise it prints the
request ids for later "verilens result" calls. Files that fail to
upload are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			opts := verilens.BatchOptions{
				MaxConcurrency: cfg.Batch.MaxConcurrency,
			}
			if concurrency > 0 {
				opts.MaxConcurrency = concurrency
			}
			if resolved := polling.resolve(cfg); resolved != nil {
				opts.MaxAttempts = resolved.MaxAttempts
				opts.PollingInterval = resolved.PollingInterval
			}

			results, err := client.ProcessBatch(cmd.Context(), args, opts)
			if err != nil {
				return err
			}

			batchID := uuid.NewString()
			for i, result := range results {
				// Sources line up with results only when nothing was
				// dropped; a partial batch loses the mapping.
				source := "unknown"
				if len(results) == len(args) {
					source = args[i]
				}
				recordSubmission(ctx, result.RequestID, "", source, history.SourceTypeFile, batchID)
				recordOutcome(ctx, result)
				cacheTerminal(ctx, result)
			}

			return printResults(cmd, ctx, results)
		},
	}

	polling.register(cmd, false)
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Maximum concurrent uploads (default from config)")

	return cmd
}
