package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"verilens"
)

func newResultsCommand(ctx *commandContext) *cobra.Command {
	var polling pollingFlags
	var page, size int
	var name, startDate, endDate string

	cmd := &cobra.Command{
		Use:   "results",
		Short: "List a page of past analysis results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			opts := &verilens.ResultListOptions{
				PageNumber: page,
				Size:       size,
				Name:       name,
				StartDate:  startDate,
				EndDate:    endDate,
			}
			if polling.wait {
				opts.MaxAttempts = cfg.Polling.MaxAttempts
				opts.PollingInterval = cfg.PollingInterval()
				if polling.attempts > 0 {
					opts.MaxAttempts = polling.attempts
				}
				if polling.intervalMS > 0 {
					opts.PollingInterval = time.Duration(polling.intervalMS) * time.Millisecond
				}
			}

			resultPage, err := client.GetResults(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if ctx.useJSON() {
				return writeJSON(cmd, resultPage)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Page %d of %d (%d items total)\n",
				resultPage.CurrentPage+1, resultPage.TotalPages, resultPage.TotalItems)
			return printResults(cmd, ctx, resultPage.Items)
		},
	}

	polling.register(cmd, false)
	cmd.Flags().IntVar(&page, "page", 0, "Zero-based page number")
	cmd.Flags().IntVar(&size, "size", 0, "Page size (server default when zero)")
	cmd.Flags().StringVar(&name, "name", "", "Filter by media name")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Only results on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "Only results on or before this date (YYYY-MM-DD)")

	return cmd
}
