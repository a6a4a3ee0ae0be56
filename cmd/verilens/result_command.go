package main

import (
	"github.com/spf13/cobra"
)

func newResultCommand(ctx *commandContext) *cobra.Command {
	var polling pollingFlags
	var refresh bool

	cmd := &cobra.Command{
		Use:   "result <request-id>",
		Short: "Fetch the analysis result for a request id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID := args[0]

			if !refresh {
				if cache := ctx.resultCache(); cache != nil {
					if cached, found := cache.Lookup(requestID); found {
						return printResult(cmd, ctx, cached)
					}
				}
			}

			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			result, err := client.GetResult(cmd.Context(), requestID, polling.resolve(cfg))
			if err != nil {
				return err
			}

			recordOutcome(ctx, result)
			cacheTerminal(ctx, result)

			return printResult(cmd, ctx, result)
		},
	}

	polling.register(cmd, false)
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the local result cache")

	return cmd
}
