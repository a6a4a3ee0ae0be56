package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"verilens"
	"verilens/detection"
	"verilens/internal/config"
	"verilens/internal/history"
	"verilens/internal/logging"
)

// pollingFlags are the shared waiting knobs carried by every command that
// can block on an analysis.
type pollingFlags struct {
	wait       bool
	attempts   int
	intervalMS int
}

func (p *pollingFlags) register(cmd *cobra.Command, waitDefault bool) {
	cmd.Flags().BoolVarP(&p.wait, "wait", "w", waitDefault, "Poll until the analysis reaches a terminal status")
	cmd.Flags().IntVar(&p.attempts, "attempts", 0, "Maximum polling attempts (default from config)")
	cmd.Flags().IntVar(&p.intervalMS, "interval", 0, "Polling interval in milliseconds (default from config)")
}

// resolve merges flag overrides with the configured defaults. Returns nil
// when waiting is off, which the SDK treats as a single fetch.
func (p *pollingFlags) resolve(cfg *config.Config) *verilens.ResultOptions {
	if !p.wait {
		return nil
	}
	opts := &verilens.ResultOptions{
		MaxAttempts:     cfg.Polling.MaxAttempts,
		PollingInterval: cfg.PollingInterval(),
	}
	if p.attempts > 0 {
		opts.MaxAttempts = p.attempts
	}
	if p.intervalMS > 0 {
		opts.PollingInterval = time.Duration(p.intervalMS) * time.Millisecond
	}
	return opts
}

// recordSubmission notes an accepted upload in the history store. History
// failures never fail the command; they are logged and ignored.
func recordSubmission(ctx *commandContext, requestID, mediaID, source, sourceType, batchID string) {
	err := ctx.withHistory(func(store *history.Store) error {
		_, err := store.Record(context.Background(), history.Submission{
			RequestID:  requestID,
			MediaID:    mediaID,
			Source:     source,
			SourceType: sourceType,
			BatchID:    batchID,
			Status:     detection.StatusProcessing,
		})
		return err
	})
	if err != nil {
		ctx.ensureLogger().Warn("failed to record submission",
			logging.Error(err),
			logging.String("request_id", requestID))
	}
}

// recordOutcome updates history with the latest status and score.
func recordOutcome(ctx *commandContext, result verilens.Result) {
	err := ctx.withHistory(func(store *history.Store) error {
		return store.UpdateOutcome(context.Background(), result.RequestID, result.Status, result.Score)
	})
	if err != nil {
		ctx.ensureLogger().Warn("failed to record outcome",
			logging.Error(err),
			logging.String("request_id", result.RequestID))
	}
}

// cacheTerminal stores a terminal result in the local cache, if enabled.
func cacheTerminal(ctx *commandContext, result verilens.Result) {
	cache := ctx.resultCache()
	if cache == nil {
		return
	}
	if detection.InProgress(result.Status) || result.Status == detection.StatusProcessing {
		return
	}
	if err := cache.Store(result); err != nil {
		ctx.ensureLogger().Warn("failed to cache result",
			logging.Error(err),
			logging.String("request_id", result.RequestID))
	}
}

func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *score)
}

func resultRow(result verilens.Result) []string {
	return []string{result.RequestID, result.Status, formatScore(result.Score), fmt.Sprintf("%d", len(result.Models))}
}

func printResult(cmd *cobra.Command, ctx *commandContext, result verilens.Result) error {
	if ctx.useJSON() {
		return writeJSON(cmd, result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Request ID: %s\n", result.RequestID)
	fmt.Fprintf(out, "Status:     %s\n", result.Status)
	fmt.Fprintf(out, "Score:      %s\n", formatScore(result.Score))

	if len(result.Models) > 0 {
		rows := make([][]string, 0, len(result.Models))
		for _, model := range result.Models {
			rows = append(rows, []string{model.Name, model.Status, formatScore(model.Score)})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Model", "Status", "Score"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight},
		))
	}
	return nil
}

func printResults(cmd *cobra.Command, ctx *commandContext, results []verilens.Result) error {
	if ctx.useJSON() {
		return writeJSON(cmd, results)
	}

	rows := make([][]string, 0, len(results))
	for _, result := range results {
		rows = append(rows, resultRow(result))
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Request ID", "Status", "Score", "Models"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	))
	return nil
}
