package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/devbush/likewrapped/internal/adapters/cli/tui"
	"github.com/devbush/likewrapped/internal/application"
)

const maxBatchConcurrency = 16

var (
	batchFileFlag    string
	batchConcurrency int
)

// NewBatchCmd creates the batch command
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [accounts...]",
		Short: "Rank several accounts",
		Long: `Rank the liked authors of several accounts.

Provide handles or profile URLs as arguments and/or via a file with --file.
Rankings are printed in input order; failures are summarized at the end.

Example:
  likewrapped batch alice bob
  likewrapped batch --file accounts.txt
  likewrapped batch alice --file more.txt --concurrency 2`,
		RunE: runBatch,
	}

	cmd.Flags().StringVarP(&batchFileFlag, "file", "f", "", "File with handles/URLs (one per line)")
	cmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 2, fmt.Sprintf("Max concurrent accounts (max %d)", maxBatchConcurrency))

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	handles, err := CollectInputs(args, batchFileFlag)
	if err != nil {
		return fmt.Errorf("failed to collect inputs: %w", err)
	}
	if len(handles) == 0 {
		return fmt.Errorf("no valid handles or profile URLs provided")
	}

	app, err := NewApp(appOptions())
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer app.Close()

	if err := app.RequireCredentials(); err != nil {
		return err
	}

	format := outputFormat(app.Config)
	rank := func(ctx context.Context, handle string) (*application.WrappedResult, error) {
		return app.WrappedSvc.TopAuthors(ctx, buildRequest(cmd, app.Config, handle))
	}

	summary := processBatch(cmd.Context(), handles, batchConcurrency, rank)
	return reportBatch(cmd.OutOrStdout(), cmd.ErrOrStderr(), summary, format)
}

// processBatch ranks every handle with at most concurrency in flight.
// Individual failures are recorded, never aborting the batch.
func processBatch(ctx context.Context, handles []string, concurrency int, rank tui.FetchFunc) *BatchSummary {
	concurrency = max(1, min(concurrency, maxBatchConcurrency))

	results := make([]BatchResult, len(handles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, handle := range handles {
		g.Go(func() error {
			start := time.Now()
			result, err := rank(ctx, handle)

			r := BatchResult{
				Handle:   handle,
				Success:  err == nil,
				Duration: time.Since(start),
				Result:   result,
			}
			if err != nil {
				r.Error = tui.ErrorMessage(err)
			} else if result != nil {
				r.Cached = result.FromCache
			}
			results[i] = r
			return nil
		})
	}
	_ = g.Wait()

	summary := &BatchSummary{Total: len(handles), Results: results}
	for _, r := range results {
		if r.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	return summary
}

func reportBatch(out, errOut io.Writer, summary *BatchSummary, format string) error {
	for _, r := range summary.Results {
		if !r.Success || r.Result == nil {
			continue
		}
		if err := writeResult(out, r.Result, format); err != nil {
			return err
		}
		if format == "text" {
			fmt.Fprintln(out)
		}
	}

	fmt.Fprintf(errOut, "Ranked %d of %d accounts\n", summary.Succeeded, summary.Total)
	for _, r := range summary.FailedResults() {
		fmt.Fprintf(errOut, "  @%s: %s\n", r.Handle, r.Error)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d accounts failed", summary.Failed, summary.Total)
	}
	return nil
}
