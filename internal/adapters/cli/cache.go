package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/devbush/likewrapped/internal/adapters/cli/tui"
)

var clearAllFlag bool

// NewCacheCmd creates the cache subcommand
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached rankings",
		RunE:  runCacheStatus,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cache entries",
		RunE:  runCacheClear,
	}
	clearCmd.Flags().BoolVar(&clearAllFlag, "all", false, "Clear all cache entries")

	forgetCmd := &cobra.Command{
		Use:   "forget <account>",
		Short: "Drop the cached ranking for one query",
		Long: `Drop the cached ranking matching an account and the --since, --until,
--top and --identity flags.`,
		Args: cobra.ExactArgs(1),
		RunE: runCacheForget,
	}

	cmd.AddCommand(clearCmd, forgetCmd)

	return cmd
}

func runCacheStatus(cmd *cobra.Command, args []string) error {
	app, err := NewApp(appOptions())
	if err != nil {
		return err
	}
	defer app.Close()

	return printCacheStats(cmd.Context(), cmd.OutOrStdout(), app)
}

func printCacheStats(ctx context.Context, w io.Writer, app *App) error {
	stats, err := app.CacheSvc.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cache Statistics:")
	fmt.Fprintf(w, "  Backend: %s\n", stats.Backend)
	fmt.Fprintf(w, "  Items:   %d\n", stats.ItemCount)
	fmt.Fprintf(w, "  Size:    %s\n", tui.FormatSize(stats.TotalSize))
	fmt.Fprintf(w, "  TTL:     %s\n", stats.TTL)
	fmt.Fprintln(w)

	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	app, err := NewApp(appOptions())
	if err != nil {
		return err
	}
	defer app.Close()

	return cleanCache(cmd.Context(), cmd.OutOrStdout(), app, clearAllFlag)
}

func cleanCache(ctx context.Context, w io.Writer, app *App, all bool) error {
	if all {
		if err := app.CacheSvc.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(w, "All cache entries cleared")
		return nil
	}

	cleaned, err := app.CacheSvc.CleanExpired(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Removed %d expired entries\n", cleaned)
	return nil
}

func runCacheForget(cmd *cobra.Command, args []string) error {
	app, err := NewApp(appOptions())
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.CacheSvc.Forget(cmd.Context(), buildRequest(cmd, app.Config, args[0])); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Forgot cached ranking for @%s\n", args[0])
	return nil
}
