package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devbush/likewrapped/internal/adapters/cli/tui"
	"github.com/devbush/likewrapped/internal/application"
	"github.com/devbush/likewrapped/internal/config"
	"github.com/devbush/likewrapped/internal/domain"
)

var (
	// Global flags
	configFlag       string
	sinceFlag        string
	untilFlag        string
	topFlag          int
	identityFlag     string
	formatFlag       string
	cacheTTLFlag     string
	cacheBackendFlag string
	noCacheFlag      bool
	quietFlag        bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "likewrapped [account]",
		Short: "Rank the authors an account liked most",
		Long: `likewrapped pages through a Twitter account's likes and ranks the
authors of the liked posts by how often they were liked.

Provide a handle or profile URL to rank it, or run without arguments
for an interactive page.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default ~/.likewrapped/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&sinceFlag, "since", "", "Oldest like to count, ISO-8601 date or timestamp (default from config)")
	rootCmd.PersistentFlags().StringVar(&untilFlag, "until", "", "Newest like to count, inclusive; a bare date means 00:00 UTC of that day (default: now)")
	rootCmd.PersistentFlags().IntVar(&topFlag, "top", 0, "Number of authors to show, -1 for all (default from config)")
	rootCmd.PersistentFlags().StringVar(&identityFlag, "identity", "", "Author identity: handle, handle+avatar (default from config)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "Output format: text, json (default from config)")
	rootCmd.PersistentFlags().StringVar(&cacheTTLFlag, "cache-ttl", "", "Cache lifetime (e.g., 12h, 7d)")
	rootCmd.PersistentFlags().StringVar(&cacheBackendFlag, "cache-backend", "", "Cache backend: file, memory, redis")
	rootCmd.PersistentFlags().BoolVar(&noCacheFlag, "no-cache", false, "Skip cache")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Only log warnings and errors")

	// Add subcommands
	rootCmd.AddCommand(NewCacheCmd())
	rootCmd.AddCommand(NewBatchCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

func appOptions() AppOptions {
	return AppOptions{
		ConfigPath:   configFlag,
		CacheBackend: cacheBackendFlag,
		CacheTTL:     cacheTTLFlag,
		Quiet:        quietFlag,
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	app, err := NewApp(appOptions())
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer app.Close()

	if len(args) == 0 {
		// No arguments - show interactive menu
		return runInteractiveMenu(cmd, app)
	}

	return runWrapped(cmd, app, args[0])
}

// buildRequest merges flags over configured defaults
func buildRequest(cmd *cobra.Command, cfg *config.Config, account string) application.WrappedRequest {
	req := application.WrappedRequest{
		Account:  account,
		Since:    cfg.Defaults.Since,
		Until:    untilFlag,
		TopN:     cfg.Defaults.Top,
		Identity: domain.AuthorIdentity(cfg.Defaults.Identity),
		NoCache:  noCacheFlag,
	}
	if sinceFlag != "" {
		req.Since = sinceFlag
	}
	if cmd.Flags().Changed("top") {
		req.TopN = topFlag
	}
	if identityFlag != "" {
		req.Identity = domain.AuthorIdentity(identityFlag)
	}
	return req
}

func outputFormat(cfg *config.Config) string {
	if formatFlag != "" {
		return formatFlag
	}
	if cfg.Defaults.Format != "" {
		return cfg.Defaults.Format
	}
	return "text"
}

func runWrapped(cmd *cobra.Command, app *App, account string) error {
	if err := app.RequireCredentials(); err != nil {
		return err
	}

	format := outputFormat(app.Config)
	if format != "text" && format != "json" {
		return fmt.Errorf("%w: unknown format %q (use text or json)", domain.ErrInvalidInput, format)
	}

	req := buildRequest(cmd, app.Config, account)
	result, err := app.WrappedSvc.TopAuthors(cmd.Context(), req)
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), result, format)
}

func runInteractiveMenu(cmd *cobra.Command, app *App) error {
	options := tui.MainMenuOptions(app.RequireCredentials() == nil, app.CacheSvc.Backend())

	selected, err := tui.RunMenu("What would you like to do?", options)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	switch selected {
	case tui.ActionWrapped:
		return tui.RunWrapped(ctx, func(ctx context.Context, account string) (*application.WrappedResult, error) {
			return app.WrappedSvc.TopAuthors(ctx, buildRequest(cmd, app.Config, account))
		})
	case tui.ActionCacheStats:
		return printCacheStats(ctx, cmd.OutOrStdout(), app)
	case tui.ActionCacheClean:
		return cleanCache(ctx, cmd.OutOrStdout(), app, false)
	case tui.ActionNone:
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
	}

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", tui.ErrorMessage(err))
		os.Exit(1)
	}
}
