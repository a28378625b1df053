package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/devbush/likewrapped/internal/adapters/httpapi"
)

const shutdownTimeout = 10 * time.Second

var addrFlag string

// NewServeCmd creates the serve subcommand
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rankings over HTTP",
		Long: `Serve rankings at GET /api/v1/wrapped/{account}.

Query parameters since, until, top and identity default to the configured
values. A file cache backend is swapped for the in-memory one; redis is
kept so several servers can share results.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (default from config, :8080)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	opts := appOptions()
	opts.Server = true

	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.RequireCredentials(); err != nil {
		return err
	}

	addr := addrFlag
	if addr == "" {
		addr = app.Config.Server.Addr
	}

	srv := httpapi.NewServer(addr, app.WrappedSvc, httpapi.Defaults{
		Since:    app.Config.Defaults.Since,
		Top:      app.Config.Defaults.Top,
		Identity: app.Config.Defaults.Identity,
	}, app.Logger.With("component", "http"))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})

	return g.Wait()
}
