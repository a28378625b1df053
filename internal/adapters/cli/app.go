package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/devbush/likewrapped/internal/adapters/cache"
	"github.com/devbush/likewrapped/internal/adapters/twitter"
	"github.com/devbush/likewrapped/internal/application"
	"github.com/devbush/likewrapped/internal/config"
	"github.com/devbush/likewrapped/internal/logging"
	"github.com/devbush/likewrapped/internal/ports"
)

// AppOptions override configuration for a single invocation
type AppOptions struct {
	ConfigPath   string // defaults to ~/.likewrapped/config.yaml
	CacheBackend string // file, memory, redis; empty uses config
	CacheTTL     string // empty uses config
	Quiet        bool
	LogWriter    io.Writer
	Server       bool // long-running process: file cache becomes memory
}

// App holds all application dependencies
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Cache  ports.CacheStore

	WrappedSvc *application.WrappedService
	CacheSvc   *application.CacheService

	credErr error
	closers []func() error
}

// NewApp creates and wires up all dependencies
func NewApp(opts AppOptions) (*App, error) {
	// Ensure directories exist
	if err := config.EnsureDirs(); err != nil {
		return nil, err
	}

	var cfg *config.Config
	var err error
	if opts.ConfigPath == "" {
		cfg, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(opts.ConfigPath)
	}
	if err != nil {
		return nil, err
	}

	s, err := resolveSettings(cfg, opts)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		Writer: opts.LogWriter,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Quiet:  opts.Quiet,
	})
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	cacheStore, err := app.newCacheStore(s.backend, s.ttl)
	if err != nil {
		return nil, err
	}
	app.Cache = cacheStore

	// Cache management works without credentials; ranking reports the error.
	creds, credErr := config.LoadCredentials(config.EnvPath(), ".env")
	app.credErr = credErr

	client := twitter.NewClient(twitter.Options{
		BaseURL:     cfg.API.BaseURL,
		Credentials: creds,
		Timeout:     s.timeout,
		Logger:      logger.With("component", "twitter"),
	})
	fetcher := application.NewLikesFetcher(client, application.FetcherOptions{
		PageSize:          cfg.API.PageSize,
		NearFullThreshold: cfg.API.NearFullThreshold,
		MaxPages:          cfg.API.MaxPages,
	}, logger.With("component", "fetcher"))

	app.WrappedSvc = application.NewWrappedService(fetcher, cacheStore, s.ttl, logger)
	app.CacheSvc = application.NewCacheService(cacheStore, s.backend, s.ttl)

	return app, nil
}

// settings are the config values NewApp validates before wiring
type settings struct {
	ttl     time.Duration
	timeout time.Duration
	backend string
}

func resolveSettings(cfg *config.Config, opts AppOptions) (settings, error) {
	var s settings

	ttl, err := cfg.GetCacheTTL()
	if opts.CacheTTL != "" {
		ttl, err = config.ParseDuration(opts.CacheTTL)
	}
	if err != nil {
		return s, fmt.Errorf("cache TTL: %w", err)
	}

	timeout, err := cfg.GetAPITimeout()
	if err != nil {
		return s, fmt.Errorf("api timeout: %w", err)
	}

	backend := cfg.Cache.Backend
	if opts.CacheBackend != "" {
		backend = opts.CacheBackend
	}
	if opts.Server && opts.CacheBackend == "" && (backend == "" || backend == "file") {
		backend = "memory"
	}

	return settings{ttl: ttl, timeout: timeout, backend: backend}, nil
}

func (a *App) newCacheStore(backend string, ttl time.Duration) (ports.CacheStore, error) {
	switch backend {
	case "", "file":
		return cache.NewFileCache(config.CacheDir()), nil
	case "memory":
		return cache.NewMemoryCache(a.Config.Cache.MaxEntries, ttl), nil
	case "redis":
		rc := cache.NewRedisCache(cache.RedisOptions{
			Addr:     a.Config.Cache.RedisAddr,
			Password: a.Config.Cache.RedisPassword,
			DB:       a.Config.Cache.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, err
		}
		a.closers = append(a.closers, rc.Close)
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (use file, memory or redis)", backend)
	}
}

// RequireCredentials reports missing API credentials
func (a *App) RequireCredentials() error {
	if a.credErr != nil {
		return fmt.Errorf("%w\nSet them in the environment or in %s", a.credErr, config.EnvPath())
	}
	return nil
}

// Close releases backend connections
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
