// Package app wires the namax server: storage backend, catalog reloader,
// filter bar sessions and the HTTP API.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/namax/internal/collection"
	"github.com/MrSnakeDoc/namax/internal/config"
	"github.com/MrSnakeDoc/namax/internal/filterbar"
	"github.com/MrSnakeDoc/namax/internal/generator"
	"github.com/MrSnakeDoc/namax/internal/httpserver"
	"github.com/MrSnakeDoc/namax/internal/httpserver/deps"
	"github.com/MrSnakeDoc/namax/internal/index"
	"github.com/MrSnakeDoc/namax/internal/logger"
	"github.com/MrSnakeDoc/namax/internal/scheduler"
	"github.com/MrSnakeDoc/namax/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	backend  *Backend
	memIndex *index.MemoryIndex
	sessions *filterbar.Registry
	reloader *scheduler.CatalogReloader
	sweeper  *scheduler.SessionSweeper
}

// New opens the backend and builds every component. Nothing runs until Run.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	backend, err := OpenBackend(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	memIndex := index.NewMemoryIndex()
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewCatalogReloader(
		cfg.CatalogFile,
		memIndex,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	provider := collection.NewProvider(backend.KV, loggerClient)
	sessions := filterbar.NewRegistry(provider, memIndex.AllNames, loggerClient,
		filterbar.WithDelay(cfg.DebounceDelay))

	// names matched by open filter bars follow the new corpus
	reloader.OnReload(sessions.Refresh)

	sweeper := scheduler.NewSessionSweeper(
		sessions,
		loggerClient,
		cfg.SessionSweepInterval,
		cfg.SessionIdleTTL,
	)

	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		StoreBackend:    backend.Name,
		Store:           backend.Ping,
		Collections:     provider,
		Filters:         sessions,
		Generator:       generator.New(memIndex.Catalog),
		MemoryIndex:     memIndex,
		ReloadTrigger:   reloadTrigger,
		ClientCookie:    cfg.ClientCookie,
		CookieSecure:    cfg.CookieSecure,
		DefaultLanguage: cfg.DefaultLanguage,
		RateLimit:       cfg.RateLimit,
		RateBurst:       cfg.RateBurst,
	}

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   httpserver.New(cfg, loggerClient, d),
		backend:  backend,
		memIndex: memIndex,
		sessions: sessions,
		reloader: reloader,
		sweeper:  sweeper,
	}, nil
}

// Run starts the schedulers and the server, and blocks until ctx is done or
// the server fails.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("starting namax",
		logger.String("version", version.Version),
		logger.String("commit", version.Commit),
		logger.String("built", version.BuildDate),
		logger.String("go", version.GoVersion),
		logger.String("addr", a.cfg.ListenPort),
		logger.String("store", a.backend.Name))

	defer a.closeBackend()

	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	if err := a.sweeper.Start(ctx); err != nil {
		a.reloader.Stop()
		return fmt.Errorf("failed to start session sweeper: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully...")
	case runErr = <-errCh:
	}

	a.reloader.Stop()
	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	// pending debounced notifications are dropped with their sessions
	a.sessions.CloseAll()

	if runErr == nil {
		a.logger.Info("namax stopped cleanly")
	}
	return runErr
}

func (a *App) closeBackend() {
	if err := a.backend.Close(); err != nil {
		a.logger.Warn("failed to close store", logger.String("store", a.backend.Name), logger.Error(err))
		return
	}
	a.logger.Debug("store closed", logger.String("store", a.backend.Name))
}
