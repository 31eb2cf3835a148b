package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"barkeep/internal/config"
	"barkeep/internal/db"
	"barkeep/internal/db/mock"
	"barkeep/internal/ingredients"
	applog "barkeep/internal/log"
	"barkeep/internal/metrics"
	"barkeep/internal/recipes"
	"barkeep/internal/schema"
	"barkeep/internal/server"
	"barkeep/internal/store"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc       = config.Load
	setLogLevelFunc      = applog.SetLevel
	newMockDatabaseFunc  = mock.New
	configureDatabase    = db.Configure
	initializeSheetsFunc = schema.Initialize
	newServerFunc        = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		applog.Error(ctx, "failed to open sheet store", "error", err)
		return 1
	}
	if cfg.Metrics.Enabled {
		backend = metrics.InstrumentBackend(backend)
	}

	if cfg.Sheets.AutoInit && !cfg.Database.UseMock {
		if err := initializeSheetsFunc(ctx, backend, cfg.Sheets.Reset); err != nil {
			applog.Error(ctx, "failed to initialize sheets", "error", err)
			return 1
		}
	}

	adapter := store.NewAdapter(backend)
	ingredientRepo := ingredients.NewRepository(adapter)
	recipeRepo := recipes.NewRepository(adapter, ingredientRepo)

	srv, err := newServerFunc(server.Config{
		Addr:        cfg.Server.Addr,
		Ingredients: ingredientRepo,
		Recipes:     recipeRepo,
		Ready: func(ctx context.Context) error {
			return schema.Ready(ctx, backend)
		},
		Metrics: cfg.Metrics.Enabled,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	shutdown, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-shutdown:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	return 0
}

// openBackend picks the sheet store: the seeded mock database, the configured
// SQL database, or an in-memory store when no URL is set.
func openBackend(ctx context.Context, cfg config.Config) (store.Backend, error) {
	var (
		database *gorm.DB
		err      error
	)
	switch {
	case cfg.Database.UseMock:
		applog.Info(ctx, "using mock database")
		database, err = newMockDatabaseFunc(ctx)
	case cfg.Database.URL != "":
		database, err = configureDatabase(cfg.Database)
	default:
		applog.Info(ctx, "no database configured, using in-memory sheet store")
		return store.NewMemory(), nil
	}
	if err != nil {
		return nil, err
	}
	return db.NewBackend(database), nil
}
