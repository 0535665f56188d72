// Command tribridrag serves the TriBridRAG demo web frontend.
//
// With no flags it runs in demo mode: an in-memory store seeded with sample
// sessions, blog posts, and eval runs, talking to a backend API expected at
// localhost:8000. Pass -config to point it at Postgres and a real deployment.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"github.com/tribridrag/tribridrag"
	"github.com/tribridrag/tribridrag/knobs"
	"github.com/tribridrag/tribridrag/store"
	"github.com/tribridrag/tribridrag/store/memstore"
	"github.com/tribridrag/tribridrag/store/pgxstore"
	"github.com/tribridrag/tribridrag/store/sqlstore"
	"github.com/tribridrag/tribridrag/ui"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tribridrag:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg serverConfig, logger *slog.Logger) error {
	st, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	client, err := tribridrag.NewClient(tribridrag.Config{
		BaseURL: cfg.BackendURL,
		APIKey:  cfg.BackendKey,
	})
	if err != nil {
		return fmt.Errorf("backend client: %w", err)
	}

	glossary, err := openGlossary(cfg.GlossaryPath)
	if err != nil {
		return err
	}

	handler := ui.Handler(st, client, glossary, &ui.Config{
		BasePath:             cfg.BasePath,
		GrafanaURL:           cfg.GrafanaURL,
		GrafanaDashboardUID:  cfg.GrafanaDashboardUID,
		GrafanaDashboardSlug: cfg.GrafanaDashboardSlug,
		ReadOnly:             cfg.ReadOnly,
		PageSize:             cfg.PageSize,
		RefreshInterval:      cfg.RefreshInterval,
		Logger:               logger,
	})

	mux := http.NewServeMux()
	if cfg.BasePath != "" {
		mux.Handle(cfg.BasePath+"/", http.StripPrefix(cfg.BasePath, handler))
		mux.Handle("/", http.RedirectHandler(cfg.BasePath+"/", http.StatusTemporaryRedirect))
	} else {
		mux.Handle("/", handler)
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr, "store", cfg.StoreDriver, "backend", cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore builds the configured store. The returned cleanup closes the
// underlying connections.
func openStore(ctx context.Context, cfg serverConfig, logger *slog.Logger) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case storeMemory:
		mem := memstore.New()
		if cfg.DemoSeed {
			mem.Seed()
			logger.Info("seeded in-memory store with demo data")
		}
		return mem, func() {}, nil

	case storePgx:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		st := pgxstore.New(pool)
		if err := st.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return st, pool.Close, nil

	case storePq:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		st := sqlstore.New(db)
		if err := st.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return st, func() { db.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown store_driver %q", cfg.StoreDriver)
}

// openGlossary loads a deployment glossary, or the embedded one.
func openGlossary(path string) (*knobs.Glossary, error) {
	if path == "" {
		return knobs.Default(), nil
	}
	return knobs.Load(path)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
