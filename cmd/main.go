package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tinoosan/taskboard/internal/config"
	httpapi "github.com/tinoosan/taskboard/internal/httpapi/v1"
	"github.com/tinoosan/taskboard/internal/storage/memory"
	pgstore "github.com/tinoosan/taskboard/internal/storage/postgres"
	sqlitestore "github.com/tinoosan/taskboard/internal/storage/sqlite"
	"github.com/tinoosan/taskboard/internal/taskboard"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "taskboard:", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "taskboard: config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLogger(cfg.Log)
	slog.SetDefault(logger)

	store, closeFn, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open storage", "backend", cfg.Backend(), "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.New(store, logger).Handler(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("taskboard service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// openStore selects the backend from config. The memory store is always seeded;
// the SQL stores only when DEV_SEED is set.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (httpapi.Store, func(), error) {
	switch cfg.Backend() {
	case config.BackendPostgres:
		pg, err := pgstore.Open(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		if cfg.Storage.DevSeed {
			seedAndAnnounce(logger, config.BackendPostgres, func() (taskboard.Person, taskboard.Project, taskboard.Task, error) {
				return pg.SeedDev(ctx)
			})
		}
		logger.Info("storage backend: postgres")
		return pg, pg.Close, nil
	case config.BackendSQLite:
		db, err := sqlitestore.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		if cfg.Storage.DevSeed {
			seedAndAnnounce(logger, config.BackendSQLite, func() (taskboard.Person, taskboard.Project, taskboard.Task, error) {
				return db.SeedDev(ctx)
			})
		}
		logger.Info("storage backend: sqlite", "path", cfg.Storage.SQLitePath)
		closeFn := func() {
			if err := db.Close(); err != nil {
				logger.Error("sqlite close", "err", err)
			}
		}
		return db, closeFn, nil
	default:
		store := memory.New()
		p, pr, t := taskboard.DevSeed(time.Now())
		seedAndAnnounce(logger, config.BackendMemory, func() (taskboard.Person, taskboard.Project, taskboard.Task, error) {
			return store.Seed(ctx, p, pr, t)
		})
		logger.Info("storage backend: memory")
		return store, nil, nil
	}
}

func seedAndAnnounce(l *slog.Logger, backend string, seed func() (taskboard.Person, taskboard.Project, taskboard.Task, error)) {
	p, pr, t, err := seed()
	if err != nil {
		l.Error("dev seed failed", "backend", backend, "err", err)
		return
	}
	logDevSeed(l, backend, p, pr, t)
	printDevSeedBanner(p, pr, t)
}

// logDevSeed emits structured logs with useful IDs
func logDevSeed(l *slog.Logger, backend string, p taskboard.Person, pr taskboard.Project, t taskboard.Task) {
	l.Info("DEV seed ("+backend+")", "person_id", p.ID, "project_id", pr.ID, "task_id", t.ID)
}

// printDevSeedBanner prints a simple banner to stdout for easy copy/paste of IDs
func printDevSeedBanner(p taskboard.Person, pr taskboard.Project, t taskboard.Task) {
	fmt.Println("==================== DEV SEED ====================")
	fmt.Printf("person_id:  %d (%s)\n", p.ID, p.Email)
	fmt.Printf("project_id: %d (%s)\n", pr.ID, pr.Name)
	fmt.Printf("task_id:    %d (%s)\n", t.ID, t.Title)
	fmt.Println("==================================================")
}

// parseLogLevel maps config values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(c config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(c.Level)}
	if c.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
