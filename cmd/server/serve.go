package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Skotchmaster/fashion_api/internal/config"
	"github.com/Skotchmaster/fashion_api/internal/db"
	"github.com/Skotchmaster/fashion_api/internal/httpserver"
	"github.com/Skotchmaster/fashion_api/internal/logging"
	"github.com/Skotchmaster/fashion_api/internal/metrics"
	"github.com/Skotchmaster/fashion_api/internal/mykafka"
	"github.com/Skotchmaster/fashion_api/internal/repo"
	"github.com/Skotchmaster/fashion_api/internal/service"
	"github.com/Skotchmaster/fashion_api/internal/tokens"
)

func newServeCommand() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", true, "create missing tables before serving")
	return cmd
}

func serve(parent context.Context, autoMigrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	openCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	migrate := noMigrate
	if autoMigrate {
		migrate = db.Migrate
	}
	gdb, err := openDatabase(openCtx, cfg.DBDriver, cfg.DatabaseURL, migrate)
	cancel()
	if err != nil {
		logger.Error("db_open_failed", "driver", cfg.DBDriver, "error", err)
		return err
	}

	m := metrics.New()
	events := mykafka.Instrument(mykafka.New(cfg.KafkaBrokers, cfg.KafkaTopic), m.RecordEvent)
	codec := tokens.NewCodec(cfg.JWTSecret, cfg.JWTTTL)
	store := repo.New(gdb)

	e := httpserver.New(&httpserver.Deps{
		ServiceName:    cfg.ServiceName,
		Logger:         logger,
		Metrics:        m,
		CORSOrigins:    cfg.CORSOrigins,
		Tokens:         codec,
		AuthHandler:    &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: store, Tokens: codec, Events: events}},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: store, Events: events}},
		Ready:          pinger(gdb),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server_listening", "addr", srv.Addr, "driver", cfg.DBDriver, "kafka", len(cfg.KafkaBrokers) > 0)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("server_failed", "error", err)
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting_down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_error", "error", err)
	}
	if err := events.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}

	logger.Info("shutdown_complete")
	return nil
}

func pinger(gdb *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func noMigrate(context.Context, *gorm.DB) error { return nil }

// openDatabase closes the handle again when migrate fails.
func openDatabase(ctx context.Context, driver, dsn string, migrate func(context.Context, *gorm.DB) error) (*gorm.DB, error) {
	gdb, err := db.Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, gdb); err != nil {
		_ = db.Close(gdb)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gdb, nil
}
