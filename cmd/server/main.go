// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/utilitrack/internal/analytics"
	"github.com/tomtom215/utilitrack/internal/api"
	"github.com/tomtom215/utilitrack/internal/cache"
	"github.com/tomtom215/utilitrack/internal/config"
	"github.com/tomtom215/utilitrack/internal/database"
	"github.com/tomtom215/utilitrack/internal/eventprocessor"
	"github.com/tomtom215/utilitrack/internal/ingest"
	"github.com/tomtom215/utilitrack/internal/logging"
	"github.com/tomtom215/utilitrack/internal/metrics"
	"github.com/tomtom215/utilitrack/internal/supervisor"
	"github.com/tomtom215/utilitrack/internal/supervisor/services"
	ws "github.com/tomtom215/utilitrack/internal/websocket"
)

const (
	checkpointInterval = 5 * time.Minute
	historyGCInterval  = 30 * time.Minute
	httpShutdownGrace  = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   logging.ServiceName,
	})
	metrics.SetAppInfo(api.Version, runtime.Version())

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("timezone", cfg.Analytics.Location().String()).
		Bool("admin_auth", cfg.AdminAuthEnabled()).
		Msg("Starting Utilitrack")

	if !cfg.AdminAuthEnabled() {
		logging.Warn().Msg("ADMIN_USERNAME/ADMIN_PASSWORD_HASH not set: target and import routes are unauthenticated")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS_ORIGINS=* allows any website to call the API. Set explicit origins in production")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Shutdown complete")
}

func run(cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	history, badgerHistory, err := openHistory(cfg.Import)
	if err != nil {
		return err
	}
	if badgerHistory != nil {
		defer func() {
			if err := badgerHistory.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing import history")
			}
		}()
	}

	engine := analytics.NewEngine(db, analytics.Config{
		Location:             cfg.Analytics.Location(),
		HeatmapDefaultMonths: cfg.Analytics.HeatmapDefaultMonths,
	})
	reportCache := cache.New("analytics", cfg.Analytics.CacheTTL)
	wsHub := ws.NewHub()

	processor, err := eventprocessor.New(cfg.Events, reportCache, wsHub)
	if err != nil {
		return fmt.Errorf("initialize event processor: %w", err)
	}
	defer func() {
		if err := processor.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event processor")
		}
	}()

	importer := ingest.NewImporter(db, history, processor.Publisher(), cfg.Import.MaxUploadBytes)
	handler := api.NewHandler(db, engine, reportCache, importer, cfg, wsHub)
	handler.SetEventPublisher(processor.Publisher())

	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg))
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * time.Minute,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  httpShutdownGrace + 5*time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(reportCache)
	tree.AddDataService(services.NewPeriodicService("duckdb-checkpoint", checkpointInterval, db.Checkpoint))
	if badgerHistory != nil {
		tree.AddDataService(services.NewPeriodicService("import-history-gc", historyGCInterval, badgerHistory.RunGC))
	}
	tree.AddMessagingService(wsHub)
	tree.AddMessagingService(processor)
	tree.AddAPIService(services.NewHTTPServerService(server, httpShutdownGrace))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	if unstopped, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	return nil
}

// openHistory returns the import history store. A Badger store is also
// returned separately so the caller can close it and schedule its GC.
func openHistory(cfg config.ImportConfig) (ingest.History, *ingest.BadgerHistory, error) {
	if cfg.HistoryPath == "" {
		logging.Info().Int("limit", cfg.HistoryLimit).Msg("Import history kept in memory")
		return ingest.NewInMemoryHistory(cfg.HistoryLimit), nil, nil
	}

	h, err := ingest.OpenBadgerHistory(cfg.HistoryPath, cfg.HistoryLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("open import history: %w", err)
	}
	logging.Info().Str("path", cfg.HistoryPath).Int("limit", cfg.HistoryLimit).Msg("Import history stored in Badger")
	return h, h, nil
}
