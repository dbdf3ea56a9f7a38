// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package api

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/utilitrack/internal/analytics"
	"github.com/tomtom215/utilitrack/internal/cache"
	"github.com/tomtom215/utilitrack/internal/config"
	"github.com/tomtom215/utilitrack/internal/database"
	"github.com/tomtom215/utilitrack/internal/ingest"
	"github.com/tomtom215/utilitrack/internal/logging"
	"github.com/tomtom215/utilitrack/internal/models"
	ws "github.com/tomtom215/utilitrack/internal/websocket"
)

// maxJSONBodyBytes bounds JSON request bodies.
const maxJSONBodyBytes = 64 << 10

// Version is reported by the health endpoint. It is set at build time.
var Version = "dev"

// TargetEventPublisher announces target changes.
type TargetEventPublisher interface {
	PublishTargetsChanged(ctx context.Context, action string, target *models.Target) error
}

// Handler holds the dependencies of the HTTP handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: health
//   - handlers_resource.go: resource selection
//   - handlers_analytics.go: period reports, patterns, gaps, progress
//   - handlers_targets.go: target administration
//   - handlers_import.go: imports and import history
//   - handlers_websocket.go: websocket upgrade
type Handler struct {
	db            *database.DB
	engine        *analytics.Engine
	cache         *cache.Cache
	importer      *ingest.Importer
	config        *config.Config
	wsHub         *ws.Hub
	events        TargetEventPublisher
	audit         *logging.AuditLogger
	importLimiter *rate.Limiter
	startTime     time.Time
}

// NewHandler creates the API handler.
//
// The cache is shared with the event processor, which invalidates a
// resource's reports when readings or targets change. wsHub may be nil, in
// which case the websocket route reports 503.
//
//	handler := api.NewHandler(db, engine, reportCache, importer, cfg, hub)
//	handler.SetEventPublisher(processor.Publisher())
//	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg))
func NewHandler(db *database.DB, engine *analytics.Engine, c *cache.Cache, importer *ingest.Importer, cfg *config.Config, wsHub *ws.Hub) *Handler {
	return &Handler{
		db:            db,
		engine:        engine,
		cache:         c,
		importer:      importer,
		config:        cfg,
		wsHub:         wsHub,
		audit:         logging.NewAuditLogger(),
		importLimiter: newImportLimiter(cfg),
		startTime:     time.Now(),
	}
}

// SetEventPublisher sets the publisher used for target changes.
// Call it once during startup.
func (h *Handler) SetEventPublisher(p TargetEventPublisher) {
	h.events = p
}

// ClearCache drops every cached report.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
		logging.Info().Msg("Analytics cache cleared")
	}
}

// newImportLimiter builds the process-wide import token bucket. A
// non-positive rate disables throttling.
func newImportLimiter(cfg *config.Config) *rate.Limiter {
	if cfg == nil || cfg.Import.RatePerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.Import.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.Import.RatePerMinute)), burst)
}

func (h *Handler) secureCookies() bool {
	return h.config != nil && h.config.Server.Environment == "production"
}
