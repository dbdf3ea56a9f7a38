// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/utilitrack/internal/middleware"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	adminGuard    *AdminGuard
}

// NewRouter creates a router for handler. The admin guard is built from the
// handler's security configuration.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddlewareFromConfig(handler.config)
	}
	var user, hash string
	if handler.config != nil && handler.config.AdminAuthEnabled() {
		user = handler.config.Security.AdminUsername
		hash = handler.config.Security.AdminPasswordHash
	}
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
		adminGuard:    NewAdminGuard(user, hash, handler.audit),
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to chi's
// func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi builds the HTTP handler with every route.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	mw := router.chiMiddleware
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS()) // global so OPTIONS preflights are answered

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimitCustom("health", RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Get("/health", h.Health)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.Resource))

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())
			r.Get("/resource", h.GetResource)
			r.Post("/resource", h.SelectResource)
			r.Get("/targets", h.ListTargets)
			r.Get("/targets/active", h.ActiveTarget)
			r.Get("/imports", h.ImportHistory)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Use(mw.RateLimitCustom("analytics", RateLimitAnalytics))
			r.Use(chiMiddleware(middleware.Compression))
			r.Get("/weekly", h.AnalyticsWeekly)
			r.Get("/monthly", h.AnalyticsMonthly)
			r.Get("/yearly", h.AnalyticsYearly)
			r.Get("/patterns", h.AnalyticsPatterns)
			r.Get("/gaps", h.AnalyticsGaps)
			r.Get("/progress", h.AnalyticsProgress)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimitCustom("write", RateLimitWrite))
			r.Use(chiMiddleware(router.adminGuard.Require))
			r.Post("/targets", h.CreateTarget)
			r.Delete("/targets/{id}", h.DeleteTarget)
			r.Post("/import", h.ImportReadings)
		})

		r.With(mw.RateLimitCustom("websocket", RateLimitWebSocket)).Get("/ws", h.WebSocket)
	})

	return r
}
