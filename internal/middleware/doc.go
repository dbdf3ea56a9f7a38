// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

/*
Package middleware provides the HTTP middleware shared by the API routes.

All middleware here uses the http.HandlerFunc form; the api package adapts it
for chi's r.Use.

  - PrometheusMetrics: request count, latency and in-flight gauge labeled by route pattern
  - Compression: gzip for clients sending Accept-Encoding: gzip
  - Resource: resolves the selected resource from its cookie into the context

Typical stack for the analytics routes:

	r.Route("/api/v1/analytics", func(r chi.Router) {
	    r.Use(chiMiddleware(middleware.PrometheusMetrics))
	    r.Use(chiMiddleware(middleware.Compression))
	    r.Use(chiMiddleware(middleware.Resource))
	    r.Get("/weekly", h.AnalyticsWeekly)
	})

Handlers read the resource back with ResourceFromContext.
*/
package middleware
