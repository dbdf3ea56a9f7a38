// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

/*
Package api provides the HTTP interface of Utilitrack.

Routes are registered on a chi router by Router.SetupChi:

	GET    /health                      service health
	GET    /metrics                     Prometheus metrics
	GET    /api/v1/resource             selected resource and its stats
	POST   /api/v1/resource             switch the selected resource
	GET    /api/v1/analytics/weekly     week report (?year=&week=&compare_year=&compare_week=)
	GET    /api/v1/analytics/monthly    month report (?year=&month=&compare_year=&compare_month=)
	GET    /api/v1/analytics/yearly     year report (?year=&compare_year=)
	GET    /api/v1/analytics/patterns   seasonal buckets and heatmap
	GET    /api/v1/analytics/gaps       missing days
	GET    /api/v1/analytics/progress   current month against the monthly target
	GET    /api/v1/targets              targets of the selected resource
	GET    /api/v1/targets/active       active target (?period=)
	POST   /api/v1/targets              create a target (admin)
	DELETE /api/v1/targets/{id}         delete a target (admin)
	POST   /api/v1/import               import an export file or pasted text (admin)
	GET    /api/v1/imports              recent import batches
	GET    /api/v1/ws                   websocket updates

Every JSON response uses models.APIResponse. Analytics reports go through
AnalyticsQueryExecutor, which caches results per resource, report,
parameters and reference date. The cache is emptied for a resource when the
event processor consumes an import or target change.

The selected resource is read from the resource cookie by
middleware.Resource. When an admin user is configured, write routes require
HTTP basic auth checked against a bcrypt hash.
*/
package api
