// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

/*
Package cache provides the TTL cache that holds computed analytics reports.

Report handlers key entries with GenerateKey, combining the endpoint, the
active resource, the query parameters and the reference date, so a cached
report never outlives the day it was computed for. The event processor clears
the cache when readings are imported or targets change.

# Usage

	c := cache.New("analytics", 5*time.Minute)
	key := cache.GenerateKey("weekly:el", params)
	if v, ok := c.Get(key); ok {
	    return v.(*models.PeriodReport)
	}
	c.Set(key, report)

# Expiry

Get drops an expired entry it runs into. Serve, run under the supervisor,
sweeps all expired entries once per DefaultCleanupInterval.

# Metrics

Every lookup is recorded through metrics.RecordCacheLookup labeled with the
cache name.
*/
package cache
