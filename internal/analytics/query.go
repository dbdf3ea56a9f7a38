// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package analytics

import (
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/utilitrack/internal/calendar"
)

// ResolvePeriod builds a period of granularity g from raw navigation values.
// An empty value takes the matching component of the period containing
// today. Non-numeric or out-of-range input yields that current period.
// The ordinal is ignored for years.
func ResolvePeriod(g calendar.Granularity, year, ordinal string, today time.Time) calendar.Period {
	current := calendar.PeriodContaining(g, today)

	y, ok := parseComponent(year, current.Year)
	if !ok {
		return current
	}
	p := calendar.Period{Granularity: g, Year: y}
	if g != calendar.Year {
		o, ok := parseComponent(ordinal, current.Ordinal)
		if !ok {
			return current
		}
		p.Ordinal = o
	}
	if !p.Valid() {
		return current
	}
	return p
}

// ResolveComparison returns the explicitly requested comparison period, or
// nil when none was requested or the values do not form a valid period.
func ResolveComparison(g calendar.Granularity, year, ordinal string) *calendar.Period {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return nil
	}
	p := calendar.Period{Granularity: g, Year: y}
	if g != calendar.Year {
		o, err := strconv.Atoi(strings.TrimSpace(ordinal))
		if err != nil {
			return nil
		}
		p.Ordinal = o
	}
	if !p.Valid() {
		return nil
	}
	return &p
}

func parseComponent(raw string, fallback int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// atoiOrZero parses raw, mapping anything non-numeric to zero.
func atoiOrZero(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
