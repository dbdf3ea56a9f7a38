// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/metrics"
	"github.com/tomtom215/utilitrack/internal/models"
)

// rangeFilter appends an inclusive date filter to a WHERE clause.
func rangeFilter(r models.DateRange, args []any) (string, []any) {
	clause := ""
	if !r.Start.IsZero() {
		clause += ` AND date >= CAST(? AS DATE)`
		args = append(args, calendar.FormatDate(r.Start))
	}
	if !r.End.IsZero() {
		clause += ` AND date <= CAST(? AS DATE)`
		args = append(args, calendar.FormatDate(r.End))
	}
	return clause, args
}

// groupedAverages runs an AVG(value) grouped by keyExpr and returns key -> average.
func (db *DB) groupedAverages(ctx context.Context, op, keyExpr string, resource models.ResourceType, r models.DateRange) (map[int]float64, error) {
	return readThrough(db, func() (map[int]float64, error) {
		ctx, cancel := db.ensureContext(ctx)
		defer cancel()

		filter, args := rangeFilter(r, []any{string(resource)})
		query := fmt.Sprintf(`
			SELECT %s AS bucket, AVG(value) AS avg_value
			FROM readings
			WHERE resource_type = ?%s
			GROUP BY bucket`, keyExpr, filter)

		began := time.Now()
		rows, err := db.conn.QueryContext(ctx, query, args...)
		if err != nil {
			metrics.RecordDBQuery(op, "readings", time.Since(began), err)
			return nil, fmt.Errorf("query %s: %w", op, err)
		}
		defer closeWithLog(rows, "rows")

		out := make(map[int]float64)
		for rows.Next() {
			var (
				bucket int64
				avg    float64
			)
			if err := rows.Scan(&bucket, &avg); err != nil {
				return nil, fmt.Errorf("scan %s: %w", op, err)
			}
			out[int(bucket)] = avg
		}
		err = rows.Err()
		metrics.RecordDBQuery(op, "readings", time.Since(began), err)
		return out, err
	})
}

// WeekdayAverages returns the average value per weekday within r, keyed by
// DuckDB's dayofweek numbering (Sunday=0 ... Saturday=6). Weekdays without
// data are absent from the map.
func (db *DB) WeekdayAverages(ctx context.Context, resource models.ResourceType, r models.DateRange) (map[int]float64, error) {
	return db.groupedAverages(ctx, "weekday_avg", "dayofweek(date)", resource, r)
}

// MonthAverages returns the average value per calendar month (1-12) within r.
// Months without data are absent from the map.
func (db *DB) MonthAverages(ctx context.Context, resource models.ResourceType, r models.DateRange) (map[int]float64, error) {
	return db.groupedAverages(ctx, "month_avg", "month(date)", resource, r)
}

// DailyTotals returns the total per day within r, ordered by date.
func (db *DB) DailyTotals(ctx context.Context, resource models.ResourceType, r models.DateRange) ([]models.DailyValue, error) {
	return readThrough(db, func() ([]models.DailyValue, error) {
		ctx, cancel := db.ensureContext(ctx)
		defer cancel()

		filter, args := rangeFilter(r, []any{string(resource)})
		query := `
			SELECT date, SUM(value) AS total
			FROM readings
			WHERE resource_type = ?` + filter + `
			GROUP BY date
			ORDER BY date`

		began := time.Now()
		rows, err := db.conn.QueryContext(ctx, query, args...)
		if err != nil {
			metrics.RecordDBQuery("daily_totals", "readings", time.Since(began), err)
			return nil, fmt.Errorf("query daily totals: %w", err)
		}
		defer closeWithLog(rows, "rows")

		out, err := scanDailyValues(rows)
		metrics.RecordDBQuery("daily_totals", "readings", time.Since(began), err)
		return out, err
	})
}
