// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/logging"
	"github.com/tomtom215/utilitrack/internal/metrics"
	"github.com/tomtom215/utilitrack/internal/models"
)

const (
	maxUpsertAttempts = 3
	upsertRetryDelay  = 10 * time.Millisecond
)

// UpsertReading stores value for (date, resource), replacing any existing
// value. It reports true when the row did not exist before.
// Writes bypass the read breaker so batch imports see every row failure.
func (db *DB) UpsertReading(ctx context.Context, date time.Time, resource models.ResourceType, value float64) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	start := time.Now()
	var (
		inserted bool
		err      error
	)
	for attempt := 1; attempt <= maxUpsertAttempts; attempt++ {
		inserted, err = db.upsertOnce(ctx, calendar.FormatDate(date), resource, value)
		if err == nil || !isTransactionConflict(err) {
			break
		}
		logging.Debug().Int("attempt", attempt).Err(err).Msg("Retrying reading upsert after transaction conflict")
		time.Sleep(upsertRetryDelay * time.Duration(attempt))
	}
	metrics.RecordDBQuery("upsert", "readings", time.Since(start), err)

	if err != nil {
		return false, fmt.Errorf("upsert reading %s/%s: %w", calendar.FormatDate(date), resource, err)
	}
	return inserted, nil
}

func (db *DB) upsertOnce(ctx context.Context, day string, resource models.ResourceType, value float64) (inserted bool, err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var existing int
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM readings WHERE date = CAST(? AS DATE) AND resource_type = ?`,
		day, string(resource)).Scan(&existing); err != nil {
		return false, fmt.Errorf("check existing reading: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO readings (date, resource_type, value, updated_at)
		VALUES (CAST(? AS DATE), ?, ?, ?)
		ON CONFLICT (date, resource_type) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		day, string(resource), value, time.Now().UTC()); err != nil {
		return false, fmt.Errorf("write reading: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit reading: %w", err)
	}
	return existing == 0, nil
}

// ReadingsInRange returns the readings of resource between start and end
// inclusive, ordered by date.
func (db *DB) ReadingsInRange(ctx context.Context, resource models.ResourceType, start, end time.Time) ([]models.DailyValue, error) {
	return readThrough(db, func() ([]models.DailyValue, error) {
		ctx, cancel := db.ensureContext(ctx)
		defer cancel()

		began := time.Now()
		rows, err := db.conn.QueryContext(ctx, `
			SELECT date, value FROM readings
			WHERE resource_type = ?
			  AND date BETWEEN CAST(? AS DATE) AND CAST(? AS DATE)
			ORDER BY date`,
			string(resource), calendar.FormatDate(start), calendar.FormatDate(end))
		if err != nil {
			metrics.RecordDBQuery("select", "readings", time.Since(began), err)
			return nil, fmt.Errorf("query readings: %w", err)
		}
		defer closeWithLog(rows, "rows")

		out, err := scanDailyValues(rows)
		metrics.RecordDBQuery("select", "readings", time.Since(began), err)
		return out, err
	})
}

// DistinctDates returns every date with a reading for resource, ascending.
func (db *DB) DistinctDates(ctx context.Context, resource models.ResourceType) ([]time.Time, error) {
	return readThrough(db, func() ([]time.Time, error) {
		ctx, cancel := db.ensureContext(ctx)
		defer cancel()

		began := time.Now()
		rows, err := db.conn.QueryContext(ctx,
			`SELECT DISTINCT date FROM readings WHERE resource_type = ? ORDER BY date`,
			string(resource))
		if err != nil {
			metrics.RecordDBQuery("select_dates", "readings", time.Since(began), err)
			return nil, fmt.Errorf("query distinct dates: %w", err)
		}
		defer closeWithLog(rows, "rows")

		dates := make([]time.Time, 0)
		for rows.Next() {
			var d time.Time
			if err := rows.Scan(&d); err != nil {
				return nil, fmt.Errorf("scan date: %w", err)
			}
			dates = append(dates, calendar.Day(d))
		}
		err = rows.Err()
		metrics.RecordDBQuery("select_dates", "readings", time.Since(began), err)
		return dates, err
	})
}

// yearBounds is the result of MinMaxReadingYear.
type yearBounds struct {
	min, max int
	ok       bool
}

// MinMaxReadingYear returns the first and last year with readings. ok is
// false when there are none. An empty resource considers all resources.
func (db *DB) MinMaxReadingYear(ctx context.Context, resource models.ResourceType) (minYear, maxYear int, ok bool, err error) {
	b, err := readThrough(db, func() (yearBounds, error) {
		ctx, cancel := db.ensureContext(ctx)
		defer cancel()

		query := `SELECT MIN(year(date)), MAX(year(date)) FROM readings`
		args := []any{}
		if resource != "" {
			query += ` WHERE resource_type = ?`
			args = append(args, string(resource))
		}

		var lo, hi sql.NullInt64
		began := time.Now()
		err := db.conn.QueryRowContext(ctx, query, args...).Scan(&lo, &hi)
		metrics.RecordDBQuery("select_years", "readings", time.Since(began), err)
		if err != nil {
			return yearBounds{}, fmt.Errorf("query year bounds: %w", err)
		}
		if !lo.Valid || !hi.Valid {
			return yearBounds{}, nil
		}
		return yearBounds{min: int(lo.Int64), max: int(hi.Int64), ok: true}, nil
	})
	return b.min, b.max, b.ok, err
}

// ReadingStats summarizes the stored readings of resource.
func (db *DB) ReadingStats(ctx context.Context, resource models.ResourceType) (*models.ReadingStats, error) {
	return readThrough(db, func() (*models.ReadingStats, error) {
		ctx, cancel := db.ensureContext(ctx)
		defer cancel()

		var (
			count       int64
			first, last sql.NullTime
			total       sql.NullFloat64
		)
		began := time.Now()
		err := db.conn.QueryRowContext(ctx,
			`SELECT COUNT(*), MIN(date), MAX(date), SUM(value) FROM readings WHERE resource_type = ?`,
			string(resource)).Scan(&count, &first, &last, &total)
		metrics.RecordDBQuery("select_stats", "readings", time.Since(began), err)
		if err != nil {
			return nil, fmt.Errorf("query reading stats: %w", err)
		}

		stats := &models.ReadingStats{ResourceType: resource, Count: count, Total: total.Float64}
		if first.Valid {
			stats.FirstDate = calendar.FormatDate(first.Time)
		}
		if last.Valid {
			stats.LastDate = calendar.FormatDate(last.Time)
		}
		return stats, nil
	})
}

func scanDailyValues(rows *sql.Rows) ([]models.DailyValue, error) {
	out := make([]models.DailyValue, 0)
	for rows.Next() {
		var (
			d time.Time
			v float64
		)
		if err := rows.Scan(&d, &v); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		out = append(out, models.DailyValue{Date: calendar.Day(d), Value: v})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate readings: %w", err)
	}
	return out, nil
}
