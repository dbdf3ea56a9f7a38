// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/metrics"
	"github.com/tomtom215/utilitrack/internal/models"
)

const targetColumns = `id, period_type, resource_type, value, valid_from, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTarget(row rowScanner) (*models.Target, error) {
	var (
		t         models.Target
		period    string
		resource  string
		validFrom time.Time
	)
	if err := row.Scan(&t.ID, &period, &resource, &t.Value, &validFrom, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.PeriodType = models.PeriodType(period)
	t.ResourceType = models.ResourceType(resource)
	t.ValidFrom = calendar.FormatDate(validFrom)
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

// CreateTarget inserts a target and returns it with its id.
func (db *DB) CreateTarget(ctx context.Context, nt models.NewTarget) (*models.Target, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	began := time.Now()
	row := db.conn.QueryRowContext(ctx, `
		INSERT INTO targets (period_type, resource_type, value, valid_from, created_at)
		VALUES (?, ?, ?, CAST(? AS DATE), ?)
		RETURNING `+targetColumns,
		string(nt.PeriodType), string(nt.ResourceType), nt.Value,
		calendar.FormatDate(nt.ValidFrom), time.Now().UTC())

	t, err := scanTarget(row)
	metrics.RecordDBQuery("insert", "targets", time.Since(began), err)
	if err != nil {
		return nil, fmt.Errorf("create target: %w", err)
	}
	return t, nil
}

// GetTarget returns the target with id or ErrTargetNotFound.
func (db *DB) GetTarget(ctx context.Context, id int64) (*models.Target, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	began := time.Now()
	t, err := scanTarget(db.conn.QueryRowContext(ctx,
		`SELECT `+targetColumns+` FROM targets WHERE id = ?`, id))
	metrics.RecordDBQuery("select", "targets", time.Since(began), err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTargetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get target %d: %w", id, err)
	}
	return t, nil
}

// ListTargets returns targets ordered by period type and newest valid_from
// first. An empty resource lists every resource.
func (db *DB) ListTargets(ctx context.Context, resource models.ResourceType) ([]models.Target, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT ` + targetColumns + ` FROM targets`
	args := []any{}
	if resource != "" {
		query += ` WHERE resource_type = ?`
		args = append(args, string(resource))
	}
	query += ` ORDER BY period_type, valid_from DESC, id DESC`

	began := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.RecordDBQuery("select", "targets", time.Since(began), err)
		return nil, fmt.Errorf("list targets: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out := make([]models.Target, 0)
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan target: %w", err)
		}
		out = append(out, *t)
	}
	err = rows.Err()
	metrics.RecordDBQuery("select", "targets", time.Since(began), err)
	return out, err
}

// DeleteTarget removes a target. It returns ErrTargetNotFound if id does not exist.
func (db *DB) DeleteTarget(ctx context.Context, id int64) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	began := time.Now()
	res, err := db.conn.ExecContext(ctx, `DELETE FROM targets WHERE id = ?`, id)
	metrics.RecordDBQuery("delete", "targets", time.Since(began), err)
	if err != nil {
		return fmt.Errorf("delete target %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete target %d: %w", id, err)
	}
	if n == 0 {
		return ErrTargetNotFound
	}
	return nil
}

// ActiveTarget returns the target of periodType and resource with the latest
// valid_from on or before asOf, or nil when none applies. Equal valid_from
// dates resolve to the most recently created target.
func (db *DB) ActiveTarget(ctx context.Context, periodType models.PeriodType, resource models.ResourceType, asOf time.Time) (*models.Target, error) {
	return readThrough(db, func() (*models.Target, error) {
		ctx, cancel := db.ensureContext(ctx)
		defer cancel()

		began := time.Now()
		t, err := scanTarget(db.conn.QueryRowContext(ctx, `
			SELECT `+targetColumns+` FROM targets
			WHERE period_type = ? AND resource_type = ? AND valid_from <= CAST(? AS DATE)
			ORDER BY valid_from DESC, id DESC
			LIMIT 1`,
			string(periodType), string(resource), calendar.FormatDate(asOf)))
		if errors.Is(err, sql.ErrNoRows) {
			metrics.RecordDBQuery("select_active", "targets", time.Since(began), nil)
			return nil, nil
		}
		metrics.RecordDBQuery("select_active", "targets", time.Since(began), err)
		if err != nil {
			return nil, fmt.Errorf("active target: %w", err)
		}
		return t, nil
	})
}
