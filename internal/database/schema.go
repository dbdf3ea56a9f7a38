// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package database

import "fmt"

// getTableCreationQueries returns the statements that create the base schema.
func (db *DB) getTableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS readings (
			date DATE NOT NULL,
			resource_type VARCHAR NOT NULL,
			value DOUBLE NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (date, resource_type)
		);`,
		`CREATE SEQUENCE IF NOT EXISTS targets_id_seq START 1;`,
		`CREATE TABLE IF NOT EXISTS targets (
			id BIGINT PRIMARY KEY DEFAULT nextval('targets_id_seq'),
			period_type VARCHAR NOT NULL,
			resource_type VARCHAR NOT NULL,
			value DOUBLE NOT NULL,
			valid_from DATE NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_targets_lookup ON targets(period_type, resource_type, valid_from);`,
	}
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range db.getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute %q: %w", firstLine(query), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
