// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package analytics

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPeriod is returned for a period that does not exist or whose
	// granularity has no report.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrStoreUnavailable wraps every failed store read.
	ErrStoreUnavailable = errors.New("analytics store read failed")
)

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
