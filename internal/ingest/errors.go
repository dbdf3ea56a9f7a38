// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package ingest

import "errors"

var (
	// ErrEmptyUpload is returned when an upload carries no data.
	ErrEmptyUpload = errors.New("no file uploaded")

	// ErrUnsupportedFileKind is returned for files other than .csv and .txt.
	ErrUnsupportedFileKind = errors.New("invalid file type, please upload a .csv or .txt file")

	// ErrUploadTooLarge is returned when an upload exceeds the configured limit.
	ErrUploadTooLarge = errors.New("upload exceeds size limit")
)
