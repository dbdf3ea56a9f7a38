// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

/*
Package ingest turns utility-provider exports into canonical daily readings
and writes them to the store.

# Input Formats

Two line-oriented text forms are accepted. The first line is always a header:
it is used to detect the resource type and is otherwise discarded.

Semicolon form, as exported by Swedish electricity providers:

	"Datum";"El kWh"
	"2026-01-29";"101,009"

Tab form, as pasted from a provider web page. The first field carries a
trailing day name that is dropped by keeping only its first ten characters:

	Datum	Vatten (liter)
	2026-02-06 (fre)	1 250,5

# Resource Detection

The header is searched case-insensitively for a water keyword ("vatten",
"water", "liter"). If one is found the whole batch is water, otherwise
electricity. Detection happens once per batch.

# Numbers

Values use comma as the decimal separator. Water values may also contain
space thousands separators, which are removed before parsing.

# Errors

Row problems never abort a parse. Each rejected row produces a LineError with
its 1-based line number and one of:

	Invalid format: expected 2 fields
	Invalid date format: <value>
	Invalid kWh value: <value>
	Invalid L value: <value>

Batch problems (empty upload, unsupported file kind) are rejected by
ValidateUpload before any parsing happens.

# Import History

Every completed import is recorded in a History. BadgerHistory persists the
entries across restarts; InMemoryHistory is used when no history path is
configured and in tests.
*/
package ingest
