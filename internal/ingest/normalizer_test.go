// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package ingest

import (
	"strings"
	"testing"

	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/models"
)

func TestParseSemicolonExport(t *testing.T) {
	t.Parallel()

	text := "\"Datum\";\"El kWh\"\n\"2026-01-29\";\"101,009\"\n\"2026-01-30\";\"96,59\"\n\"2026-01-31\";\"109,814\""
	result := Parse(text)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %+v", result.Errors)
	}
	if result.ResourceType != models.ResourceElectric {
		t.Errorf("ResourceType = %q, want el", result.ResourceType)
	}

	want := []struct {
		date  string
		value float64
	}{
		{"2026-01-29", 101.009},
		{"2026-01-30", 96.59},
		{"2026-01-31", 109.814},
	}
	if len(result.Readings) != len(want) {
		t.Fatalf("got %d readings, want %d", len(result.Readings), len(want))
	}
	for i, w := range want {
		r := result.Readings[i]
		if calendar.FormatDate(r.Date) != w.date || r.Value != w.value {
			t.Errorf("reading %d = %s %v, want %s %v", i, calendar.FormatDate(r.Date), r.Value, w.date, w.value)
		}
		if r.Timestamp() != w.date+"T00:00:00" {
			t.Errorf("reading %d timestamp = %s", i, r.Timestamp())
		}
		if r.ResourceType != models.ResourceElectric {
			t.Errorf("reading %d resource = %q", i, r.ResourceType)
		}
	}
}

func TestParseSingleElectricRow(t *testing.T) {
	t.Parallel()

	result := Parse("\"Datum\";\"El kWh\"\n\"2026-01-29\";\"101,009\"")
	if len(result.Readings) != 1 || len(result.Errors) != 0 {
		t.Fatalf("readings=%d errors=%d, want 1 and 0", len(result.Readings), len(result.Errors))
	}
	r := result.Readings[0]
	if calendar.FormatDate(r.Date) != "2026-01-29" || r.Value != 101.009 || r.ResourceType != models.ResourceElectric {
		t.Errorf("got %+v", r)
	}
}

func TestParseWaterWithThousandsSeparator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"plain space", "\"Datum\";\"Vatten liter\"\n\"2026-02-06\";\"1 250,5\"", 1250.5},
		{"no-break space", "\"Datum\";\"VATTEN\"\n\"2026-02-06\";\"1\u00a0250,5\"", 1250.5},
		{"english header", "Date;Water usage\n2026-02-06;980", 980},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := Parse(tt.text)
			if result.ResourceType != models.ResourceWater {
				t.Fatalf("ResourceType = %q, want water", result.ResourceType)
			}
			if len(result.Readings) != 1 {
				t.Fatalf("got %d readings, errors %+v", len(result.Readings), result.Errors)
			}
			if result.Readings[0].Value != tt.want {
				t.Errorf("value = %v, want %v", result.Readings[0].Value, tt.want)
			}
			if result.Readings[0].ResourceType != models.ResourceWater {
				t.Errorf("reading resource = %q", result.Readings[0].ResourceType)
			}
		})
	}
}

func TestParseElectricDoesNotStripSpaces(t *testing.T) {
	t.Parallel()

	result := Parse("\"Datum\";\"El kWh\"\n\"2026-02-06\";\"1 250,5\"")
	if len(result.Readings) != 0 {
		t.Fatalf("expected no readings, got %+v", result.Readings)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0].Message, "Invalid kWh value") {
		t.Errorf("errors = %+v", result.Errors)
	}
}

func TestParsePastedTabText(t *testing.T) {
	t.Parallel()

	text := "Datum\tEl (kWh)\n2026-02-02 (mån)\t12,4\n2026-02-03 (tis)\t0\n"
	result := Parse(text)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %+v", result.Errors)
	}
	if len(result.Readings) != 2 {
		t.Fatalf("got %d readings, want 2", len(result.Readings))
	}
	if calendar.FormatDate(result.Readings[0].Date) != "2026-02-02" || result.Readings[0].Value != 12.4 {
		t.Errorf("first reading = %+v", result.Readings[0])
	}
	if result.Readings[1].Value != 0 {
		t.Errorf("zero reading = %v", result.Readings[1].Value)
	}
}

func TestParseRowErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		readings int
		line     int
		contains string
	}{
		{
			name:     "invalid date",
			text:     "\"Datum\";\"El kWh\"\n\"invalid-date\";\"101,009\"",
			readings: 0,
			line:     2,
			contains: "Invalid date format: invalid-date",
		},
		{
			name:     "invalid date followed by valid row",
			text:     "\"Datum\";\"El kWh\"\n\"invalid-date\";\"101,009\"\n\"2026-01-30\";\"96,59\"",
			readings: 1,
			line:     2,
			contains: "Invalid date format",
		},
		{
			name:     "non-existent day",
			text:     "\"Datum\";\"El kWh\"\n\"2026-02-30\";\"1,0\"",
			readings: 0,
			line:     2,
			contains: "Invalid date format: 2026-02-30",
		},
		{
			name:     "invalid kWh value",
			text:     "\"Datum\";\"El kWh\"\n\"2026-01-29\";\"not-a-number\"\n\"2026-01-30\";\"96,59\"",
			readings: 1,
			line:     2,
			contains: "Invalid kWh value: not-a-number",
		},
		{
			name:     "invalid water value",
			text:     "Datum;Vatten\n2026-01-29;abc",
			readings: 0,
			line:     2,
			contains: "Invalid L value: abc",
		},
		{
			name:     "single field",
			text:     "\"Datum\";\"El kWh\"\n\"2026-01-29\"\n\"2026-01-30\";\"96,59\"",
			readings: 1,
			line:     2,
			contains: "Invalid format: expected 2 fields",
		},
		{
			name:     "blank lines keep numbering",
			text:     "\"Datum\";\"El kWh\"\n\n\"2026-01-29\";\"1,0\"\n\n\"bad\";\"1,0\"",
			readings: 1,
			line:     5,
			contains: "Invalid date format: bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := Parse(tt.text)
			if len(result.Readings) != tt.readings {
				t.Errorf("readings = %d, want %d", len(result.Readings), tt.readings)
			}
			if len(result.Errors) != 1 {
				t.Fatalf("errors = %+v, want exactly one", result.Errors)
			}
			if result.Errors[0].Line != tt.line {
				t.Errorf("error line = %d, want %d", result.Errors[0].Line, tt.line)
			}
			if !strings.Contains(result.Errors[0].Message, tt.contains) {
				t.Errorf("error = %q, want it to contain %q", result.Errors[0].Message, tt.contains)
			}
		})
	}
}

func TestParseEdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("byte order mark", func(t *testing.T) {
		t.Parallel()
		result := Parse("\uFEFF\"Datum\";\"El kWh\"\n\"2026-01-29\";\"101,009\"")
		if len(result.Readings) != 1 {
			t.Fatalf("got %d readings", len(result.Readings))
		}
	})

	t.Run("windows line endings", func(t *testing.T) {
		t.Parallel()
		result := Parse("\"Datum\";\"El kWh\"\r\n\"2026-01-29\";\"1,5\"\r\n")
		if len(result.Readings) != 1 || result.Readings[0].Value != 1.5 {
			t.Fatalf("got %+v errors %+v", result.Readings, result.Errors)
		}
	})

	t.Run("header only", func(t *testing.T) {
		t.Parallel()
		result := Parse("\"Datum\";\"El kWh\"")
		if len(result.Readings) != 0 || len(result.Errors) != 0 {
			t.Errorf("got %+v", result)
		}
		if result.Readings == nil || result.Errors == nil {
			t.Error("slices should be non-nil")
		}
	})

	t.Run("negative values accepted", func(t *testing.T) {
		t.Parallel()
		result := Parse("Datum;El\n2026-01-29;-2,5")
		if len(result.Readings) != 1 || result.Readings[0].Value != -2.5 {
			t.Errorf("got %+v", result.Readings)
		}
	})

	t.Run("non-finite rejected", func(t *testing.T) {
		t.Parallel()
		result := Parse("Datum;El\n2026-01-29;NaN\n2026-01-30;Inf")
		if len(result.Readings) != 0 || len(result.Errors) != 2 {
			t.Errorf("got readings %+v errors %+v", result.Readings, result.Errors)
		}
	})

	t.Run("source order is kept", func(t *testing.T) {
		t.Parallel()
		result := Parse("Datum;El\n2026-01-30;2\n2026-01-29;1")
		if len(result.Readings) != 2 || calendar.FormatDate(result.Readings[0].Date) != "2026-01-30" {
			t.Errorf("got %+v", result.Readings)
		}
	})
}

func TestDetectResource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   models.ResourceType
	}{
		{`"Datum";"El kWh"`, models.ResourceElectric},
		{`"Datum";"Vatten"`, models.ResourceWater},
		{"Date\tWATER", models.ResourceWater},
		{"Datum;Förbrukning (liter)", models.ResourceWater},
		{"", models.ResourceElectric},
	}

	for _, tt := range tests {
		if got := DetectResource(tt.header); got != tt.want {
			t.Errorf("DetectResource(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
