// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/models"
)

const (
	byteOrderMark = "\uFEFF"

	msgExpectedTwoFields = "Invalid format: expected 2 fields"

	// pastedDateWidth is the length of YYYY-MM-DD at the start of a pasted date field.
	pastedDateWidth = 10
)

// waterKeywords mark a header as belonging to a water export.
var waterKeywords = []string{"vatten", "water", "liter"}

// thousandsSpaces are stripped from water values before parsing.
var thousandsSpaces = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "")

// DetectResource classifies a batch from its header line.
func DetectResource(header string) models.ResourceType {
	lower := strings.ToLower(header)
	for _, kw := range waterKeywords {
		if strings.Contains(lower, kw) {
			return models.ResourceWater
		}
	}
	return models.ResourceElectric
}

// Parse normalizes raw export text into readings. It never fails as a whole:
// rows that cannot be parsed are reported in ParseResult.Errors and the rest
// are returned in source order.
func Parse(text string) models.ParseResult {
	text = strings.TrimPrefix(text, byteOrderMark)
	lines := strings.Split(text, "\n")

	result := models.ParseResult{
		Readings:     make([]models.Reading, 0, len(lines)),
		Errors:       make([]models.LineError, 0),
		ResourceType: DetectResource(lines[0]),
	}

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		reading, msg := parseLine(line, result.ResourceType)
		if msg != "" {
			result.Errors = append(result.Errors, models.LineError{Line: i + 1, Message: msg})
			continue
		}
		result.Readings = append(result.Readings, reading)
	}

	return result
}

// parseLine converts one data line. A non-empty message means the row was rejected.
// Panics are recovered so one malformed row cannot abort the batch.
func parseLine(line string, resource models.ResourceType) (reading models.Reading, msg string) {
	defer func() {
		if r := recover(); r != nil {
			reading = models.Reading{}
			msg = fmt.Sprint(r)
		}
	}()

	dateField, valueField, ok := splitFields(line)
	if !ok {
		return models.Reading{}, msgExpectedTwoFields
	}

	date, err := calendar.ParseDate(dateField)
	if err != nil {
		return models.Reading{}, "Invalid date format: " + dateField
	}

	value, ok := parseValue(valueField, resource)
	if !ok {
		return models.Reading{}, fmt.Sprintf("Invalid %s value: %s", resource.Unit(), valueField)
	}

	return models.Reading{Date: date, Value: value, ResourceType: resource}, ""
}

// splitFields returns the date and value fields of a line in either form.
func splitFields(line string) (dateField, valueField string, ok bool) {
	if strings.Contains(line, "\t") {
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return "", "", false
		}
		dateField = strings.TrimSpace(unquote(fields[0]))
		if len(dateField) > pastedDateWidth {
			dateField = dateField[:pastedDateWidth]
		}
		return dateField, strings.TrimSpace(unquote(fields[1])), true
	}

	fields := strings.Split(line, ";")
	if len(fields) < 2 {
		return "", "", false
	}
	return strings.TrimSpace(unquote(fields[0])), strings.TrimSpace(unquote(fields[1])), true
}

func unquote(field string) string {
	field = strings.TrimSpace(field)
	if len(field) >= 2 && strings.HasPrefix(field, `"`) && strings.HasSuffix(field, `"`) {
		return field[1 : len(field)-1]
	}
	return field
}

// parseValue reads a number written with a decimal comma.
func parseValue(s string, resource models.ResourceType) (float64, bool) {
	if resource == models.ResourceWater {
		s = thousandsSpaces.Replace(s)
	}
	s = strings.Replace(s, ",", ".", 1)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
