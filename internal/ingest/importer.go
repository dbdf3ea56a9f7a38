// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/logging"
	"github.com/tomtom215/utilitrack/internal/metrics"
	"github.com/tomtom215/utilitrack/internal/models"
)

// ReadingWriter is the store capability the importer needs.
type ReadingWriter interface {
	// UpsertReading inserts or overwrites the value for (date, resource).
	// It reports true when a new row was inserted.
	UpsertReading(ctx context.Context, date time.Time, resource models.ResourceType, value float64) (bool, error)
}

// EventPublisher announces completed imports.
type EventPublisher interface {
	PublishReadingsImported(ctx context.Context, summary *models.ImportSummary) error
}

// allowedExtensions are the accepted upload file kinds.
var allowedExtensions = map[string]bool{
	".csv": true,
	".txt": true,
}

// ValidateUpload rejects malformed batches before any parsing happens.
func ValidateUpload(filename string, size int64) error {
	if filename == "" || size == 0 {
		return ErrEmptyUpload
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(filename))] {
		return ErrUnsupportedFileKind
	}
	return nil
}

// Importer parses export text and upserts the readings.
type Importer struct {
	store     ReadingWriter
	history   History
	publisher EventPublisher
	maxBytes  int64

	// Serializes batches so counts are not interleaved.
	mu sync.Mutex

	now func() time.Time
}

// NewImporter creates an importer. history and publisher may be nil.
// maxBytes <= 0 disables the size check.
func NewImporter(store ReadingWriter, history History, publisher EventPublisher, maxBytes int64) *Importer {
	return &Importer{
		store:     store,
		history:   history,
		publisher: publisher,
		maxBytes:  maxBytes,
		now:       time.Now,
	}
}

// History returns the importer's history, which may be nil.
func (i *Importer) History() History {
	return i.history
}

// ImportFile validates an uploaded file and imports its contents.
func (i *Importer) ImportFile(ctx context.Context, filename string, data []byte) (*models.ImportSummary, error) {
	if err := ValidateUpload(filename, int64(len(data))); err != nil {
		return nil, err
	}
	return i.ImportText(ctx, filename, string(data))
}

// ImportText imports pasted or uploaded text. source names the origin for history.
func (i *Importer) ImportText(ctx context.Context, source, text string) (*models.ImportSummary, error) {
	if strings.TrimSpace(strings.TrimPrefix(text, byteOrderMark)) == "" {
		return nil, ErrEmptyUpload
	}
	if i.maxBytes > 0 && int64(len(text)) > i.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrUploadTooLarge, len(text), i.maxBytes)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	summary := &models.ImportSummary{
		ID:        uuid.NewString(),
		Source:    source,
		StartedAt: i.now().UTC(),
	}

	parsed := Parse(text)
	summary.ResourceType = parsed.ResourceType
	summary.Parsed = len(parsed.Readings)
	summary.LineErrors = parsed.Errors

	log := logging.Ctx(ctx).With().
		Str("import_id", summary.ID).
		Str("resource", string(parsed.ResourceType)).
		Logger()

	for _, r := range parsed.Readings {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("import canceled: %w", err)
		}

		inserted, err := i.store.UpsertReading(ctx, r.Date, r.ResourceType, r.Value)
		if err != nil {
			summary.Failed++
			log.Warn().Err(err).Str("date", calendar.FormatDate(r.Date)).Msg("Failed to upsert reading")
			continue
		}
		if inserted {
			summary.Inserted++
		} else {
			summary.Overwritten++
		}
	}

	summary.ErrorCount = len(parsed.Errors) + summary.Failed
	summary.From, summary.To = dateRange(parsed.Readings)
	summary.CompletedAt = i.now().UTC()
	summary.DurationMS = summary.CompletedAt.Sub(summary.StartedAt).Milliseconds()

	metrics.RecordImport(string(summary.ResourceType), summary.Inserted, summary.Overwritten,
		summary.Failed, len(parsed.Errors), summary.CompletedAt.Sub(summary.StartedAt))

	log.Info().
		Int("parsed", summary.Parsed).
		Int("inserted", summary.Inserted).
		Int("overwritten", summary.Overwritten).
		Int("errors", summary.ErrorCount).
		Str("from", summary.From).
		Str("to", summary.To).
		Msg("Import completed")

	if i.history != nil {
		if err := i.history.Record(ctx, summary); err != nil {
			log.Warn().Err(err).Msg("Failed to record import history")
		}
	}

	if i.publisher != nil && summary.Inserted+summary.Overwritten > 0 {
		if err := i.publisher.PublishReadingsImported(ctx, summary); err != nil {
			log.Warn().Err(err).Msg("Failed to publish import event")
		}
	}

	return summary, nil
}

// dateRange returns the earliest and latest dates of the readings.
func dateRange(readings []models.Reading) (from, to string) {
	if len(readings) == 0 {
		return "", ""
	}
	lo, hi := readings[0].Date, readings[0].Date
	for _, r := range readings[1:] {
		if r.Date.Before(lo) {
			lo = r.Date
		}
		if r.Date.After(hi) {
			hi = r.Date
		}
	}
	return calendar.FormatDate(lo), calendar.FormatDate(hi)
}
