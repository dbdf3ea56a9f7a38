// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/models"
)

type upsertKey struct {
	date     string
	resource models.ResourceType
}

// fakeStore is an in-memory ReadingWriter.
type fakeStore struct {
	mu      sync.Mutex
	values  map[upsertKey]float64
	failOn  string
	upserts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[upsertKey]float64)}
}

func (s *fakeStore) UpsertReading(_ context.Context, date time.Time, resource models.ResourceType, value float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.upserts++
	d := calendar.FormatDate(date)
	if d == s.failOn {
		return false, errors.New("write conflict")
	}
	k := upsertKey{d, resource}
	_, existed := s.values[k]
	s.values[k] = value
	return !existed, nil
}

type fakePublisher struct {
	published []*models.ImportSummary
}

func (p *fakePublisher) PublishReadingsImported(_ context.Context, summary *models.ImportSummary) error {
	p.published = append(p.published, summary)
	return nil
}

func TestValidateUpload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		size     int64
		want     error
	}{
		{"csv", "export.csv", 10, nil},
		{"txt upper case", "EXPORT.TXT", 10, nil},
		{"empty", "export.csv", 0, ErrEmptyUpload},
		{"no name", "", 10, ErrEmptyUpload},
		{"xlsx", "export.xlsx", 10, ErrUnsupportedFileKind},
		{"no extension", "export", 10, ErrUnsupportedFileKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidateUpload(tt.filename, tt.size); !errors.Is(err, tt.want) {
				t.Errorf("ValidateUpload(%q, %d) = %v, want %v", tt.filename, tt.size, err, tt.want)
			}
		})
	}
}

func TestImporterCountsInsertsAndOverwrites(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	history := NewInMemoryHistory(10)
	publisher := &fakePublisher{}
	imp := NewImporter(store, history, publisher, 0)
	ctx := context.Background()

	first := "\"Datum\";\"El kWh\"\n\"2026-01-29\";\"1,0\"\n\"2026-01-30\";\"2,0\"\n\"bad\";\"3,0\""
	summary, err := imp.ImportFile(ctx, "first.csv", []byte(first))
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if summary.Inserted != 2 || summary.Overwritten != 0 || summary.ErrorCount != 1 {
		t.Errorf("first import = %+v", summary)
	}
	if summary.From != "2026-01-29" || summary.To != "2026-01-30" {
		t.Errorf("range = %s..%s", summary.From, summary.To)
	}
	if summary.ID == "" {
		t.Error("summary ID should be set")
	}

	second := "\"Datum\";\"El kWh\"\n\"2026-01-30\";\"5,0\"\n\"2026-01-31\";\"6,0\""
	summary, err = imp.ImportText(ctx, "paste", second)
	if err != nil {
		t.Fatalf("ImportText() error = %v", err)
	}
	if summary.Inserted != 1 || summary.Overwritten != 1 || summary.ErrorCount != 0 {
		t.Errorf("second import = %+v", summary)
	}
	if got := store.values[upsertKey{"2026-01-30", models.ResourceElectric}]; got != 5 {
		t.Errorf("overwritten value = %v, want 5", got)
	}

	entries, err := history.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Source != "paste" {
		t.Errorf("history = %+v", entries)
	}
	if len(publisher.published) != 2 {
		t.Errorf("published %d events, want 2", len(publisher.published))
	}
}

func TestImporterStoreFailuresContinue(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failOn = "2026-01-30"
	imp := NewImporter(store, nil, nil, 0)

	text := "Datum;El\n2026-01-29;1\n2026-01-30;2\n2026-01-31;3"
	summary, err := imp.ImportText(context.Background(), "paste", text)
	if err != nil {
		t.Fatalf("ImportText() error = %v", err)
	}
	if summary.Inserted != 2 || summary.Failed != 1 || summary.ErrorCount != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if store.upserts != 3 {
		t.Errorf("upserts = %d, want 3", store.upserts)
	}
}

func TestImporterRejectsMalformedBatches(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	imp := NewImporter(store, nil, nil, 16)
	ctx := context.Background()

	if _, err := imp.ImportFile(ctx, "data.xlsx", []byte("x")); !errors.Is(err, ErrUnsupportedFileKind) {
		t.Errorf("xlsx error = %v", err)
	}
	if _, err := imp.ImportFile(ctx, "data.csv", nil); !errors.Is(err, ErrEmptyUpload) {
		t.Errorf("empty error = %v", err)
	}
	if _, err := imp.ImportText(ctx, "paste", "\uFEFF \n "); !errors.Is(err, ErrEmptyUpload) {
		t.Errorf("blank text error = %v", err)
	}
	if _, err := imp.ImportText(ctx, "paste", "Datum;El\n2026-01-29;1\n2026-01-30;2"); !errors.Is(err, ErrUploadTooLarge) {
		t.Errorf("oversize error = %v", err)
	}
	if store.upserts != 0 {
		t.Errorf("no rows should be written, got %d", store.upserts)
	}
}

func TestImporterCanceledContext(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	imp := NewImporter(store, nil, nil, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := imp.ImportText(ctx, "paste", "Datum;El\n2026-01-29;1")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
