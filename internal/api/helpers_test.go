// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/utilitrack/internal/analytics"
	"github.com/tomtom215/utilitrack/internal/cache"
	"github.com/tomtom215/utilitrack/internal/calendar"
	"github.com/tomtom215/utilitrack/internal/config"
	"github.com/tomtom215/utilitrack/internal/database"
	"github.com/tomtom215/utilitrack/internal/ingest"
	"github.com/tomtom215/utilitrack/internal/logging"
	"github.com/tomtom215/utilitrack/internal/middleware"
	"github.com/tomtom215/utilitrack/internal/models"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{Level: "error", Format: "json", Output: io.Discard})
}

// testDBSemaphore allows one DuckDB instance at a time across parallel tests.
var testDBSemaphore = make(chan struct{}, 1)

// testToday is Wednesday of ISO week 2024-W11.
var testToday = time.Date(2024, time.March, 13, 9, 30, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB", Threads: 2})
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu      sync.Mutex
	imports []*models.ImportSummary
	targets []string
	err     error
}

func (p *recordingPublisher) PublishReadingsImported(_ context.Context, s *models.ImportSummary) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.imports = append(p.imports, s)
	return p.err
}

func (p *recordingPublisher) PublishTargetsChanged(_ context.Context, action string, t *models.Target) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.targets = append(p.targets, action+":"+string(t.ResourceType))
	return p.err
}

func (p *recordingPublisher) targetEvents() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.targets...)
}

func (p *recordingPublisher) importCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.imports)
}

type testEnv struct {
	db      *database.DB
	cfg     *config.Config
	cache   *cache.Cache
	events  *recordingPublisher
	handler *Handler
	router  http.Handler
}

type envOption func(*config.Config)

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	return newTestEnvWithClock(t, analytics.FixedClock(testToday), opts...)
}

func newTestEnvWithClock(t *testing.T, clock analytics.Clock, opts ...envOption) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.Import.MaxUploadBytes = 1 << 20
	cfg.Import.HistoryLimit = 50
	for _, opt := range opts {
		opt(cfg)
	}

	db := setupTestDB(t)
	events := &recordingPublisher{}
	engine := analytics.NewEngine(db, analytics.Config{
		Clock:    clock,
		Location: time.UTC,
	})
	reportCache := cache.New("test", time.Minute)
	importer := ingest.NewImporter(db, ingest.NewInMemoryHistory(cfg.Import.HistoryLimit), events, cfg.Import.MaxUploadBytes)

	h := NewHandler(db, engine, reportCache, importer, cfg, nil)
	h.SetEventPublisher(events)

	return &testEnv{
		db:      db,
		cfg:     cfg,
		cache:   reportCache,
		events:  events,
		handler: h,
		router:  NewRouter(h, nil).SetupChi(),
	}
}

func (e *testEnv) seed(t *testing.T, resource models.ResourceType, values map[string]float64) {
	t.Helper()
	for day, v := range values {
		d, err := calendar.ParseDate(day)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", day, err)
		}
		if _, err := e.db.UpsertReading(context.Background(), d, resource, v); err != nil {
			t.Fatalf("UpsertReading(%s): %v", day, err)
		}
	}
}

type requestOption func(*http.Request)

func withResource(resource models.ResourceType) requestOption {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: middleware.ResourceCookieName, Value: string(resource)})
	}
}

func withBasicAuth(user, pass string) requestOption {
	return func(r *http.Request) { r.SetBasicAuth(user, pass) }
}

func withContentType(ct string) requestOption {
	return func(r *http.Request) { r.Header.Set("Content-Type", ct) }
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(t *testing.T, method, target, body string, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	opts = append([]requestOption{withContentType("application/json")}, opts...)
	return e.do(t, method, target, strings.NewReader(body), opts...)
}

// envelope mirrors models.APIResponse with the payload left undecoded.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) envelope {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Fatalf("status = %q, error = %+v", env.Status, env.Error)
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
	return env
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

func expectErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, rec, status)
	env := decodeEnvelope(t, rec)
	if env.Status != "error" || env.Error == nil || env.Error.Code != code {
		t.Fatalf("error = %+v, want code %s", env.Error, code)
	}
}
