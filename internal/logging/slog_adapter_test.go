// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newBufferedHandler(level zerolog.Level) (*SlogHandler, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewSlogHandlerWithLogger(zerolog.New(&buf).Level(level)), &buf
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h, _ := newBufferedHandler(zerolog.WarnLevel)
	tests := []struct {
		level slog.Level
		want  bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, false},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	}
	for _, tt := range tests {
		if got := h.Enabled(context.Background(), tt.level); got != tt.want {
			t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     slog.Level
		wantLevel string
	}{
		{"debug", slog.LevelDebug, `"level":"debug"`},
		{"info", slog.LevelInfo, `"level":"info"`},
		{"warn", slog.LevelWarn, `"level":"warn"`},
		{"error", slog.LevelError, `"level":"error"`},
		{"below debug", slog.LevelDebug - 4, `"level":"trace"`},
		{"between levels", slog.LevelInfo + 2, `"level":"info"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, buf := newBufferedHandler(zerolog.TraceLevel)

			record := slog.NewRecord(time.Now(), tt.level, "service restarted", 0)
			record.AddAttrs(slog.String("service", "http"), slog.Int("attempt", 2))
			if err := h.Handle(context.Background(), record); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			out := buf.String()
			for _, want := range []string{tt.wantLevel, `"service":"http"`, `"attempt":2`, "service restarted"} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %s: %s", want, out)
				}
			}
		})
	}
}

func TestSlogHandler_WithAttrsAndGroups(t *testing.T) {
	t.Parallel()

	h, buf := newBufferedHandler(zerolog.TraceLevel)
	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("supervisor", "root")}).WithGroup("event"))

	logger.Info("backoff", slog.Duration("wait", time.Second), slog.Group("svc", slog.String("name", "ws")))

	out := buf.String()
	for _, want := range []string{`"event.supervisor":"root"`, `"event.wait":`, `"event.svc.name":"ws"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}

	if h.WithGroup("") != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestAddAttrKinds(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	e := zerolog.New(&buf).Info()
	for _, a := range []slog.Attr{
		slog.Bool("ok", true),
		slog.Float64("kwh", 12.5),
		slog.Uint64("rows", 7),
		slog.Int64("count", -1),
		slog.Time("at", now),
		slog.Any("list", []int{1, 2}),
	} {
		e = addAttr(e, a, nil)
	}
	e.Msg("kinds")

	out := buf.String()
	for _, want := range []string{`"ok":true`, `"kwh":12.5`, `"rows":7`, `"count":-1`, `"at":"2026-02-03T04:05:06Z"`, `"list":[1,2]`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestNewComponentSlogLogger(t *testing.T) {
	buf := captureGlobal(t)
	SetLevelString("info")

	NewComponentSlogLogger("supervisor").Warn("service failed")

	out := buf.String()
	if !strings.Contains(out, `"component":"supervisor"`) || !strings.Contains(out, "service failed") {
		t.Errorf("unexpected output: %s", out)
	}
}
