// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

func TestWatermillAdapter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	adapter := NewWatermillAdapterWithLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

	adapter.Info("Subscribed", watermill.LogFields{"topic": "readings.imported"})
	adapter.Error("Handler failed", errors.New("cache gone"), watermill.LogFields{"handler": "invalidate"})
	adapter.Debug("Message acked", nil)
	adapter.Trace("Raw", watermill.LogFields{"n": 1})

	scoped := adapter.With(watermill.LogFields{"router": "main"})
	scoped.Info("Started", watermill.LogFields{"b": 2, "a": 1})

	out := buf.String()
	for _, want := range []string{
		`"topic":"readings.imported"`,
		`"error":"cache gone"`,
		`"handler":"invalidate"`,
		`"level":"debug"`,
		`"level":"trace"`,
		`"router":"main"`,
		`"a":1,"b":2`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}
