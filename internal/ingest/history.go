// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/utilitrack/internal/models"
)

const (
	// historyPrefix namespaces import history entries in BadgerDB.
	historyPrefix = "import:history:"

	// DefaultHistoryLimit bounds the number of retained entries.
	DefaultHistoryLimit = 100
)

// History records completed imports, newest first.
type History interface {
	// Record stores the summary of a finished import.
	Record(ctx context.Context, summary *models.ImportSummary) error

	// List returns up to limit summaries, newest first. limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]models.ImportSummary, error)
}

// BadgerHistory implements History on BadgerDB so entries survive restarts.
type BadgerHistory struct {
	db    *badger.DB
	limit int
	owned bool
}

// NewBadgerHistory wraps an open BadgerDB. The caller keeps ownership of db.
func NewBadgerHistory(db *badger.DB, limit int) *BadgerHistory {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &BadgerHistory{db: db, limit: limit}
}

// OpenBadgerHistory opens a BadgerDB at path and returns a history that owns it.
func OpenBadgerHistory(path string, limit int) (*BadgerHistory, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open import history: %w", err)
	}

	h := NewBadgerHistory(db, limit)
	h.owned = true
	return h, nil
}

// Close releases the database if this history opened it.
func (h *BadgerHistory) Close() error {
	if !h.owned {
		return nil
	}
	return h.db.Close()
}

func historyKey(summary *models.ImportSummary) []byte {
	// Zero-padded nanoseconds keep keys in chronological order.
	return []byte(fmt.Sprintf("%s%020d:%s", historyPrefix, summary.CompletedAt.UnixNano(), summary.ID))
}

// gcDiscardRatio is the share of stale data a value log file needs before
// it is rewritten.
const gcDiscardRatio = 0.5

// RunGC reclaims value log space left by pruned entries. Having nothing to
// rewrite is not an error.
func (h *BadgerHistory) RunGC(_ context.Context) error {
	for {
		err := h.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) ||
			errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("import history gc: %w", err)
		}
	}
}

// Record persists the summary and prunes entries beyond the retention limit.
func (h *BadgerHistory) Record(_ context.Context, summary *models.ImportSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal import summary: %w", err)
	}

	if err := h.db.Update(func(txn *badger.Txn) error {
		return txn.Set(historyKey(summary), data)
	}); err != nil {
		return fmt.Errorf("record import: %w", err)
	}

	return h.prune()
}

// prune deletes everything older than the newest h.limit entries.
func (h *BadgerHistory) prune() error {
	var stale [][]byte

	err := h.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(historyPrefix)
		seen := 0
		for it.Seek(append([]byte(historyPrefix), 0xFF)); it.ValidForPrefix(prefix); it.Next() {
			seen++
			if seen > h.limit {
				stale = append(stale, it.Item().KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan import history: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	return h.db.Update(func(txn *badger.Txn) error {
		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns the newest entries first.
func (h *BadgerHistory) List(_ context.Context, limit int) ([]models.ImportSummary, error) {
	out := make([]models.ImportSummary, 0)

	err := h.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(historyPrefix)
		for it.Seek(append([]byte(historyPrefix), 0xFF)); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(out) >= limit {
				break
			}
			var summary models.ImportSummary
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &summary)
			}); err != nil {
				return err
			}
			out = append(out, summary)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list import history: %w", err)
	}

	return out, nil
}

// InMemoryHistory implements History without persistence.
// Used when no history path is configured and in tests.
type InMemoryHistory struct {
	mu      sync.RWMutex
	entries []models.ImportSummary
	limit   int
}

// NewInMemoryHistory creates an empty in-memory history.
func NewInMemoryHistory(limit int) *InMemoryHistory {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &InMemoryHistory{limit: limit}
}

// Record stores a copy of the summary.
func (h *InMemoryHistory) Record(_ context.Context, summary *models.ImportSummary) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry := *summary
	entry.LineErrors = append([]models.LineError(nil), summary.LineErrors...)
	h.entries = append([]models.ImportSummary{entry}, h.entries...)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
	return nil
}

// List returns copies of the newest entries first.
func (h *InMemoryHistory) List(_ context.Context, limit int) ([]models.ImportSummary, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := len(h.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.ImportSummary, n)
	copy(out, h.entries[:n])
	return out, nil
}
