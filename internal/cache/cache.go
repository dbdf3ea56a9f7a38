// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/utilitrack/internal/logging"
	"github.com/tomtom215/utilitrack/internal/metrics"
)

// DefaultCleanupInterval is how often Serve sweeps expired entries.
const DefaultCleanupInterval = time.Minute

// Entry is a cached value with its expiry.
type Entry struct {
	Data      any
	ExpiresAt time.Time
}

// Stats are cache counters.
type Stats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Evictions   int64     `json:"evictions"`
	TotalKeys   int64     `json:"total_keys"`
	LastCleanup time.Time `json:"last_cleanup"`
}

// Cache is a thread-safe TTL cache for computed reports.
//
// Expired entries are dropped lazily by Get and in bulk by the sweep that
// Serve runs until its context is canceled. Clear drops everything and is
// called whenever stored readings or targets change.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	name    string

	statsMu sync.Mutex
	stats   Stats

	interval time.Duration
	now      func() time.Time
}

// New creates a cache whose entries live for ttl. name labels its metrics.
func New(name string, ttl time.Duration) *Cache {
	return &Cache{
		entries:  make(map[string]Entry),
		ttl:      ttl,
		name:     name,
		interval: DefaultCleanupInterval,
		now:      time.Now,
		stats:    Stats{LastCleanup: time.Now()},
	}
}

// Get returns the value stored under key if it has not expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		// re-check: a concurrent Set may have refreshed the entry
		if current, still := c.entries[key]; still && c.now().After(current.ExpiresAt) {
			delete(c.entries, key)
			c.count(func(s *Stats) { s.Evictions++ })
		}
		c.mu.Unlock()
		ok = false
	}

	metrics.RecordCacheLookup(c.name, ok)
	if !ok {
		c.count(func(s *Stats) { s.Misses++ })
		return nil, false
	}
	c.count(func(s *Stats) { s.Hits++ })
	return entry.Data, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key for ttl.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = Entry{Data: value, ExpiresAt: c.now().Add(ttl)}
	n := int64(len(c.entries))
	c.mu.Unlock()

	c.count(func(s *Stats) { s.TotalKeys = n })
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	n := int64(len(c.entries))
	c.mu.Unlock()

	c.count(func(s *Stats) {
		if ok {
			s.Evictions++
		}
		s.TotalKeys = n
	})
}

// DeletePrefix removes every key starting with prefix and returns how many
// were removed.
func (c *Cache) DeletePrefix(prefix string) int {
	c.mu.Lock()
	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	n := int64(len(c.entries))
	c.mu.Unlock()

	c.count(func(s *Stats) {
		s.Evictions += int64(removed)
		s.TotalKeys = n
	})
	return removed
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	evicted := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.count(func(s *Stats) {
		s.Evictions += evicted
		s.TotalKeys = 0
	})
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of the counters.
func (c *Cache) GetStats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// HitRate returns hits as a percentage of lookups.
func (c *Cache) HitRate() float64 {
	s := c.GetStats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Serve sweeps expired entries until ctx is canceled. It implements
// suture.Service.
func (c *Cache) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := c.cleanup(); removed > 0 {
				logging.Debug().Str("cache", c.name).Int("removed", removed).Msg("Swept expired cache entries")
			}
		}
	}
}

// String names the service for the supervisor.
func (c *Cache) String() string {
	return "cache-janitor:" + c.name
}

func (c *Cache) cleanup() int {
	now := c.now()
	c.mu.Lock()
	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	n := int64(len(c.entries))
	c.mu.Unlock()

	c.count(func(s *Stats) {
		s.Evictions += int64(removed)
		s.TotalKeys = n
		s.LastCleanup = now
	})
	return removed
}

func (c *Cache) count(update func(*Stats)) {
	c.statsMu.Lock()
	update(&c.stats)
	c.statsMu.Unlock()
}

// GenerateKey builds a compact key from a prefix and JSON-serializable
// parameters. Equal parameters always produce the same key.
func GenerateKey(prefix string, params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", prefix, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", prefix, hash[:16])
}

// ResourcePrefix is the key prefix shared by every report of one resource.
func ResourcePrefix(resource string) string {
	return resource + "/"
}

// ResourceKey builds a report key scoped to a resource so one import can
// invalidate only that resource's entries.
func ResourceKey(resource, report string, params any) string {
	return GenerateKey(ResourcePrefix(resource)+report, params)
}
