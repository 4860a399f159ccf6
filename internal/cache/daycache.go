// Package cache holds the per-day dashboard cache. Entries are keyed by
// plot, series kind and date, so yesterday's series never answers a query
// for today.
package cache

import (
	"fmt"
	"sync"
	"time"
)

const keyPrefix = "airvana_v1"

// Key builds the canonical cache key for a plot's series on a date
// (YYYY-MM-DD).
func Key(plotID, kind, date string) string {
	return fmt.Sprintf("%s_%s_%s_%s", keyPrefix, plotID, kind, date)
}

// DayCache is a bounded in-memory map. When full, entries whose key does
// not carry today's date are pruned first; only then does insertion
// refuse. There is no TTL: staleness is encoded in the key itself.
type DayCache struct {
	mu         sync.Mutex
	entries    map[string]any
	maxEntries int
	today      func() string
}

func NewDayCache(maxEntries int) *DayCache {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &DayCache{
		entries:    make(map[string]any),
		maxEntries: maxEntries,
		today:      func() string { return time.Now().Format("2006-01-02") },
	}
}

func (c *DayCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *DayCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.pruneStale()
		if len(c.entries) >= c.maxEntries {
			return
		}
	}
	c.entries[key] = value
}

// Invalidate drops every entry for the given plot, regardless of kind or
// date. Used after a plot mutation changes the underlying series.
func (c *DayCache) Invalidate(plotID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := fmt.Sprintf("%s_%s_", keyPrefix, plotID)
	for k := range c.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.entries, k)
		}
	}
}

func (c *DayCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// pruneStale removes entries not keyed on today's date. Keys end in
// _YYYY-MM-DD, so a suffix check suffices.
func (c *DayCache) pruneStale() {
	suffix := "_" + c.today()
	for k := range c.entries {
		if len(k) < len(suffix) || k[len(k)-len(suffix):] != suffix {
			delete(c.entries, k)
		}
	}
}
