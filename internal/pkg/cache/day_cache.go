package cache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Entry is a cached result computed for an inclusive range of days.
// An empty EmployeeID means the result spans every employee.
type Entry[V any] struct {
	Start      time.Time
	End        time.Time
	EmployeeID string
	Value      V
}

func (e Entry[V]) covers(employeeID string, start, end time.Time) bool {
	if e.EmployeeID != "" && employeeID != "" && e.EmployeeID != employeeID {
		return false
	}
	return !e.End.Before(start) && !e.Start.After(end)
}

// maxRecentInvalidations bounds the history PutIfFresh checks against. A writer whose
// snapshot predates the retained history is treated as stale.
const maxRecentInvalidations = 256

type invalidation struct {
	gen        uint64
	employeeID string
	start      time.Time
	end        time.Time
	all        bool
}

// DayCache is a bounded, TTL-expiring cache of day-range results.
type DayCache[V any] struct {
	lru *expirable.LRU[string, Entry[V]]

	mu     sync.Mutex
	gen    uint64
	recent []invalidation
}

func NewDayCache[V any](size int, ttl time.Duration) *DayCache[V] {
	return &DayCache[V]{
		lru: expirable.NewLRU[string, Entry[V]](size, nil, ttl),
	}
}

func (c *DayCache[V]) Get(key string) (V, bool) {
	entry, ok := c.lru.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return entry.Value, true
}

func (c *DayCache[V]) Put(key string, entry Entry[V]) {
	c.lru.Add(key, entry)
}

// Generation returns the invalidation counter. Take it before computing a value and
// hand it to PutIfFresh.
func (c *DayCache[V]) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// PutIfFresh stores entry unless an invalidation touching its range ran after since.
// It reports whether the entry was stored.
func (c *DayCache[V]) PutIfFresh(key string, entry Entry[V], since uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if since < c.gen {
		if c.gen-since > uint64(len(c.recent)) {
			return false
		}
		for _, inv := range c.recent {
			if inv.gen > since && (inv.all || entry.covers(inv.employeeID, inv.start, inv.end)) {
				return false
			}
		}
	}
	c.lru.Add(key, entry)
	return true
}

func (c *DayCache[V]) record(inv invalidation) {
	c.gen++
	inv.gen = c.gen
	c.recent = append(c.recent, inv)
	if len(c.recent) > maxRecentInvalidations {
		c.recent = append(c.recent[:0:0], c.recent[len(c.recent)-maxRecentInvalidations:]...)
	}
}

// InvalidateDays removes every entry touching [start, end] for employeeID.
// An empty employeeID invalidates entries of all employees.
func (c *DayCache[V]) InvalidateDays(employeeID string, start, end time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record(invalidation{employeeID: employeeID, start: start, end: end})

	removed := 0
	for _, key := range c.lru.Keys() {
		entry, ok := c.lru.Peek(key)
		if !ok || !entry.covers(employeeID, start, end) {
			continue
		}
		if c.lru.Remove(key) {
			removed++
		}
	}
	return removed
}

func (c *DayCache[V]) Len() int {
	return c.lru.Len()
}

func (c *DayCache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record(invalidation{all: true})
	c.lru.Purge()
}
