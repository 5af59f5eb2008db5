// Package dedupe provides a bounded TTL seen-set. The reporter uses it to
// recognize Kafka redeliveries: the broker guarantees at-least-once, so the
// same search summary can arrive more than once.
package dedupe

import (
	"sync"
	"time"
)

type entry struct {
	key string
	ts  time.Time
}

// Tracker remembers recently observed keys inside a TTL window, evicting the
// oldest entries once capacity is reached. Safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	items    map[string]time.Time
	order    []entry
	capacity int
	ttl      time.Duration
}

// NewTracker creates a tracker with the provided capacity and ttl.
func NewTracker(capacity int, ttl time.Duration) *Tracker {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Tracker{
		items:    make(map[string]time.Time, capacity),
		order:    make([]entry, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
	}
}

// Observe records the key and reports whether this is its first observation
// inside the ttl window. A repeat observation returns false and does not
// refresh the original timestamp.
func (t *Tracker) Observe(key string) bool {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if ts, ok := t.items[key]; ok && now.Sub(ts) <= t.ttl {
		return false
	}

	t.items[key] = now
	t.order = append(t.order, entry{key: key, ts: now})
	t.compact(now)
	return true
}

func (t *Tracker) compact(now time.Time) {
	cutoff := now.Add(-t.ttl)

	for len(t.order) > 0 && (len(t.items) > t.capacity || t.order[0].ts.Before(cutoff)) {
		oldest := t.order[0]
		t.order = t.order[1:]

		if ts, ok := t.items[oldest.key]; ok && ts.Equal(oldest.ts) {
			delete(t.items, oldest.key)
		}
	}
}
