// Package dedup suppresses QoS-1 redeliveries by remembering message
// identifiers for a TTL.
package dedup

import (
	"sync"
	"time"
)

// Deduper is a bounded TTL'd seen-set. Safe for concurrent use.
type Deduper struct {
	mu   sync.Mutex
	ttl  time.Duration
	max  int
	seen map[string]time.Time // id -> expiry
}

func New(ttl time.Duration, max int) *Deduper {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if max <= 0 {
		max = 10000
	}
	return &Deduper{ttl: ttl, max: max, seen: make(map[string]time.Time, max)}
}

// ShouldProcess reports whether id has not been seen within the TTL,
// and marks it seen. An empty id is always processed.
func (d *Deduper) ShouldProcess(id string) bool {
	if id == "" {
		return true
	}
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if exp, ok := d.seen[id]; ok && now.Before(exp) {
		return false
	}
	d.seen[id] = now.Add(d.ttl)
	if len(d.seen) > d.max {
		d.pruneLocked(now)
	}
	return true
}

// pruneLocked evicts expired entries until the set fits the cap.
func (d *Deduper) pruneLocked(now time.Time) {
	for id, exp := range d.seen {
		if now.After(exp) {
			delete(d.seen, id)
		}
		if len(d.seen) <= d.max {
			return
		}
	}
}
