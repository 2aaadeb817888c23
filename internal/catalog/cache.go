// Package catalog caches per-owner deck catalog snapshots.
package catalog

import (
	"sync"
	"time"

	"github.com/jarnr/preconceive/internal/archidekt"
)

// DefaultTTL is how long a cached snapshot stays fresh.
const DefaultTTL = 300 * time.Second

// Snapshot is one owner's fetched catalog and the instant it was fetched.
// Snapshots are replaced wholesale on refresh, never mutated in place.
type Snapshot struct {
	Decks     []archidekt.Deck
	FetchedAt time.Time
}

// Cache maps owner usernames to catalog snapshots with a fixed TTL.
// An expired entry reads the same as a missing one. Entries are superseded
// on the next Put rather than evicted; key growth is bounded in practice
// because owners are validated against a small allow-list before lookup.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Snapshot
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a catalog cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]*Snapshot),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the owner's snapshot if one exists and is within TTL.
func (c *Cache) Get(owner string) (*Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap, ok := c.entries[owner]
	if !ok {
		return nil, false
	}
	if c.now().Sub(snap.FetchedAt) >= c.ttl {
		return nil, false
	}
	return snap, true
}

// Put stores a fresh snapshot for the owner, replacing any previous one.
// Concurrent refreshes for the same owner are not deduplicated; the later
// write wins.
func (c *Cache) Put(owner string, decks []archidekt.Deck) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[owner] = &Snapshot{
		Decks:     decks,
		FetchedAt: c.now(),
	}
}

// Len returns the number of cached owners, fresh or stale.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
