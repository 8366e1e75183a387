package availability

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrimsync/internal/weekclock"
)

type cacheKey struct {
	teamID string
	weekID weekclock.WeekID
}

// Cache is a read-through snapshot cache over the availability store.
// Consumers get deep-copied records, so matching computations stay pure
// even while writes land concurrently. Invalidation is push-based: writers
// (or the pubsub push handlers) call Invalidate, and subscribers registered
// with Subscribe are told which (team, week) changed.
type Cache struct {
	store AvailabilityStore

	mu      sync.RWMutex
	entries map[cacheKey]*Record
	subs    []func(teamID string, weekID weekclock.WeekID)
}

// NewCache creates a cache backed by the given store.
func NewCache(store AvailabilityStore) *Cache {
	return &Cache{
		store:   store,
		entries: make(map[cacheKey]*Record),
	}
}

// Snapshot returns an immutable copy of the team's record for the week,
// loading it through the store on a miss.
func (c *Cache) Snapshot(teamID string, weekID weekclock.WeekID) (*Record, error) {
	key := cacheKey{teamID, weekID}

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return cached.Clone(), nil
	}

	record, err := c.store.GetRecord(teamID, weekID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = record
	c.mu.Unlock()
	return record.Clone(), nil
}

// Invalidate drops the cached entry for (team, week) and notifies
// subscribers. Safe to call for entries that were never cached.
func (c *Cache) Invalidate(teamID string, weekID weekclock.WeekID) {
	c.mu.Lock()
	delete(c.entries, cacheKey{teamID, weekID})
	subs := append(([]func(string, weekclock.WeekID))(nil), c.subs...)
	c.mu.Unlock()

	log.Debug("Invalidated availability cache", "team", teamID, "week", weekID)
	for _, fn := range subs {
		fn(teamID, weekID)
	}
}

// Subscribe registers a callback invoked on every invalidation. Callbacks
// run synchronously on the invalidating goroutine and must not block.
func (c *Cache) Subscribe(fn func(teamID string, weekID weekclock.WeekID)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}
