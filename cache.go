package main

import (
	"sync"
	"time"
)

// snapshotCache bounds how often the external store is read. Entries are
// keyed by source identity and expire after ttl; writes to the store must
// call Invalidate so the writer sees their own data on the next read.
// The clock is injectable for deterministic expiry tests.
type snapshotCache struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	entries map[string]cacheEntry
}

type cacheEntry struct {
	snap      snapshot
	fetchedAt time.Time
}

// newSnapshotCache returns a cache with the given TTL. A nil clock uses
// time.Now.
func newSnapshotCache(ttl time.Duration, now func() time.Time) *snapshotCache {
	if now == nil {
		now = time.Now
	}
	return &snapshotCache{ttl: ttl, now: now, entries: make(map[string]cacheEntry)}
}

// Get returns the cached snapshot for key if it is still fresh.
func (c *snapshotCache) Get(key string) (snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return snapshot{}, false
	}
	if c.now().Sub(e.fetchedAt) > c.ttl {
		delete(c.entries, key)
		return snapshot{}, false
	}
	return e.snap, true
}

// Put stores a freshly loaded snapshot under key.
func (c *snapshotCache) Put(key string, snap snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{snap: snap, fetchedAt: c.now()}
}

// Invalidate drops every cached snapshot. Called immediately after any store
// write so the session that just submitted data reads it back.
func (c *snapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
