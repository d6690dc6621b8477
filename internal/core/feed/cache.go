package feed

import (
	"log/slog"
	"sync"
	"time"

	"Chatty/internal/core/content"
)

// cacheEntry is one user's cached feed
type cacheEntry struct {
	posts    []content.Post
	cachedAt time.Time
	ttl      time.Duration
}

// Cache is an in-memory TTL cache mapping a user ID to their most recently
// assembled feed. Invalidations are tracked with a per-user high-water mark
// so a populate that raced an invalidation can be detected and refused: a
// notification processed between read and populate must never be lost to the
// late write.
type Cache struct {
	mu       sync.RWMutex
	entries  map[int64]*cacheEntry
	marks    map[int64]uint64 // userID -> stamp of the latest invalidation
	seq      uint64
	ttl      time.Duration
	emptyTTL time.Duration
	logger   *slog.Logger
}

// NewCache creates a feed cache. ttl bounds the age of a cached feed;
// emptyTTL is the much shorter bound used for empty feeds, so a just-added
// first follow shows up quickly.
func NewCache(ttl, emptyTTL time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		entries:  make(map[int64]*cacheEntry),
		marks:    make(map[int64]uint64),
		ttl:      ttl,
		emptyTTL: emptyTTL,
		logger:   logger,
	}
}

// Get returns the cached feed for userID if present and not expired.
// An expired entry is removed and reported as a miss.
func (c *Cache) Get(userID int64) ([]content.Post, bool) {
	c.mu.RLock()
	entry, ok := c.entries[userID]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Since(entry.cachedAt) > entry.ttl {
		c.mu.Lock()
		// Re-check under write lock: a put may have landed in between
		if current, still := c.entries[userID]; still && current == entry {
			delete(c.entries, userID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return entry.posts, true
}

// Snapshot returns the current invalidation stamp for userID. Take it
// before assembling a feed and hand it back to PutIfFresh.
func (c *Cache) Snapshot(userID int64) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.marks[userID]
}

// Put unconditionally overwrites the entry for userID with a fresh timestamp
func (c *Cache) Put(userID int64, posts []content.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(userID, posts)
}

// PutIfFresh stores the assembled feed unless an invalidation newer than
// stamp has been recorded for userID. Returns false when the write was
// refused because the feed is already known to be stale.
func (c *Cache) PutIfFresh(userID int64, posts []content.Post, stamp uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.marks[userID] > stamp {
		c.logger.Debug("feed cache populate refused, invalidated during assembly",
			"user", userID,
			"stamp", stamp,
			"mark", c.marks[userID])
		return false
	}

	c.store(userID, posts)
	return true
}

// Invalidate drops the entry for userID and records the invalidation.
// A no-op when no entry exists; safe to call speculatively.
func (c *Cache) Invalidate(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked(userID)
}

// InvalidateMany invalidates every user in the batch. Entries already
// removed stay removed, so at-least-once redelivery is harmless.
func (c *Cache) InvalidateMany(userIDs []int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, userID := range userIDs {
		c.invalidateLocked(userID)
	}
}

// Len returns the number of cached feeds
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) store(userID int64, posts []content.Post) {
	ttl := c.ttl
	if len(posts) == 0 {
		ttl = c.emptyTTL
	}
	c.entries[userID] = &cacheEntry{
		posts:    posts,
		cachedAt: time.Now(),
		ttl:      ttl,
	}
}

func (c *Cache) invalidateLocked(userID int64) {
	c.seq++
	c.marks[userID] = c.seq
	delete(c.entries, userID)
}
