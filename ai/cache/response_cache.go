// Package cache provides the bounded TTL response cache for the companion.
// Keys are normalized so near-duplicate inputs collide intentionally; entries
// expire by TTL on read and by capacity pressure on write (oldest-inserted
// 20% evicted in one batch). The cache is a standalone utility: it knows
// nothing about personas or prompts beyond the normalized key.
package cache

import (
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"
)

// DefaultCapacity bounds the entry count before batch eviction kicks in.
const DefaultCapacity = 500

// evictFraction is the share of oldest entries dropped when over capacity.
const evictFraction = 0.2

// maxKeyLen truncates normalized keys so pathological inputs cannot grow the
// key space unbounded.
const maxKeyLen = 120

type entry struct {
	value      string
	insertedAt time.Time
	ttl        time.Duration
}

// ResponseCache is a bounded key/value cache for generated responses.
//
// The zero value is not usable; construct with New. The clock is injectable
// so TTL behavior is testable without sleeping.
type ResponseCache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	capacity int
	now      func() time.Time
}

// Option configures a ResponseCache.
type Option func(*ResponseCache)

// WithClock replaces the cache's time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *ResponseCache) { c.now = now }
}

// New creates a ResponseCache holding at most capacity entries.
// Non-positive capacity falls back to DefaultCapacity.
func New(capacity int, opts ...Option) *ResponseCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &ResponseCache{
		entries:  make(map[string]*entry),
		capacity: capacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key. Expired entries are evicted on read
// and reported as a miss; a miss is never an error condition.
func (c *ResponseCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().Sub(e.insertedAt) >= e.ttl {
		delete(c.entries, key)
		return "", false
	}
	return e.value, true
}

// Set stores value under key with the given TTL, then opportunistically
// applies capacity pressure: if the cache is over capacity, the oldest 20%
// of entries (by insertion time) are evicted in one batch. There is no
// background timer; eviction only happens here.
func (c *ResponseCache) Set(key, value string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry{
		value:      value,
		insertedAt: c.now(),
		ttl:        ttl,
	}

	if len(c.entries) > c.capacity {
		c.evictOldestBatch()
	}
}

// Size returns the current entry count.
func (c *ResponseCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// evictOldestBatch drops the oldest-inserted 20% of entries.
// Must be called with the lock held.
func (c *ResponseCache) evictOldestBatch() {
	type keyed struct {
		key        string
		insertedAt time.Time
	}
	all := make([]keyed, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, keyed{key: k, insertedAt: e.insertedAt})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].insertedAt.Before(all[j].insertedAt)
	})

	drop := int(float64(len(all)) * evictFraction)
	if drop < 1 {
		drop = 1
	}
	for _, k := range all[:drop] {
		delete(c.entries, k.key)
	}
}

// NormalizeKey builds a cache key from its parts: lowercase, punctuation
// stripped, whitespace collapsed, truncated. Near-duplicate inputs ("Hi!!"
// vs "hi") normalize to the same key on purpose.
func NormalizeKey(parts ...string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(normalizePart(part))
	}
	key := b.String()
	if runes := []rune(key); len(runes) > maxKeyLen {
		key = string(runes[:maxKeyLen])
	}
	return key
}

func normalizePart(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// Punctuation and symbols are dropped.
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
