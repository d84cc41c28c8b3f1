package cache

import (
	"sort"
	"sync"
	"time"

	"FractalExplorer/render"

	"github.com/BrugadaSyndrome/bslogger"
)

const (
	DefaultMaxEntries = 100
	DefaultMaxAge     = 300 * time.Second
)

// Stats are counters over the life of a cache.
type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	Expirations uint64
}

type entry struct {
	createdAt time.Time
	image     *render.Image
	region    ViewRegion
	sequence  uint64
}

// Cache keeps recently rendered images by region. Entries older than the max age are never returned, and inserting
// into a full cache first drops expired entries and then the oldest ones.
type Cache struct {
	entries    map[ViewRegion]*entry
	logger     bslogger.Logger
	maxAge     time.Duration
	maxEntries int
	mutex      sync.Mutex
	now        func() time.Time
	sequence   uint64
	stats      Stats
}

// New creates a cache. Non-positive limits fall back to the defaults.
func New(maxEntries int, maxAge time.Duration) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Cache{
		entries:    make(map[ViewRegion]*entry, maxEntries),
		logger:     bslogger.NewLogger("RegionCache", bslogger.Normal, nil),
		maxAge:     maxAge,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// SetClock replaces the time source.
func (c *Cache) SetClock(now func() time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = now
}

// Get returns the image stored for region if it is younger than the max age. Expired entries stay in place until
// the next Insert needs room. Regions that are not cacheable always miss.
func (c *Cache) Get(region ViewRegion) (*render.Image, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	e, ok := c.entries[region]
	if !ok || !region.Cacheable() || e.image == nil || c.now().Sub(e.createdAt) >= c.maxAge {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return e.image, true
}

// Insert stores img for region with a fresh timestamp. Regions that are not cacheable are skipped.
func (c *Cache) Insert(region ViewRegion, img *render.Image) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !region.Cacheable() {
		c.logger.Debugf("Skipping uncacheable region %s", region)
		return
	}

	now := c.now()
	c.sequence++
	if e, ok := c.entries[region]; ok {
		e.image = img
		e.createdAt = now
		e.sequence = c.sequence
		return
	}

	if len(c.entries) >= c.maxEntries {
		c.purgeExpired(now)
	}
	if len(c.entries) >= c.maxEntries {
		c.evictOldest(len(c.entries) - c.maxEntries + 1)
	}

	c.entries[region] = &entry{
		createdAt: now,
		image:     img,
		region:    region,
		sequence:  c.sequence,
	}
}

func (c *Cache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if len(c.entries) > 0 {
		c.logger.Debugf("Clearing %d cached regions", len(c.entries))
	}
	c.entries = make(map[ViewRegion]*entry, c.maxEntries)
}

func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}

func (c *Cache) Stats() Stats {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.stats
}

func (c *Cache) purgeExpired(now time.Time) {
	for region, e := range c.entries {
		if now.Sub(e.createdAt) >= c.maxAge {
			delete(c.entries, region)
			c.stats.Expirations++
		}
	}
}

// evictOldest removes count entries in insertion order.
func (c *Cache) evictOldest(count int) {
	entries := make([]*entry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.createdAt.Equal(b.createdAt) {
			return a.createdAt.Before(b.createdAt)
		}
		return a.sequence < b.sequence
	})
	for _, e := range entries[:min(count, len(entries))] {
		delete(c.entries, e.region)
		c.stats.Evictions++
	}
}
