package client

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/samdwyer/labyrinth/internal/world"
)

// Entry is a chunk held by the cache.
type Entry struct {
	X, Y     int
	Tiles    []world.Tile
	Fallback bool  // Tiles came from Fallback because the fetch failed
	Err      error // fetch error behind a fallback
}

// Key formats chunk coordinates as "x,y".
func Key(x, y int) string {
	return strconv.Itoa(x) + "," + strconv.Itoa(y)
}

// Cache keeps loaded chunks keyed by coordinates. It is owned by a single
// goroutine and does no locking.
type Cache struct {
	chunks      map[string]Entry
	maxDistance int
}

// NewCache creates a cache that keeps chunks within maxDistance (Chebyshev)
// of the last eviction centre.
func NewCache(maxDistance int) *Cache {
	return &Cache{
		chunks:      make(map[string]Entry),
		maxDistance: maxDistance,
	}
}

// Get returns the cached chunk at (x, y).
func (c *Cache) Get(x, y int) (Entry, bool) {
	e, ok := c.chunks[Key(x, y)]
	return e, ok
}

// Put stores e, replacing any chunk at the same coordinates.
func (c *Cache) Put(e Entry) {
	c.chunks[Key(e.X, e.Y)] = e
}

// Delete removes the chunk at (x, y).
func (c *Cache) Delete(x, y int) {
	delete(c.chunks, Key(x, y))
}

// Len returns the number of cached chunks.
func (c *Cache) Len() int {
	return len(c.chunks)
}

// Evict drops every chunk farther than the cache's distance from (cx, cy)
// and returns how many were removed.
func (c *Cache) Evict(cx, cy int) int {
	removed := 0
	for key, e := range c.chunks {
		if chebyshev(e.X-cx, e.Y-cy) > c.maxDistance {
			delete(c.chunks, key)
			removed++
		}
	}
	return removed
}

func chebyshev(dx, dy int) int {
	return max(abs(dx), abs(dy))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Loader fills a Cache from a Fetcher, substituting the fallback chunk when
// a fetch fails so the viewer never blocks on a missing chunk.
type Loader struct {
	fetcher Fetcher
	cache   *Cache
	seed    string
	extent  int
	log     *zap.Logger
}

// NewLoader creates a loader for the world with the given seed and extent.
func NewLoader(fetcher Fetcher, cache *Cache, seed string, extent int, log *zap.Logger) *Loader {
	return &Loader{
		fetcher: fetcher,
		cache:   cache,
		seed:    seed,
		extent:  extent,
		log:     log,
	}
}

// Seed returns the world seed.
func (l *Loader) Seed() string {
	return l.seed
}

// InWorld reports whether (x, y) lies inside the world extent.
func (l *Loader) InWorld(x, y int) bool {
	return abs(x) <= l.extent && abs(y) <= l.extent
}

// Load returns the chunk at (x, y), fetching it on a cache miss.
func (l *Loader) Load(ctx context.Context, x, y int) Entry {
	if e, ok := l.cache.Get(x, y); ok {
		return e
	}

	e := Entry{X: x, Y: y}
	tiles, err := l.fetcher.FetchChunk(ctx, l.seed, x, y)
	if err != nil {
		l.log.Warn("using fallback chunk",
			zap.Int("x", x),
			zap.Int("y", y),
			zap.Error(err),
		)
		e.Tiles, e.Fallback, e.Err = Fallback(), true, err
	} else {
		l.log.Debug("loaded chunk", zap.Int("x", x), zap.Int("y", y))
		e.Tiles = tiles
	}
	l.cache.Put(e)
	return e
}

// LoadAround loads every in-world chunk within radius of (cx, cy), then
// evicts chunks that drifted out of the cache distance.
func (l *Loader) LoadAround(ctx context.Context, cx, cy, radius int) []Entry {
	entries := make([]Entry, 0, (2*radius+1)*(2*radius+1))
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if !l.InWorld(x, y) {
				continue
			}
			entries = append(entries, l.Load(ctx, x, y))
		}
	}
	if n := l.cache.Evict(cx, cy); n > 0 {
		l.log.Debug("evicted distant chunks", zap.Int("count", n))
	}
	return entries
}

// Reload discards any cached fallback at (x, y) and fetches it again.
func (l *Loader) Reload(ctx context.Context, x, y int) Entry {
	if e, ok := l.cache.Get(x, y); ok && !e.Fallback {
		return e
	}
	l.cache.Delete(x, y)
	return l.Load(ctx, x, y)
}
