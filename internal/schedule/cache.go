package schedule

import "sync"

// dayIndex is the busy intervals of one calendar keyed by date, sorted by start
type dayIndex struct {
	days    map[string][]Interval
	skipped int
}

// intervalCache lazily holds one dayIndex per calendar index
type intervalCache struct {
	mu      sync.Mutex
	entries map[int]*dayIndex
}

func newIntervalCache() *intervalCache {
	return &intervalCache{entries: make(map[int]*dayIndex)}
}

// get returns the cached index, building it on first access
func (c *intervalCache) get(index int, build func() *dayIndex) *dayIndex {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx, ok := c.entries[index]; ok {
		return idx
	}
	idx := build()
	c.entries[index] = idx
	return idx
}

// invalidate drops every cached index. It is the only way entries are removed.
func (c *intervalCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]*dayIndex)
}

// size returns the number of built indexes
func (c *intervalCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
