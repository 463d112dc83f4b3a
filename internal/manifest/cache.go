package manifest

import (
	"sync"

	"github.com/conneroisu/webpulse/internal/types"
)

// CachedDependency is one entry of the dependency cache: the first version
// seen for a name and how many manifests listed it.
type CachedDependency struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Count   int    `json:"count" yaml:"count"`
}

// DependencyCache records every dependency parsed during one analysis run.
// It is the source of the total and framework dependency statistics.
type DependencyCache struct {
	mutex   sync.RWMutex
	entries []CachedDependency
	index   map[string]int
}

// NewDependencyCache creates an empty cache.
func NewDependencyCache() *DependencyCache {
	return &DependencyCache{index: make(map[string]int)}
}

// Add records one occurrence of name. The first version seen is kept. New
// names are dropped once the cache holds MaxCachedDependencies entries.
func (c *DependencyCache) Add(name, version string) {
	if c == nil || name == "" {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if i, ok := c.index[name]; ok {
		c.entries[i].Count++
		return
	}
	if len(c.entries) >= types.MaxCachedDependencies {
		return
	}
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, CachedDependency{Name: name, Version: version, Count: 1})
}

// Get returns the entry for name.
func (c *DependencyCache) Get(name string) (CachedDependency, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if i, ok := c.index[name]; ok {
		return c.entries[i], true
	}
	return CachedDependency{}, false
}

// Len returns the number of distinct names.
func (c *DependencyCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

// Entries returns a copy of the cache in first-seen order.
func (c *DependencyCache) Entries() []CachedDependency {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	result := make([]CachedDependency, len(c.entries))
	copy(result, c.entries)
	return result
}
