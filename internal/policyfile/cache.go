package policyfile

import (
	"context"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/opsguild/c7n-hub/internal/mapping"
)

// Cache loads policy files on demand and memoizes them by (file,
// version) for the lifetime of one invocation. It must not be reused
// across invocations — policy files are re-fetched per invocation, and
// the host (not this module) owns any longer-lived cache.
type Cache struct {
	store   mapping.ObjectStore
	bucket  string
	version string

	mu      sync.Mutex
	entries map[string]*File
}

// NewCache creates a per-invocation policy file cache. version is
// typically the mapping document's Version, used only as a cache-key
// component so a mapping reload invalidates stale file entries.
func NewCache(store mapping.ObjectStore, bucket, version string) *Cache {
	return &Cache{store: store, bucket: bucket, version: version, entries: make(map[string]*File)}
}

// Get returns the parsed policy file for key, loading and caching it on
// first access.
func (c *Cache) Get(ctx context.Context, key string) (*File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entryKey := key + "\x00" + c.version
	if f, ok := c.entries[entryKey]; ok {
		return f, nil
	}

	data, err := c.store.Get(ctx, c.bucket, key)
	if err != nil {
		return nil, fmt.Errorf("fetch policy file %s/%s: %w", c.bucket, key, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse policy file %s: %w", key, err)
	}

	c.entries[entryKey] = &f
	return &f, nil
}
