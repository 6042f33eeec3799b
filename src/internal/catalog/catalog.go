// Package catalog caches remote version catalogs on disk.
//
// Release lists come from each runtime's distribution server. They change
// rarely and some of them are expensive to build (the python catalog is
// scraped from directory listings), so results are kept in the cache
// directory and reused until they expire.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rtvm/rtvm/src/internal/config"
	"github.com/rtvm/rtvm/src/internal/runtime"
)

// DefaultTTL is the default time-to-live for cached catalogs.
const DefaultTTL = 24 * time.Hour

// Cache stores fetched release catalogs under a directory, one JSON file
// per runtime.
type Cache struct {
	dir string
	ttl time.Duration
}

// cacheEntry stores a catalog along with its cache timestamp.
type cacheEntry struct {
	CachedAt time.Time         `json:"cached_at"`
	Releases []runtime.Release `json:"releases"`
}

// NewCache creates a catalog cache rooted at dir.
func NewCache(dir string, ttl time.Duration) *Cache {
	return &Cache{
		dir: dir,
		ttl: ttl,
	}
}

// Releases returns a runtime's catalog, serving it from cache while fresh
// and falling back to fetch otherwise.
func (c *Cache) Releases(name string, fetch func() ([]runtime.Release, error)) ([]runtime.Release, error) {
	if releases, err := c.loadFromCache(name); err == nil {
		return releases, nil
	}

	releases, err := fetch()
	if err != nil {
		return nil, err
	}

	// Caching is best-effort
	_ = c.saveToCache(name, releases)

	return releases, nil
}

// Refresh discards any cached catalog for a runtime and fetches a fresh one.
func (c *Cache) Refresh(name string, fetch func() ([]runtime.Release, error)) ([]runtime.Release, error) {
	_ = os.Remove(c.cachePath(name))

	releases, err := fetch()
	if err != nil {
		return nil, err
	}

	_ = c.saveToCache(name, releases)

	return releases, nil
}

// Clear removes all cached catalogs and returns how many were removed.
// Other files in the directory, such as downloaded archives, are left
// alone.
func (c *Cache) Clear() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return removed, err
		}
		removed++
	}

	return removed, nil
}

func (c *Cache) cachePath(name string) string {
	return filepath.Join(c.dir, name+".cache.json")
}

func (c *Cache) loadFromCache(name string) ([]runtime.Release, error) {
	data, err := os.ReadFile(c.cachePath(name))
	if err != nil {
		return nil, err
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}

	// Treat expired cache as not found
	if time.Since(entry.CachedAt) > c.ttl {
		return nil, os.ErrNotExist
	}

	return entry.Releases, nil
}

func (c *Cache) saveToCache(name string, releases []runtime.Release) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}

	entry := cacheEntry{
		CachedAt: time.Now(),
		Releases: releases,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return os.WriteFile(c.cachePath(name), data, 0644)
}

// Releases returns a profile's catalog through the default on-disk cache.
func Releases(p runtime.Profile) ([]runtime.Release, error) {
	return defaultCache().Releases(p.Name(), p.Releases)
}

// Refresh fetches a profile's catalog, bypassing the default cache.
func Refresh(p runtime.Profile) ([]runtime.Release, error) {
	return defaultCache().Refresh(p.Name(), p.Releases)
}

// Clear empties the default catalog cache.
func Clear() (int, error) {
	return defaultCache().Clear()
}

func defaultCache() *Cache {
	return NewCache(config.DefaultPaths().Cache, DefaultTTL)
}
