package hem

import (
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// asset is one compiled package ready to serve.
type asset struct {
	body []byte
	etag string
}

func newAsset(body []byte) asset {
	sum := blake2b.Sum256(body)
	return asset{body: body, etag: `"` + hex.EncodeToString(sum[:16]) + `"`}
}

// assetCache keeps compiled packages between requests.  It only holds
// entries while enabled, i.e. while a watcher is there to invalidate
// them; otherwise every request recompiles.
type assetCache struct {
	mu      sync.RWMutex
	enabled bool
	gen     uint64 // bumped on every invalidation
	entries map[string]asset
}

func newAssetCache() *assetCache {
	return &assetCache{entries: make(map[string]asset)}
}

func (c *assetCache) get(key string) (asset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.entries[key]
	return a, ok && c.enabled
}

// generation returns the invalidation counter.  Pass it to put so a
// package compiled from sources that changed mid-compile is dropped.
func (c *assetCache) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

func (c *assetCache) put(key string, a asset, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enabled && gen == c.gen {
		c.entries[key] = a
	}
}

func (c *assetCache) setEnabled(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = on
	if !on {
		c.entries = make(map[string]asset)
	}
}

func (c *assetCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.entries = make(map[string]asset)
}
