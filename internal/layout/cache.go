package layout

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/linefocus/internal/log"
)

const (
	cacheExpiration      = 10 * time.Minute
	cacheCleanupInterval = 30 * time.Minute
)

// layoutCache holds wrapped block layouts keyed by block ID and width.
// Entries are only valid for the width they were computed at; a width change
// flushes everything.
type layoutCache struct {
	cache *gocache.Cache
}

func newLayoutCache() *layoutCache {
	return &layoutCache{cache: gocache.New(cacheExpiration, cacheCleanupInterval)}
}

func cacheKey(blockID string, width int) string {
	return fmt.Sprintf("%s:%d", blockID, width)
}

func (c *layoutCache) get(blockID string, width int) (*BlockLayout, bool) {
	key := cacheKey(blockID, width)
	value, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	bl, ok := value.(*BlockLayout)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting layout", "key", key)
		return nil, false
	}
	return bl, true
}

func (c *layoutCache) set(blockID string, width int, bl *BlockLayout) {
	c.cache.Set(cacheKey(blockID, width), bl, gocache.DefaultExpiration)
}

func (c *layoutCache) flush() {
	log.Debug(log.CatCache, "Flushing layout cache", "entries", c.cache.ItemCount())
	c.cache.Flush()
}
