package cache

import (
	"sync"
	"time"

	"currency-converter/internal/domain/model"
	"currency-converter/pkg/logger"
	"currency-converter/pkg/utils"
)

// MemoryCache is the session-lifetime rate table: one complete snapshot per
// calendar date, never evicted.
type MemoryCache struct {
	snapshots map[string]model.Rates
	mutex     sync.RWMutex
	log       *logger.Logger
}

func NewMemoryCache(log *logger.Logger) *MemoryCache {
	return &MemoryCache{
		snapshots: make(map[string]model.Rates),
		log:       log,
	}
}

func getCacheKey(date time.Time) string {
	return utils.FormatDate(utils.NormalizeDate(date))
}

func (c *MemoryCache) Has(date time.Time) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	_, found := c.snapshots[getCacheKey(date)]
	return found
}

func (c *MemoryCache) Get(date time.Time) (model.Rates, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	key := getCacheKey(date)
	rates, found := c.snapshots[key]
	if !found {
		c.log.Debug("Cache miss", "key", key)
		return model.Rates{}, false
	}

	c.log.Debug("Cache hit", "key", key)
	return rates.Clone(), true
}

// Put replaces the whole snapshot for date.
func (c *MemoryCache) Put(date time.Time, rates model.Rates) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	key := getCacheKey(date)
	c.snapshots[key] = rates.Clone()
	c.log.Debug("Cache set", "key", key, "currencies", rates.Len())
}

func (c *MemoryCache) HasAny() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.snapshots) > 0
}

func (c *MemoryCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.snapshots)
}
