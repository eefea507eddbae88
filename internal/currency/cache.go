// internal/currency/cache.go
package currency

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const tableKey = "table"

// RateCache holds pair rates and the last fetched table for a fixed TTL.
// Owners create one and hand it to a Converter; nothing is process-global.
type RateCache struct {
	c *cache.Cache
}

func NewRateCache(ttl time.Duration) *RateCache {
	return &RateCache{c: cache.New(ttl, 2*ttl)}
}

func pairKey(from, to string) string {
	return normalizeCode(from) + ":" + normalizeCode(to)
}

func (rc *RateCache) Get(from, to string) (float64, bool) {
	v, ok := rc.c.Get(pairKey(from, to))
	if !ok {
		return 0, false
	}
	return v.(float64), true
}

func (rc *RateCache) Set(from, to string, rate float64) {
	rc.c.Set(pairKey(from, to), rate, cache.DefaultExpiration)
}

func (rc *RateCache) Table() (RateTable, bool) {
	v, ok := rc.c.Get(tableKey)
	if !ok {
		return nil, false
	}
	return v.(RateTable), true
}

func (rc *RateCache) SetTable(t RateTable) {
	rc.c.Set(tableKey, t, cache.DefaultExpiration)
}
