package rate

import (
    "strings"
    "sync"
    "time"

    "shiprates/internal/packaging"
    "shiprates/internal/weight"
)

// DefaultTTL is how long a selected rate set stays valid for an unchanged
// order state.
const DefaultTTL = 300 * time.Second

// CacheStore keeps selected rates keyed by derived order state. Two
// requests racing on the same key may both miss and both fetch; the last
// Set wins. That double fetch is tolerated, so implementations only need
// to guard their own internals, not fetch exclusivity.
type CacheStore interface {
    Get(key string) (Selected, bool)
    Set(key string, value Selected, ttl time.Duration)
}

// CacheKey derives the cache key from order identity, packaging kind and
// the formatted weight. Spaces anywhere in the composed key collapse to
// the separator, so equal keys always mean an identical rate request.
func CacheKey(orderID string, kind packaging.Kind, totalWeight float64) string {
    key := orderID + "--" + string(kind) + "--" + weight.Format(totalWeight)
    return strings.ReplaceAll(key, " ", "--")
}

type cacheEntry struct {
    value   Selected
    expires time.Time
}

// MemoryCache is the in-process CacheStore. Entries are evicted lazily on
// read after their TTL passes.
type MemoryCache struct {
    mu      sync.Mutex
    entries map[string]cacheEntry
    now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
    return &MemoryCache{entries: map[string]cacheEntry{}, now: time.Now}
}

func (m *MemoryCache) Get(key string) (Selected, bool) {
    m.mu.Lock()
    defer m.mu.Unlock()
    e, ok := m.entries[key]
    if !ok {
        return nil, false
    }
    if m.now().After(e.expires) {
        delete(m.entries, key)
        return nil, false
    }
    return e.value, true
}

func (m *MemoryCache) Set(key string, value Selected, ttl time.Duration) {
    if ttl <= 0 {
        ttl = DefaultTTL
    }
    m.mu.Lock()
    defer m.mu.Unlock()
    m.entries[key] = cacheEntry{value: value, expires: m.now().Add(ttl)}
}
