package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ppiankov/opinionsplit/internal/model"
)

// ResultCache stores split outcomes, including "not a decision", so a rerun
// over the same corpus skips documents it has already seen
type ResultCache struct {
	cache Cache
	ttl   time.Duration
}

type resultEntry struct {
	Decision bool            `json:"decision"`
	Opinions []model.Opinion `json:"opinions,omitempty"`
}

// NewResultCache wraps c; ttl 0 defers to each layer's default
func NewResultCache(c Cache, ttl time.Duration) *ResultCache {
	return &ResultCache{cache: c, ttl: ttl}
}

// Get returns the cached opinions and decision flag for key
func (r *ResultCache) Get(key string) (opinions []model.Opinion, decision bool, found bool) {
	data, ok := r.cache.Get(key)
	if !ok {
		return nil, false, false
	}

	var entry resultEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = r.cache.Delete(key)
		return nil, false, false
	}
	return entry.Opinions, entry.Decision, true
}

// Put stores a split outcome under key
func (r *ResultCache) Put(key string, opinions []model.Opinion, decision bool) error {
	data, err := json.Marshal(resultEntry{Decision: decision, Opinions: opinions})
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return r.cache.Set(key, data, r.ttl)
}
