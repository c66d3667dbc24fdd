// internal/app/system/social/recent.go
package social

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultRecentLimit is how many recently viewed cases are remembered.
const DefaultRecentLimit = 5

// Recent is the capped, most-recent-first list of viewed case ids.
// Viewing an id that is already present moves it to the front.
type Recent struct {
	cache *lru.Cache[string, struct{}]
}

// NewRecent returns a list holding at most limit ids. A non-positive limit
// falls back to DefaultRecentLimit.
func NewRecent(limit int) *Recent {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	c, err := lru.New[string, struct{}](limit)
	if err != nil {
		// only possible for a non-positive size
		panic(err)
	}
	return &Recent{cache: c}
}

// Touch promotes id to the front, evicting the oldest entry when full.
func (r *Recent) Touch(id string) {
	r.cache.Add(id, struct{}{})
}

// Remove drops id, e.g. after the case is deleted.
func (r *Recent) Remove(id string) {
	r.cache.Remove(id)
}

// IDs returns the ids, most recent first.
func (r *Recent) IDs() []string {
	keys := r.cache.Keys() // oldest to newest
	out := make([]string, len(keys))
	for i, k := range keys {
		out[len(keys)-1-i] = k
	}
	return out
}

// Len returns how many ids are held.
func (r *Recent) Len() int { return r.cache.Len() }

// Reset empties the list.
func (r *Recent) Reset() { r.cache.Purge() }
