/*
Package cache provides the bounded lookup caches the engine sits in front
of its trie: a canonical-address-bytes to boolean cache that accelerates
repeated Contains calls, and a secondary CIDR-text to parsed-prefix cache
that avoids re-parsing the same string on repeated Insert/Remove calls.
Both are wholesale-invalidated (Purge) on any trie mutation, mirroring
CIDARTHA's "single LRU cache on normalized bytes, cleared on every
insert/remove" design.
*/
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity is the lookup cache's default bound, per spec §4.6.
const DefaultCapacity = 4096

// defaultPrefixCapacity bounds the secondary CIDR-text cache. CIDARTHA
// caps its string memoization dict separately from the main bytes cache
// ("min(cache_size, 8192)"); a fixed cap here plays the same role without
// growing unbounded when callers configure a very large prefix capacity.
const defaultPrefixCapacity = 8192

// Lookup is a bounded LRU cache from canonical address bytes to the
// boolean Contains result for that address. A zero-capacity Lookup
// disables caching: Get always misses and Add is a no-op, so the matcher
// simply runs uncached.
type Lookup struct {
	cache *lru.Cache[string, bool]
}

// NewLookup returns a Lookup bounded to capacity entries. A capacity of
// zero disables caching entirely.
func NewLookup(capacity int) *Lookup {
	if capacity <= 0 {
		return &Lookup{}
	}
	c, err := lru.New[string, bool](capacity)
	if err != nil {
		// lru.New only fails for a non-positive size, already excluded above.
		panic(err)
	}
	return &Lookup{cache: c}
}

// Get reports the cached result for key, if any.
func (l *Lookup) Get(key string) (bool, bool) {
	if l.cache == nil {
		return false, false
	}
	return l.cache.Get(key)
}

// Add records result for key, evicting the least recently used entry if
// the cache is at capacity.
func (l *Lookup) Add(key string, result bool) {
	if l.cache == nil {
		return
	}
	l.cache.Add(key, result)
}

// Purge discards every cached entry. Called on every mutation: inserts,
// removes, clears, and batch inserts all invalidate wholesale rather than
// tracking which cached addresses an affected subtree could change.
func (l *Lookup) Purge() {
	if l.cache == nil {
		return
	}
	l.cache.Purge()
}

// Len reports the number of entries currently cached.
func (l *Lookup) Len() int {
	if l.cache == nil {
		return 0
	}
	return l.cache.Len()
}

// Prefix is a bounded LRU cache from CIDR text to its parsed network
// bytes, prefix length, and broadcast bytes, keyed on the raw input
// string to avoid re-parsing the same literal on repeated Insert/Remove
// calls. It is invalidated alongside the Lookup cache on every mutation.
// A zero-capacity Prefix disables caching, same as Lookup.
type Prefix[V any] struct {
	cache *lru.Cache[string, V]
}

// NewPrefix returns a Prefix cache bounded to capacity entries, capped at
// defaultPrefixCapacity. A capacity of zero disables caching entirely.
func NewPrefix[V any](capacity int) *Prefix[V] {
	if capacity == 0 {
		return &Prefix[V]{}
	}
	if capacity < 0 || capacity > defaultPrefixCapacity {
		capacity = defaultPrefixCapacity
	}
	c, err := lru.New[string, V](capacity)
	if err != nil {
		panic(err)
	}
	return &Prefix[V]{cache: c}
}

// Get reports the cached parse result for cidr, if any.
func (p *Prefix[V]) Get(cidr string) (V, bool) {
	if p.cache == nil {
		var zero V
		return zero, false
	}
	return p.cache.Get(cidr)
}

// Add records the parsed result for cidr.
func (p *Prefix[V]) Add(cidr string, v V) {
	if p.cache == nil {
		return
	}
	p.cache.Add(cidr, v)
}

// Purge discards every cached parse result.
func (p *Prefix[V]) Purge() {
	if p.cache == nil {
		return
	}
	p.cache.Purge()
}

// Len reports the number of entries currently cached.
func (p *Prefix[V]) Len() int {
	if p.cache == nil {
		return 0
	}
	return p.cache.Len()
}
