package cidrtrie

import (
	"strings"
	"sync"

	"github.com/packetshield/cidrtrie/cache"
	"github.com/packetshield/cidrtrie/net"
	"github.com/packetshield/cidrtrie/trie"
)

// Engine is the concurrency envelope (spec §4.8/§5) around a Trie: the
// library's top-level handle. The zero value is not usable; construct one
// with New.
//
// Contains and Dump take the read side of a sync.RWMutex and Insert/Remove/
// Clear/BatchInsert take the write side, so reads may proceed concurrently
// with each other but never with a writer (the "reader-parallel" regime
// spec §5 offers as an alternative to fully serialized access). The guard
// is a plain, non-reentrant RWMutex: Remove("0.0.0.0/0") and Clear both
// route through resetRoot, which assumes its caller already holds the
// write lock, rather than relying on lock reentrancy to avoid self-deadlock
// (spec §9 recommends this over a reentrant guard "in a fresh
// implementation").
type Engine struct {
	mu sync.RWMutex

	t      *trie.Trie
	lookup *cache.Lookup
	prefix *cache.Prefix[net.Prefix]
	cfg    *Config
}

// New returns an empty Engine configured by cfg. A nil cfg uses
// DefaultConfig.
func New(cfg *Config) *Engine {
	cfg = cfg.normalized()
	return &Engine{
		t:      trie.New(),
		lookup: cache.NewLookup(cfg.LookupCacheSize),
		prefix: cache.NewPrefix[net.Prefix](cfg.PrefixCacheSize),
		cfg:    cfg,
	}
}

// resolvePrefix parses cidr, consulting and populating the secondary
// prefix cache. Callers must not hold e.mu.
func (e *Engine) resolvePrefix(cidr string) (net.Prefix, error) {
	if p, ok := e.prefix.Get(cidr); ok {
		return p, nil
	}
	p, err := net.ParsePrefix(cidr)
	if err != nil {
		return net.Prefix{}, err
	}
	e.prefix.Add(cidr, p)
	return p, nil
}

// Insert adds cidr to the engine. Inserting the same prefix twice is
// idempotent. Returns ErrInvalidPrefix if cidr fails to parse; the trie is
// left untouched on failure.
func (e *Engine) Insert(cidr string) error {
	p, err := e.resolvePrefix(cidr)
	if err != nil {
		return err
	}

	log().Trace("engine: acquiring write lock for Insert")
	e.mu.Lock()
	defer e.mu.Unlock()
	e.t.Insert(p.Network, p.Bits, p.Broadcast)
	e.invalidateLocked()
	return nil
}

// BatchInsert inserts many CIDR strings, holding the write lock for the
// whole batch and invalidating caches once at the end rather than per
// entry (spec §5's "batch insert" guidance). Entries are trimmed of
// surrounding whitespace; empty entries are skipped silently. An entry
// that fails to parse is logged at Warn with the offending text and
// skipped — batch_insert never fails outright on a bad entry, mirroring
// CIDARTHA's batch_insert.
func (e *Engine) BatchInsert(cidrs []string) {
	total := len(cidrs)
	if total == 0 {
		log().Info("batch insert: no entries")
		return
	}

	logEvery := int(float64(total) * e.cfg.BatchLogInterval)
	if logEvery < 1 {
		logEvery = 1
	}
	nextLog := logEvery

	log().Infof("batch insert: starting %d entries", total)

	log().Trace("engine: acquiring write lock for BatchInsert")
	e.mu.Lock()
	defer e.mu.Unlock()

	inserted := 0
	for i, raw := range cidrs {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		p, err := net.ParsePrefix(entry)
		if err != nil {
			log().WithField("cidr", entry).Warn("batch insert: skipping invalid prefix")
			continue
		}
		e.t.Insert(p.Network, p.Bits, p.Broadcast)
		inserted++

		n := i + 1
		if n >= nextLog || n == total {
			log().Infof("batch insert: %d/%d processed", n, total)
			nextLog += logEvery
		}
	}

	e.invalidateLocked()
	log().Infof("batch insert: complete, %d/%d inserted", inserted, total)
}

// Remove clears cidr's terminal marking, pruning empty subtrees. It is a
// no-op if no node exists at cidr's position in the trie. Returns
// ErrInvalidPrefix if cidr fails to parse.
//
// Removing "/0" (the wildcard) routes through resetRoot, the same helper
// Clear uses, rather than the general trie descent: it empties the whole
// trie, both families, whether or not a "/0" was inserted. Other removals
// clear whatever terminal sits at cidr's node, even one set by a different
// prefix (removing 172.16.0.0/16 after inserting 172.16.0.0/12 clears one
// of the /12's expansion terminals).
//
// For a partial-byte prefix length, only the single base terminal at that
// depth is cleared; see trie.Trie.Remove for why the full expansion
// siblings are left alone (spec §9's documented, intentional asymmetry).
func (e *Engine) Remove(cidr string) error {
	p, err := e.resolvePrefix(cidr)
	if err != nil {
		return err
	}

	log().Trace("engine: acquiring write lock for Remove")
	e.mu.Lock()
	defer e.mu.Unlock()

	if p.Bits == 0 {
		// A "/0" removal is equivalent to Clear: trie.Trie.Remove handles
		// it by replacing the root outright, so route through the same
		// resetRoot helper Clear uses instead of duplicating that logic.
		e.resetRoot()
		return nil
	}

	e.t.Remove(p.Network, p.Bits)
	e.invalidateLocked()
	return nil
}

// Contains reports whether addr falls within any stored prefix. addr may
// be any form net.Normalize accepts: text, raw bytes, a non-negative
// integer, or a value exposing AsSlice (e.g. netip.Addr). Returns
// ErrInvalidAddress or ErrUnsupportedInput if addr cannot be normalized.
//
// The canonical bytes are looked up in the bounded lookup cache before
// falling back to a trie descent, so repeated queries for the same
// address are O(1) regardless of presentation form, since the cache key
// is always the normalized byte form (spec §4.6).
func (e *Engine) Contains(addr any) (bool, error) {
	b, err := net.Normalize(addr)
	if err != nil {
		return false, err
	}
	key := string(b)

	log().Trace("engine: acquiring read lock for Contains")
	e.mu.RLock()
	if result, ok := e.lookup.Get(key); ok {
		e.mu.RUnlock()
		return result, nil
	}
	result := e.t.Contains(b)
	// Cache while still holding the read lock, so no writer can purge the
	// cache between the descent and the Add and leave a stale entry behind.
	e.lookup.Add(key, result)
	e.mu.RUnlock()

	return result, nil
}

// Clear removes every stored prefix, atomically replacing the trie's root
// with a fresh empty node.
func (e *Engine) Clear() {
	log().Trace("engine: acquiring write lock for Clear")
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetRoot()
}

// resetRoot replaces the trie and invalidates caches. Callers must
// already hold e.mu for writing; this is the shared helper Clear and a
// "/0" Remove both route through instead of relying on a reentrant guard.
func (e *Engine) resetRoot() {
	e.t.Clear()
	e.invalidateLocked()
}

// invalidateLocked purges both caches. Callers must hold e.mu for
// writing.
func (e *Engine) invalidateLocked() {
	e.lookup.Purge()
	e.prefix.Purge()
}

// Dump encodes the engine's trie into the compact binary format of spec
// §4.7/§6, embedding the configured lookup cache size so Load can
// recreate an equivalent Engine.
func (e *Engine) Dump() ([]byte, error) {
	log().Trace("engine: acquiring read lock for Dump")
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.t.Dump(e.cfg.LookupCacheSize)
}

// Load decodes bytes produced by Dump into a fresh Engine. If cfg is nil,
// the cache size embedded in data is used (falling back to
// DefaultConfig's if data carries none); an explicit cfg always takes
// precedence. Returns ErrInvalidSerialization if data is malformed.
func Load(data []byte, cfg *Config) (*Engine, error) {
	t, embeddedCacheSize, err := trie.Load(data)
	if err != nil {
		return nil, err
	}

	if cfg == nil {
		cfg = DefaultConfig()
		if embeddedCacheSize > 0 {
			cfg.LookupCacheSize = embeddedCacheSize
		}
	}
	cfg = cfg.normalized()

	return &Engine{
		t:      t,
		lookup: cache.NewLookup(cfg.LookupCacheSize),
		prefix: cache.NewPrefix[net.Prefix](cfg.PrefixCacheSize),
		cfg:    cfg,
	}, nil
}
