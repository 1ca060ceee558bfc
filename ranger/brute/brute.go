/*
Package brute provides a brute-force ground-truth oracle for the trie
package. Insertion and removal operate on an internal map[string]netip.Prefix
keyed by canonical prefix text (constant time); containment is always
performed linearly at no guaranteed traversal order of recorded prefixes,
so one can assume a worst case of O(N). The main purpose of this
implementation is for testing: because its correctness is easy to argue
from netip's own semantics, it serves as the ground truth when running a
wider range of property-based tests against the production trie.
*/
package brute

import "net/netip"

// Ranger is a Ranger that uses brute force operations over netip types.
type Ranger struct {
	prefixes map[string]netip.Prefix
}

// NewRanger returns a new Ranger.
func NewRanger() *Ranger {
	return &Ranger{
		prefixes: make(map[string]netip.Prefix),
	}
}

// Insert inserts a prefix into ranger. Inserting the same prefix twice is
// a no-op.
func (b *Ranger) Insert(prefix netip.Prefix) {
	prefix = prefix.Masked()
	key := prefix.String()
	if _, found := b.prefixes[key]; !found {
		b.prefixes[key] = prefix
	}
}

// Remove removes a prefix from ranger, reporting whether it was present.
func (b *Ranger) Remove(prefix netip.Prefix) bool {
	prefix = prefix.Masked()
	key := prefix.String()
	if _, found := b.prefixes[key]; found {
		delete(b.prefixes, key)
		return true
	}
	return false
}

// Contains returns bool indicating whether given addr is contained by any
// prefix in ranger.
func (b *Ranger) Contains(addr netip.Addr) bool {
	for _, prefix := range b.prefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ContainingPrefixes returns all prefixes given addr is a part of.
func (b *Ranger) ContainingPrefixes(addr netip.Addr) []netip.Prefix {
	prefixes := []netip.Prefix{}
	for _, prefix := range b.prefixes {
		if prefix.Contains(addr) {
			prefixes = append(prefixes, prefix)
		}
	}
	return prefixes
}

// Len reports the number of distinct prefixes currently recorded.
func (b *Ranger) Len() int {
	return len(b.prefixes)
}
