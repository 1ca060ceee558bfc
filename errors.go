/*
Package cidrtrie implements the byte-indexed prefix-matching trie engine:
a concurrency-safe store of CIDR prefixes supporting fast membership
lookups, bounded LRU caching, and compact binary serialization.
*/
package cidrtrie

import (
	"github.com/packetshield/cidrtrie/net"
	"github.com/packetshield/cidrtrie/trie"
)

// ErrInvalidPrefix is returned when CIDR text fails to parse.
var ErrInvalidPrefix = net.ErrInvalidPrefix

// ErrInvalidAddress is returned when address text is neither valid IPv4
// nor valid IPv6.
var ErrInvalidAddress = net.ErrInvalidAddress

// ErrUnsupportedInput is returned when Contains is given a value of a kind
// the normalizer does not accept.
var ErrUnsupportedInput = net.ErrUnsupportedInput

// ErrInvalidSerialization is returned when Load is given bytes that do not
// decode into a well-formed trie.
var ErrInvalidSerialization = trie.ErrInvalidSerialization
