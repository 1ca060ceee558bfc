package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packetshield/cidrtrie/net"
)

func insertCIDR(t *testing.T, tr *Trie, cidr string) {
	t.Helper()
	p, err := net.ParsePrefix(cidr)
	require.NoError(t, err)
	tr.Insert(p.Network, p.Bits, p.Broadcast)
}

func removeCIDR(t *testing.T, tr *Trie, cidr string) {
	t.Helper()
	p, err := net.ParsePrefix(cidr)
	require.NoError(t, err)
	tr.Remove(p.Network, p.Bits)
}

func addr(t *testing.T, s string) []byte {
	t.Helper()
	b, err := net.Normalize(s)
	require.NoError(t, err)
	return b
}

func TestBasicIPv4(t *testing.T) {
	tr := New()
	insertCIDR(t, tr, "192.168.1.0/24")

	assert.True(t, tr.Contains(addr(t, "192.168.1.1")))
	assert.True(t, tr.Contains(addr(t, "192.168.1.255")))
	assert.False(t, tr.Contains(addr(t, "192.168.2.1")))
	assert.False(t, tr.Contains(addr(t, "10.0.0.1")))
}

func TestPartialBytePrefix(t *testing.T) {
	tr := New()
	insertCIDR(t, tr, "172.16.0.0/12")

	assert.True(t, tr.Contains(addr(t, "172.16.0.1")))
	assert.True(t, tr.Contains(addr(t, "172.31.255.254")))
	assert.False(t, tr.Contains(addr(t, "172.32.0.1")))
}

func TestOverlappingThenRemoveOuter(t *testing.T) {
	tr := New()
	insertCIDR(t, tr, "10.0.0.0/8")
	insertCIDR(t, tr, "10.10.0.0/16")

	assert.True(t, tr.Contains(addr(t, "10.5.5.5")))
	assert.True(t, tr.Contains(addr(t, "10.10.5.5")))

	removeCIDR(t, tr, "10.0.0.0/8")

	assert.False(t, tr.Contains(addr(t, "10.5.5.5")))
	assert.True(t, tr.Contains(addr(t, "10.10.5.5")))
}

func TestWildcard(t *testing.T) {
	tr := New()
	insertCIDR(t, tr, "0.0.0.0/0")
	assert.True(t, tr.Contains(addr(t, "1.2.3.4")))

	removeCIDR(t, tr, "0.0.0.0/0")
	assert.False(t, tr.Contains(addr(t, "1.2.3.4")))
}

func TestIPv6(t *testing.T) {
	tr := New()
	insertCIDR(t, tr, "2001:db8::/32")

	assert.True(t, tr.Contains(addr(t, "2001:db8::1")))
	assert.False(t, tr.Contains(addr(t, "2001:db9::1")))
}

func TestSerializeRoundTrip(t *testing.T) {
	tr := New()
	insertCIDR(t, tr, "10.0.0.0/8")
	insertCIDR(t, tr, "192.168.0.0/16")
	insertCIDR(t, tr, "2001:db8::/32")

	data, err := tr.Dump(128)
	require.NoError(t, err)

	loaded, cacheSize, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, 128, cacheSize)

	positives := []string{"10.1.2.3", "192.168.5.5", "2001:db8::abcd"}
	negatives := []string{"11.0.0.1", "192.169.0.1", "2001:db9::1"}

	for _, a := range positives {
		b := addr(t, a)
		assert.Equal(t, tr.Contains(b), loaded.Contains(b), "positive %s", a)
		assert.True(t, loaded.Contains(b), "positive %s", a)
	}
	for _, a := range negatives {
		b := addr(t, a)
		assert.Equal(t, tr.Contains(b), loaded.Contains(b), "negative %s", a)
		assert.False(t, loaded.Contains(b), "negative %s", a)
	}
}

func TestLoadMissingRootKey(t *testing.T) {
	_, _, err := Load([]byte{0x80}) // an empty msgpack map, no "root" key
	assert.ErrorIs(t, err, ErrInvalidSerialization)
}

func TestLoadMalformed(t *testing.T) {
	_, _, err := Load([]byte{0xff})
	assert.ErrorIs(t, err, ErrInvalidSerialization)
}

func TestIdempotentInsert(t *testing.T) {
	tr := New()
	insertCIDR(t, tr, "192.168.1.0/24")
	insertCIDR(t, tr, "192.168.1.0/24")

	assert.True(t, tr.Contains(addr(t, "192.168.1.1")))
	assert.False(t, tr.Contains(addr(t, "192.168.2.1")))
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	tr := New()
	insertCIDR(t, tr, "192.168.1.0/24")

	removeCIDR(t, tr, "10.0.0.0/8")
	removeCIDR(t, tr, "192.168.2.0/24")

	assert.True(t, tr.Contains(addr(t, "192.168.1.1")))
}

func TestPruningLeavesEmptyTrie(t *testing.T) {
	// Byte-aligned prefixes only: a partial-byte prefix's removal is
	// asymmetric by design (see TestAsymmetricPartialByteRemoval below) and
	// deliberately leaves expansion siblings behind, so it would not prune
	// away cleanly here.
	tr := New()
	prefixes := []string{"10.0.0.0/8", "192.168.0.0/16", "172.16.0.0/16"}
	for _, p := range prefixes {
		insertCIDR(t, tr, p)
	}
	for _, p := range prefixes {
		removeCIDR(t, tr, p)
	}

	assert.False(t, tr.root.terminal)
	assert.Nil(t, tr.root.children)
}

func TestAsymmetricPartialByteRemoval(t *testing.T) {
	// Removing a partial-byte prefix only clears the single base terminal
	// at that depth; the other expansion siblings Insert created remain
	// terminal. This is documented, intentional behavior (spec §9 option b),
	// not a bug to be "fixed" here.
	tr := New()
	insertCIDR(t, tr, "172.16.0.0/12")
	removeCIDR(t, tr, "172.16.0.0/12")

	// 172.16.0.0's base byte at depth 1 is 0x10 (0001 0000, remBits=4,
	// leading nibble 0001 shared by 172.16-172.31). The base child index
	// equals network[1]&leadingMasks[4] == 0x10, which is exactly the one
	// Remove clears; addresses whose second byte resolves to a different
	// sibling (e.g. 172.17.x.x -> byte 0x11) remain terminal.
	assert.False(t, tr.Contains(addr(t, "172.16.0.1")))
	assert.True(t, tr.Contains(addr(t, "172.17.0.1")))
}

func TestClear(t *testing.T) {
	tr := New()
	insertCIDR(t, tr, "10.0.0.0/8")
	tr.Clear()

	assert.False(t, tr.Contains(addr(t, "10.1.1.1")))
	assert.False(t, tr.root.terminal)
	assert.Nil(t, tr.root.children)
}
