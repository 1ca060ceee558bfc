package brute

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsert(t *testing.T) {
	ranger := NewRanger()
	prefix := netip.MustParsePrefix("0.0.1.0/24")

	ranger.Insert(prefix)

	assert.Equal(t, 1, ranger.Len())
	assert.Equal(t, prefix, ranger.prefixes["0.0.1.0/24"])
}

func TestInsertIdempotent(t *testing.T) {
	ranger := NewRanger()
	prefix := netip.MustParsePrefix("0.0.1.0/24")

	ranger.Insert(prefix)
	ranger.Insert(prefix)

	assert.Equal(t, 1, ranger.Len())
}

func TestRemove(t *testing.T) {
	ranger := NewRanger()
	prefix := netip.MustParsePrefix("0.0.1.0/24")

	ranger.Insert(prefix)
	found := ranger.Remove(prefix)

	assert.True(t, found)
	assert.Equal(t, 0, ranger.Len())
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	ranger := NewRanger()
	found := ranger.Remove(netip.MustParsePrefix("0.0.1.0/24"))
	assert.False(t, found)
}

func TestContains(t *testing.T) {
	ranger := NewRanger()
	ranger.Insert(netip.MustParsePrefix("0.0.1.0/24"))

	cases := []struct {
		addr     netip.Addr
		contains bool
		name     string
	}{
		{netip.MustParseAddr("0.0.1.255"), true, "Should contain"},
		{netip.MustParseAddr("0.0.0.255"), false, "Shouldn't contain"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.contains, ranger.Contains(tc.addr))
		})
	}
}

func TestContainingPrefixes(t *testing.T) {
	ranger := NewRanger()
	prefix1 := netip.MustParsePrefix("0.0.1.0/24")
	prefix2 := netip.MustParsePrefix("0.0.1.0/25")
	ranger.Insert(prefix1)
	ranger.Insert(prefix2)

	cases := []struct {
		addr     netip.Addr
		expected []netip.Prefix
		name     string
	}{
		{netip.MustParseAddr("0.0.1.255"), []netip.Prefix{prefix1}, "Should contain outer only"},
		{netip.MustParseAddr("0.0.1.127"), []netip.Prefix{prefix1, prefix2}, "Should contain both"},
		{netip.MustParseAddr("0.0.0.127"), []netip.Prefix{}, "Should contain none"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prefixes := ranger.ContainingPrefixes(tc.addr)
			assert.Equal(t, len(tc.expected), len(prefixes))
			for _, p := range tc.expected {
				assert.Contains(t, prefixes, p)
			}
		})
	}
}
