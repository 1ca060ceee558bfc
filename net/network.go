/*
Package net normalizes the heterogeneous address and CIDR inputs accepted
by the engine down to the canonical byte sequences the trie actually
stores and matches against.
*/
package net

import (
	"fmt"
	"math/big"
	"net/netip"
)

// ErrInvalidAddress is returned when a textual address is neither valid
// IPv4 nor valid IPv6.
var ErrInvalidAddress = fmt.Errorf("invalid address")

// ErrUnsupportedInput is returned when Normalize is given a value of a
// kind it does not know how to convert.
var ErrUnsupportedInput = fmt.Errorf("unsupported address input")

// ErrInvalidPrefix is returned when a CIDR string fails to parse.
var ErrInvalidPrefix = fmt.Errorf("invalid CIDR prefix")

// packedAddress is satisfied by address objects such as netip.Addr that
// expose their canonical byte view directly.
type packedAddress interface {
	AsSlice() []byte
}

// Normalize converts a heterogeneous address input into its canonical byte
// form: 4 bytes for IPv4, 16 bytes for IPv6. Raw byte slices are returned
// unchanged (the caller is trusted for length); text is parsed first as
// IPv4, falling back to IPv6; non-negative integers are encoded big-endian
// in the minimum number of bytes (zero becomes a single zero byte, so the
// result will not, in general, match any stored address-length prefix
// unless the caller also controls how the trie was populated) — a negative
// integer is outside that contract and fails with ErrUnsupportedInput
// rather than silently wrapping to a huge unsigned value; anything
// exposing AsSlice (e.g. netip.Addr) returns that view.
func Normalize(v any) ([]byte, error) {
	switch t := v.(type) {
	case []byte:
		return t, nil
	case string:
		return normalizeText(t)
	case int:
		if t < 0 {
			return nil, fmt.Errorf("%w: negative integer %d", ErrUnsupportedInput, t)
		}
		return normalizeUint(uint64(t))
	case int64:
		if t < 0 {
			return nil, fmt.Errorf("%w: negative integer %d", ErrUnsupportedInput, t)
		}
		return normalizeUint(uint64(t))
	case uint:
		return normalizeUint(uint64(t))
	case uint32:
		return normalizeUint(uint64(t))
	case uint64:
		return normalizeUint(t)
	case packedAddress:
		return t.AsSlice(), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, v)
	}
}

func normalizeText(s string) ([]byte, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return addr.AsSlice(), nil
}

// normalizeUint encodes a non-negative integer big-endian using the
// minimum number of bytes, per spec: zero becomes a single zero byte.
func normalizeUint(n uint64) ([]byte, error) {
	if n == 0 {
		return []byte{0}, nil
	}
	b := big.NewInt(0).SetUint64(n).Bytes()
	return b, nil
}

// Prefix is the semantic output of parsing CIDR text: the network address
// with host bits cleared, the prefix length, and the broadcast address with
// host bits set. This is the only shape the engine consumes from a CIDR
// text parser; the parser itself (net/netip here) is an external
// collaborator.
type Prefix struct {
	Network   []byte
	Bits      int
	Broadcast []byte
}

// ParsePrefix parses CIDR text into its network bytes, prefix length, and
// broadcast bytes.
func ParsePrefix(cidr string) (Prefix, error) {
	p, err := netip.ParsePrefix(cidr)
	if err != nil {
		return Prefix{}, fmt.Errorf("%w: %q", ErrInvalidPrefix, cidr)
	}
	p = p.Masked()

	network := p.Addr().AsSlice()
	broadcast := make([]byte, len(network))
	copy(broadcast, network)
	setHostBits(broadcast, p.Bits())

	return Prefix{
		Network:   network,
		Bits:      p.Bits(),
		Broadcast: broadcast,
	}, nil
}

// setHostBits sets every bit after the first prefixBits bits of addr,
// turning a network address into the broadcast address of its range.
func setHostBits(addr []byte, prefixBits int) {
	fullBytes := prefixBits / 8
	remBits := prefixBits % 8
	if remBits != 0 {
		hostMask := byte(0xFF) >> uint(remBits)
		addr[fullBytes] |= hostMask
		fullBytes++
	}
	for i := fullBytes; i < len(addr); i++ {
		addr[i] = 0xFF
	}
}
