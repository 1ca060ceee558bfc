package trie

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// ErrInvalidSerialization is returned when encoded bytes do not decode into
// a well-formed trie: a missing "root" key, or a node tuple of the wrong
// shape.
var ErrInvalidSerialization = fmt.Errorf("invalid trie serialization")

// envelope is the outer msgpack map: "root" holds the recursively encoded
// root node, "cache_size" optionally carries configuration the caller may
// want preserved across a dump/load round trip. Loaders tolerate its
// absence for backward compatibility.
type envelope struct {
	Root      *node `msgpack:"root"`
	CacheSize int   `msgpack:"cache_size"`
}

// EncodeMsgpack implements msgpack.CustomEncoder, encoding a node as the
// positional 4-tuple (terminal, range_start, range_end, children) from
// spec: children is either absent (nil map) or a map from byte value to
// recursively encoded node.
func (n *node) EncodeMsgpack(enc *msgpack.Encoder) error {
	if n == nil {
		return enc.EncodeNil()
	}
	if err := enc.EncodeArrayLen(4); err != nil {
		return err
	}
	if err := enc.EncodeBool(n.terminal); err != nil {
		return err
	}
	if err := enc.EncodeBytes(n.rangeStart); err != nil {
		return err
	}
	if err := enc.EncodeBytes(n.rangeEnd); err != nil {
		return err
	}
	if n.children == nil {
		return enc.EncodeNil()
	}
	if err := enc.EncodeMapLen(len(n.children)); err != nil {
		return err
	}
	for b, child := range n.children {
		if err := enc.EncodeUint8(b); err != nil {
			return err
		}
		if err := child.EncodeMsgpack(enc); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack implements msgpack.CustomDecoder, the inverse of
// EncodeMsgpack.
func (n *node) DecodeMsgpack(dec *msgpack.Decoder) error {
	arrLen, err := dec.DecodeArrayLen()
	if err != nil {
		return fmt.Errorf("%w: node is not a 4-tuple: %v", ErrInvalidSerialization, err)
	}
	if arrLen != 4 {
		return fmt.Errorf("%w: node tuple has %d elements, want 4", ErrInvalidSerialization, arrLen)
	}
	terminal, err := dec.DecodeBool()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSerialization, err)
	}
	rangeStart, err := dec.DecodeBytes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSerialization, err)
	}
	rangeEnd, err := dec.DecodeBytes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSerialization, err)
	}

	n.terminal = terminal
	n.rangeStart = rangeStart
	n.rangeEnd = rangeEnd
	n.children = nil

	isNil, err := dec.PeekCode()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSerialization, err)
	}
	if msgpcode.Nil == isNil {
		return dec.DecodeNil()
	}

	mapLen, err := dec.DecodeMapLen()
	if err != nil {
		return fmt.Errorf("%w: children is not a map: %v", ErrInvalidSerialization, err)
	}
	if mapLen == 0 {
		return nil
	}
	n.children = make(map[byte]*node, mapLen)
	for i := 0; i < mapLen; i++ {
		b, err := dec.DecodeUint8()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSerialization, err)
		}
		child := newNode()
		if err := child.DecodeMsgpack(dec); err != nil {
			return err
		}
		n.children[b] = child
	}
	return nil
}

// Dump encodes the trie into the compact binary envelope described in
// spec §4.7/§6, embedding cacheSize under "cache_size" for round-tripping
// configuration through Load.
func (t *Trie) Dump(cacheSize int) ([]byte, error) {
	return msgpack.Marshal(&envelope{Root: t.root, CacheSize: cacheSize})
}

// Load decodes bytes produced by Dump (or any compatible encoder) into a
// fresh Trie, returning the recorded cache size (0 if the key was absent).
func Load(data []byte) (*Trie, int, error) {
	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidSerialization, err)
	}
	if env.Root == nil {
		return nil, 0, fmt.Errorf("%w: missing \"root\" key", ErrInvalidSerialization)
	}
	return &Trie{root: env.Root}, env.CacheSize, nil
}
