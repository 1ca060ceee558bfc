package cidrtrie

import (
	"github.com/packetshield/cidrtrie/net"
)

// FamilyRouter dispatches to one of two independent Engines by address
// family, rather than mixing IPv4 and IPv6 terminals in a single trie.
// This is the documented alternative spec §9 calls out ("two separate
// tries dispatched by address length... may simplify concurrency if
// finer-grained locking is ever added"), adapted from version.go's
// versionedRanger: where that type dispatched a generic Ranger interface
// by net.IP.To4()/To16(), FamilyRouter dispatches two *Engine values by
// normalized byte length, since this engine has no Ranger interface to
// implement — dispatch is the only idea kept, not the type.
//
// The two engines are entirely independent: a /0 inserted into one never
// affects lookups against the other, and each has its own lock and cache.
type FamilyRouter struct {
	v4 *Engine
	v6 *Engine
}

// NewFamilyRouter builds a FamilyRouter with one Engine per family, each
// built from cfg (nil uses DefaultConfig for both).
func NewFamilyRouter(cfg *Config) *FamilyRouter {
	return &FamilyRouter{
		v4: New(cfg),
		v6: New(cfg),
	}
}

// Insert parses cidr and routes it to the v4 or v6 engine by its network
// address length.
func (f *FamilyRouter) Insert(cidr string) error {
	p, err := net.ParsePrefix(cidr)
	if err != nil {
		return err
	}
	return f.engineFor(len(p.Network)).Insert(cidr)
}

// Remove parses cidr and routes it to the v4 or v6 engine by its network
// address length.
func (f *FamilyRouter) Remove(cidr string) error {
	p, err := net.ParsePrefix(cidr)
	if err != nil {
		return err
	}
	return f.engineFor(len(p.Network)).Remove(cidr)
}

// Contains normalizes addr and routes the query to the engine matching its
// byte length.
func (f *FamilyRouter) Contains(addr any) (bool, error) {
	b, err := net.Normalize(addr)
	if err != nil {
		return false, err
	}
	return f.engineFor(len(b)).Contains(b)
}

// Clear empties both engines.
func (f *FamilyRouter) Clear() {
	f.v4.Clear()
	f.v6.Clear()
}

func (f *FamilyRouter) engineFor(addrLen int) *Engine {
	if addrLen == 16 {
		return f.v6
	}
	return f.v4
}
