package zone

import (
	"bytes"
	"fmt"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Registry maps zone addresses to the oracles that answer for them. The
// driver registers oracles before execution and looks them up when an order
// names a zone.
//
// Thread-safety: all methods are safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	zones map[common.Address]Oracle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{zones: make(map[common.Address]Oracle)}
}

// Register binds o to addr. It fails if o does not advertise the zone
// capability or if addr is already taken.
func (r *Registry) Register(addr common.Address, o Oracle) error {
	if o == nil {
		return fmt.Errorf("register zone %s: nil oracle", addr.Hex())
	}
	if !Supports(o) {
		return fmt.Errorf("register zone %s: oracle does not support interface %s", addr.Hex(), InterfaceID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.zones[addr]; exists {
		return fmt.Errorf("register zone %s: address already registered", addr.Hex())
	}
	r.zones[addr] = o
	return nil
}

// Lookup returns the oracle registered at addr.
func (r *Registry) Lookup(addr common.Address) (Oracle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.zones[addr]
	return o, ok
}

// Addresses returns the registered addresses in ascending byte order.
func (r *Registry) Addresses() []common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	addrs := make([]common.Address, 0, len(r.zones))
	for a := range r.zones {
		addrs = append(addrs, a)
	}
	slices.SortFunc(addrs, func(a, b common.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return addrs
}
