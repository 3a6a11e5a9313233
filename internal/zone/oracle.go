package zone

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/roach88/seaharness/internal/order"
)

// Schema is one SIP-5 metadata record: a schema id and an opaque payload.
type Schema struct {
	ID       uint64
	Metadata hexutil.Bytes
}

// Oracle is the capability the protocol calls back into mid-execution.
type Oracle interface {
	Introspector

	// ValidateOrder decides whether the order described by params may be
	// fulfilled.
	ValidateOrder(params order.ZoneParameters) Decision

	// SeaportMetadata returns a static name and schema list. It does not
	// depend on prior calls.
	SeaportMetadata() (name string, schemas []Schema)
}

// Introspector is the ERC-165 base capability.
type Introspector interface {
	SupportsInterface(id order.Selector) bool
}

// Supports reports whether v advertises the zone capability. Discovery code
// uses it when it does not know the concrete oracle type.
func Supports(v any) bool {
	in, ok := v.(Introspector)
	return ok && in.SupportsInterface(InterfaceID)
}

// introspection is embedded by every oracle to answer SupportsInterface for
// the zone capability and the ERC-165 base.
type introspection struct{}

func (introspection) SupportsInterface(id order.Selector) bool {
	return id == InterfaceID || id == ERC165InterfaceID
}

// defaultSchemas is the schema list every test zone reports.
func defaultSchemas() []Schema {
	return []Schema{{ID: 1, Metadata: hexutil.Bytes{}}}
}
