package zone

import (
	"github.com/holiman/uint256"

	"github.com/roach88/seaharness/internal/order"
)

// IdentifierZoneName is the metadata name reported by IdentifierZone.
const IdentifierZoneName = "TestIdentifierZone"

// IdentifierZone approves an order only when the identifier of its first
// consideration item equals the sentinel it was built with.
type IdentifierZone struct {
	introspection
	expected uint256.Int
}

// NewIdentifierZone returns an oracle that approves orders whose first
// consideration identifier is expected.
func NewIdentifierZone(expected uint256.Int) *IdentifierZone {
	return &IdentifierZone{expected: expected}
}

// Expected returns the sentinel identifier.
func (z *IdentifierZone) Expected() uint256.Int {
	return z.expected
}

// ValidateOrder implements Oracle. It panics if params has no consideration
// items; the protocol never sends such a call.
func (z *IdentifierZone) ValidateOrder(params order.ZoneParameters) Decision {
	if len(params.Consideration) == 0 {
		panic("zone: validateOrder called with no consideration items")
	}
	if params.Consideration[0].Identifier.Eq(&z.expected) {
		return Approved
	}
	return Rejected
}

// SeaportMetadata implements Oracle.
func (*IdentifierZone) SeaportMetadata() (string, []Schema) {
	return IdentifierZoneName, defaultSchemas()
}
