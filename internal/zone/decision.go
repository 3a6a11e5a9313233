package zone

import (
	"bytes"
	"fmt"

	"github.com/roach88/seaharness/internal/order"
)

// Function signatures that make up the zone capability.
const (
	ValidateOrderSignature     = "validateOrder((bytes32,address,address,(uint8,address,uint256,uint256)[],(uint8,address,uint256,uint256,address)[],bytes,bytes32[],uint256,uint256,bytes32))"
	SeaportMetadataSignature   = "getSeaportMetadata()"
	SupportsInterfaceSignature = "supportsInterface(bytes4)"
)

var (
	// MagicValue is the validateOrder selector. Returning it is the only
	// way to approve an order.
	MagicValue = order.SelectorOf(ValidateOrderSignature)

	// InterfaceID is the ERC-165 id of the zone capability.
	InterfaceID = order.InterfaceID(ValidateOrderSignature, SeaportMetadataSignature)

	// ERC165InterfaceID is the id of the base introspection capability.
	ERC165InterfaceID = order.SelectorOf(SupportsInterfaceSignature)
)

// Decision is the outcome of one validateOrder call.
// The zero value is Rejected.
type Decision uint8

const (
	Rejected Decision = iota
	Approved
)

func (d Decision) String() string {
	switch d {
	case Rejected:
		return "Rejected"
	case Approved:
		return "Approved"
	default:
		return fmt.Sprintf("Decision(%d)", uint8(d))
	}
}

// Response encodes d the way the protocol receives it: MagicValue for
// Approved, a zero-length response for everything else.
func (d Decision) Response() []byte {
	if d == Approved {
		return MagicValue.Bytes()
	}
	return []byte{}
}

// Interpret decodes a raw validateOrder response. Only an exact MagicValue
// approves; empty, short, long or different responses all reject.
func Interpret(response []byte) Decision {
	if bytes.Equal(response, MagicValue[:]) {
		return Approved
	}
	return Rejected
}
