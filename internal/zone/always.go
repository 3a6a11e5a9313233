package zone

import "github.com/roach88/seaharness/internal/order"

// AlwaysApproveName is the metadata name reported by AlwaysApprove.
const AlwaysApproveName = "TestZone"

// AlwaysApprove approves every order and ignores its input.
type AlwaysApprove struct {
	introspection
}

// NewAlwaysApprove returns an oracle that never rejects.
func NewAlwaysApprove() *AlwaysApprove {
	return &AlwaysApprove{}
}

// ValidateOrder implements Oracle.
func (*AlwaysApprove) ValidateOrder(order.ZoneParameters) Decision {
	return Approved
}

// SeaportMetadata implements Oracle.
func (*AlwaysApprove) SeaportMetadata() (string, []Schema) {
	return AlwaysApproveName, defaultSchemas()
}
