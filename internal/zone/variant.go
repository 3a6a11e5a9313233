package zone

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Variant names accepted by New.
const (
	VariantAlwaysApprove = "always"
	VariantIdentifier    = "identifier"
)

// Variants lists the accepted variant names.
var Variants = []string{VariantAlwaysApprove, VariantIdentifier}

// New builds an oracle by variant name. expected is only used by the
// identifier variant.
func New(variant string, expected uint256.Int) (Oracle, error) {
	switch variant {
	case VariantAlwaysApprove:
		return NewAlwaysApprove(), nil
	case VariantIdentifier:
		return NewIdentifierZone(expected), nil
	default:
		return nil, fmt.Errorf("unknown zone variant %q: must be one of %v", variant, Variants)
	}
}
