package zone

import (
	"errors"
	"fmt"

	"github.com/roach88/seaharness/internal/order"
)

// ErrCallAborted reports that an oracle call failed outright instead of
// returning a decision. The fulfillment attempt must be aborted, not
// treated as a rejection.
var ErrCallAborted = errors.New("zone call aborted")

// Call invokes o.ValidateOrder on a private copy of params and returns the
// raw wire response. A panic inside the oracle is recovered and returned as
// ErrCallAborted with a nil response.
func Call(o Oracle, params order.ZoneParameters) (response []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			response = nil
			err = fmt.Errorf("%w: %v", ErrCallAborted, r)
		}
	}()
	return o.ValidateOrder(params.Clone()).Response(), nil
}
