// Package zone models the validation oracle the protocol consults while
// executing a restricted order.
//
// An Oracle answers three questions: should this order be allowed
// (ValidateOrder), what is this oracle (SeaportMetadata), and which
// capabilities does it implement (SupportsInterface).
//
// # Decisions and the wire response
//
// Internally a call yields a Decision, either Approved or Rejected. On the
// wire the protocol only ever sees bytes: the 4-byte validateOrder magic
// value means approval, and anything else, including an empty response,
// means rejection. Decision.Response and Interpret convert between the two.
// Rejection is a normal result and never an error.
//
// A call that panics (for example, an order with no consideration items
// handed to IdentifierZone) is a contract violation by the caller. Call
// reports it as ErrCallAborted, which is distinct from rejection: the order
// is not rejected, the execution is aborted.
//
// # Variants
//
//   - AlwaysApprove approves every order.
//   - IdentifierZone approves only when the first consideration item's
//     identifier equals a fixed sentinel.
//
// Oracles hold no per-call state and are safe for concurrent use.
package zone
