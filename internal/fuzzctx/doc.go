// Package fuzzctx builds the execution context for one fuzz scenario.
//
// A TestContext is a value. Its fields are unexported; every With* method has
// a value receiver and returns an updated copy, leaving the receiver usable.
// Sequence-typed setters store a deep copy of their argument and sequence
// accessors hand out copies, so no storage is ever shared between a context
// and its callers, or between two contexts derived from the same base.
//
// Typical use:
//
//	base := fuzzctx.From(nil, exec, caller, fuzzctx.FuzzParams{})
//	tc := base.
//	    WithOrders(orders).
//	    WithChecks(checks).
//	    WithRecipient(recipient)
//
//	// branch per iteration; base and tc are unaffected
//	iter := tc.WithFuzzParams(fuzzctx.FuzzParams{Seed: seed})
//
// Because contexts never alias, each concurrently running iteration can hold
// its own context without synchronization.
//
// The builder never validates. Whether the orders are fillable, or whether
// the counter matches the offerer, is for the scenario generator and the
// checks to decide.
package fuzzctx
