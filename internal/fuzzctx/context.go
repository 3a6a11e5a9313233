package fuzzctx

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/roach88/seaharness/internal/order"
)

// Executor identifies the protocol deployment a scenario runs against.
// It is an externally owned handle and is never copied deeply.
type Executor struct {
	// Variant names the implementation under test, e.g. "reference" or
	// "optimized".
	Variant string
	Address common.Address
}

// IsZero reports whether no executor has been selected.
func (e Executor) IsZero() bool {
	return e == Executor{}
}

// FuzzParams carries values the fuzz engine hands to downstream
// randomization. The context stores them but never interprets them.
type FuzzParams struct {
	Seed uint64
}

// Clone returns an independent copy of p. New fields with reference
// semantics must be copied here.
func (p FuzzParams) Clone() FuzzParams {
	return p
}

// TestContext is everything needed to run one fuzz scenario.
// The zero value is not valid; start from Empty or From.
type TestContext struct {
	orders     []order.Order
	executor   Executor
	caller     common.Address
	fuzzParams FuzzParams
	checks     []order.Selector

	// fulfillment arguments that belong to no single order
	counter             uint256.Int
	fulfillerConduitKey common.Hash
	criteriaResolvers   []order.CriteriaResolver
	recipient           common.Address
}

// Empty returns a context with every field at its zero value and every
// sequence field set to a non-nil, zero-length slice.
func Empty() TestContext {
	return TestContext{
		orders:            []order.Order{},
		checks:            []order.Selector{},
		criteriaResolvers: []order.CriteriaResolver{},
	}
}

// From returns a context with orders, executor, caller and fuzz params set
// and everything else at its zero value.
//
// orders is stored as given, without a deep copy; only a nil slice is
// replaced by an empty one. Use WithOrders when the caller will keep
// mutating its slice.
func From(orders []order.Order, executor Executor, caller common.Address, fuzzParams FuzzParams) TestContext {
	tc := Empty()
	if orders != nil {
		tc.orders = orders
	}
	tc.executor = executor
	tc.caller = caller
	tc.fuzzParams = fuzzParams
	return tc
}

// Orders returns a deep copy of the scenario's orders, in fulfillment order.
func (c TestContext) Orders() []order.Order {
	return order.CloneOrders(c.orders)
}

// OrderCount returns the number of orders without copying them.
func (c TestContext) OrderCount() int {
	return len(c.orders)
}

// Order returns a deep copy of the i-th order. It panics if i is out of
// range, like indexing a slice.
func (c TestContext) Order(i int) order.Order {
	return c.orders[i].Clone()
}

func (c TestContext) Executor() Executor {
	return c.executor
}

func (c TestContext) Caller() common.Address {
	return c.caller
}

// Impersonates reports whether calls should be made on behalf of Caller.
// A zero caller means no impersonation.
func (c TestContext) Impersonates() bool {
	return c.caller != (common.Address{})
}

func (c TestContext) FuzzParams() FuzzParams {
	return c.fuzzParams.Clone()
}

// Checks returns the selectors of the post-execution checks, in the order
// they must run.
func (c TestContext) Checks() []order.Selector {
	return order.CloneSelectors(c.checks)
}

func (c TestContext) Counter() uint256.Int {
	return c.counter
}

func (c TestContext) FulfillerConduitKey() common.Hash {
	return c.fulfillerConduitKey
}

// CriteriaResolvers returns a deep copy of the criteria resolvers.
func (c TestContext) CriteriaResolvers() []order.CriteriaResolver {
	return order.CloneCriteriaResolvers(c.criteriaResolvers)
}

func (c TestContext) Recipient() common.Address {
	return c.recipient
}
