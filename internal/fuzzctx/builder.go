package fuzzctx

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/roach88/seaharness/internal/order"
)

// Every setter has a value receiver: c is already a copy, so assigning to
// one field and returning c leaves the caller's context untouched. Fields
// holding slices are replaced with fresh copies, never appended to.

// WithOrders replaces the orders with a deep copy of orders, including each
// order's items, signature and extra data.
func (c TestContext) WithOrders(orders []order.Order) TestContext {
	c.orders = order.CloneOrders(orders)
	return c
}

// WithExecutor replaces the executor handle.
func (c TestContext) WithExecutor(executor Executor) TestContext {
	c.executor = executor
	return c
}

// WithCaller replaces the caller. The zero address disables impersonation.
func (c TestContext) WithCaller(caller common.Address) TestContext {
	c.caller = caller
	return c
}

// WithFuzzParams replaces the fuzz parameters with a copy of fuzzParams.
func (c TestContext) WithFuzzParams(fuzzParams FuzzParams) TestContext {
	c.fuzzParams = fuzzParams.Clone()
	return c
}

// WithChecks replaces the post-execution checks with a copy of checks.
func (c TestContext) WithChecks(checks []order.Selector) TestContext {
	c.checks = order.CloneSelectors(checks)
	return c
}

// WithCounter replaces the offerer counter passed to the protocol.
func (c TestContext) WithCounter(counter uint256.Int) TestContext {
	c.counter = counter
	return c
}

// WithFulfillerConduitKey replaces the conduit key used to route the
// fulfiller's transfers.
func (c TestContext) WithFulfillerConduitKey(key common.Hash) TestContext {
	c.fulfillerConduitKey = key
	return c
}

// WithCriteriaResolvers replaces the criteria resolvers with an element-wise
// deep copy of resolvers.
func (c TestContext) WithCriteriaResolvers(resolvers []order.CriteriaResolver) TestContext {
	c.criteriaResolvers = order.CloneCriteriaResolvers(resolvers)
	return c
}

// WithRecipient replaces the address that receives offered items.
func (c TestContext) WithRecipient(recipient common.Address) TestContext {
	c.recipient = recipient
	return c
}
