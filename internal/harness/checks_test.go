package harness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/seaharness/internal/fuzzctx"
	"github.com/roach88/seaharness/internal/order"
	"github.com/roach88/seaharness/internal/testutil"
	"github.com/roach88/seaharness/internal/zone"
)

func execution(decisions ...zone.Decision) *Execution {
	exec := &Execution{}
	for i, d := range decisions {
		exec.Outcomes = append(exec.Outcomes, OrderOutcome{
			Index:     i,
			Zone:      testutil.Zone,
			Consulted: true,
			Decision:  d,
			Response:  d.Response(),
		})
	}
	return exec
}

func withChecks(signatures ...string) fuzzctx.TestContext {
	sels := make([]order.Selector, len(signatures))
	for i, s := range signatures {
		sels[i] = order.SelectorOf(s)
	}
	return fuzzctx.Empty().WithChecks(sels)
}

func TestDefaultChecks_Signatures(t *testing.T) {
	assert.Equal(t, []string{
		CheckAllOrdersApproved,
		CheckAnyOrderRejected,
		CheckRestrictedOrdersConsulted,
	}, DefaultChecks().Signatures())
}

func TestCheckAllOrdersApproved(t *testing.T) {
	r := DefaultChecks()
	tc := withChecks(CheckAllOrdersApproved)

	out := r.RunAll(tc, execution(zone.Approved, zone.Approved))
	require.Len(t, out, 1)
	assert.NoError(t, out[0].Err)
	assert.Equal(t, CheckAllOrdersApproved, out[0].Name)

	out = r.RunAll(tc, execution(zone.Approved, zone.Rejected))
	require.Len(t, out, 1)
	var checkErr *CheckError
	require.True(t, errors.As(out[0].Err, &checkErr))
	assert.Equal(t, CheckAllOrdersApproved, checkErr.Check)
	assert.Contains(t, checkErr.Actual, "order 1 rejected")
	assert.Contains(t, checkErr.Error(), "[1] zone "+testutil.Zone.Hex()+": Rejected")
}

func TestCheckAnyOrderRejected(t *testing.T) {
	r := DefaultChecks()
	tc := withChecks(CheckAnyOrderRejected)

	out := r.RunAll(tc, execution(zone.Approved, zone.Rejected))
	assert.NoError(t, out[0].Err)

	out = r.RunAll(tc, execution(zone.Approved))
	require.Error(t, out[0].Err)
	assert.Contains(t, out[0].Err.Error(), "1 consulted, none rejected")

	out = r.RunAll(tc, &Execution{})
	require.Error(t, out[0].Err, "nothing consulted means nothing rejected")
}

func TestCheckRestrictedOrdersConsulted(t *testing.T) {
	r := DefaultChecks()
	tc := withChecks(CheckRestrictedOrdersConsulted).
		WithOrders([]order.Order{testutil.RestrictedOrder(1), openOrder()})

	exec := &Execution{Outcomes: []OrderOutcome{
		{Index: 0, Consulted: true, Decision: zone.Approved},
		{Index: 1},
	}}
	assert.NoError(t, r.RunAll(tc, exec)[0].Err)

	exec.Outcomes[0].Consulted = false
	err := r.RunAll(tc, exec)[0].Err
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order 0 was not consulted")
}

func TestRunAll_OrderAndUnknownSelectors(t *testing.T) {
	r := DefaultChecks()
	unknown := order.SelectorOf("check_doesNotExist()")
	tc := fuzzctx.Empty().WithChecks([]order.Selector{
		order.SelectorOf(CheckAnyOrderRejected),
		unknown,
		order.SelectorOf(CheckAllOrdersApproved),
	})

	out := r.RunAll(tc, execution(zone.Approved))
	require.Len(t, out, 3)

	assert.Equal(t, CheckAnyOrderRejected, out[0].Name)
	assert.Error(t, out[0].Err)

	assert.Equal(t, unknown, out[1].Selector)
	assert.Equal(t, unknown.String(), out[1].Name)
	require.Error(t, out[1].Err)
	assert.Contains(t, out[1].Err.Error(), "unknown check selector")

	assert.Equal(t, CheckAllOrdersApproved, out[2].Name)
	assert.NoError(t, out[2].Err, "later checks still run")
}

func TestRunAll_NoChecks(t *testing.T) {
	assert.Empty(t, DefaultChecks().RunAll(fuzzctx.Empty(), &Execution{}))
}

func TestCheckRegistry_Register(t *testing.T) {
	r := NewCheckRegistry()
	called := false
	sel, err := r.Register("check_custom()", func(fuzzctx.TestContext, *Execution) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, order.SelectorOf("check_custom()"), sel)

	fn, name, ok := r.Lookup(sel)
	require.True(t, ok)
	assert.Equal(t, "check_custom()", name)
	require.NoError(t, fn(fuzzctx.Empty(), &Execution{}))
	assert.True(t, called)

	_, err = r.Register("check_custom()", func(fuzzctx.TestContext, *Execution) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already bound")

	_, err = r.Register("check_nil()", nil)
	require.Error(t, err)

	_, _, ok = r.Lookup(order.SelectorOf("check_missing()"))
	assert.False(t, ok)
}
