package fuzzctx

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/seaharness/internal/order"
	"github.com/roach88/seaharness/internal/testutil"
)

var (
	reference = Executor{Variant: "reference", Address: testutil.Addr(0xa1)}
	optimized = Executor{Variant: "optimized", Address: testutil.Addr(0xa2)}
	callerA   = testutil.Addr(0xc1)
	callerB   = testutil.Addr(0xc2)
)

// diffContexts compares every field, including unexported ones.
func diffContexts(a, b TestContext) string {
	return cmp.Diff(a, b, cmp.AllowUnexported(TestContext{}))
}

func TestEmpty_ZeroValues(t *testing.T) {
	tc := Empty()

	assert.NotNil(t, tc.orders)
	assert.NotNil(t, tc.checks)
	assert.NotNil(t, tc.criteriaResolvers)
	assert.Equal(t, 0, tc.OrderCount())
	assert.Empty(t, tc.Orders())
	assert.Empty(t, tc.Checks())
	assert.Empty(t, tc.CriteriaResolvers())

	assert.True(t, tc.Executor().IsZero())
	assert.Equal(t, common.Address{}, tc.Caller())
	assert.False(t, tc.Impersonates())
	assert.Equal(t, FuzzParams{}, tc.FuzzParams())
	counter := tc.Counter()
	assert.True(t, counter.IsZero())
	assert.Equal(t, common.Hash{}, tc.FulfillerConduitKey())
	assert.Equal(t, common.Address{}, tc.Recipient())
}

func TestEmpty_AccessorsNeverNil(t *testing.T) {
	tc := Empty()
	assert.NotNil(t, tc.Orders())
	assert.NotNil(t, tc.Checks())
	assert.NotNil(t, tc.CriteriaResolvers())
}

func TestFrom_PopulatesFourFields(t *testing.T) {
	orders := []order.Order{testutil.RestrictedOrder(1)}
	tc := From(orders, reference, callerA, FuzzParams{Seed: 42})

	assert.Equal(t, orders, tc.Orders())
	assert.Equal(t, reference, tc.Executor())
	assert.Equal(t, callerA, tc.Caller())
	assert.True(t, tc.Impersonates())
	assert.Equal(t, uint64(42), tc.FuzzParams().Seed)

	// remaining fields stay zero
	assert.Empty(t, tc.Checks())
	assert.Empty(t, tc.CriteriaResolvers())
	counter := tc.Counter()
	assert.True(t, counter.IsZero())
	assert.Equal(t, common.Hash{}, tc.FulfillerConduitKey())
	assert.Equal(t, common.Address{}, tc.Recipient())
}

func TestFrom_NilOrdersBecomeEmpty(t *testing.T) {
	tc := From(nil, reference, common.Address{}, FuzzParams{})
	assert.NotNil(t, tc.orders)
	assert.Equal(t, 0, tc.OrderCount())
	assert.False(t, tc.Impersonates())
}

func TestFrom_StoresOrdersWithoutCopy(t *testing.T) {
	orders := []order.Order{testutil.RestrictedOrder(1)}
	tc := From(orders, reference, callerA, FuzzParams{})

	// From keeps the caller's slice; WithOrders is the isolating setter.
	orders[0].Numerator = 9
	assert.Equal(t, uint64(9), tc.Order(0).Numerator)

	isolated := tc.WithOrders(orders)
	orders[0].Numerator = 3
	assert.Equal(t, uint64(9), isolated.Order(0).Numerator)
}

func TestOrder_ReturnsCopy(t *testing.T) {
	tc := Empty().WithOrders([]order.Order{testutil.RestrictedOrder(1)})

	o := tc.Order(0)
	o.Parameters.Consideration[0].IdentifierOrCriteria = testutil.U(5)
	o.Signature[0] = 0xff

	assert.Equal(t, uint64(1), tc.Order(0).Parameters.Consideration[0].IdentifierOrCriteria.Uint64())
	assert.Equal(t, byte(0x01), tc.Order(0).Signature[0])
}

func TestOrder_PanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { Empty().Order(0) })
}

func TestExampleScenario_CallerSwap(t *testing.T) {
	order1 := testutil.RestrictedOrder(1)
	tc := From([]order.Order{}, reference, callerA, FuzzParams{Seed: 0}).
		WithOrders([]order.Order{order1})

	swapped := tc.WithCaller(callerB)

	assert.Equal(t, callerB, swapped.Caller())
	require.Equal(t, 1, swapped.OrderCount())
	assert.Equal(t, order1, swapped.Order(0))
	assert.Equal(t, uint64(0), swapped.FuzzParams().Seed)

	// the original still has callerA
	assert.Equal(t, callerA, tc.Caller())
}

func TestFingerprint_StableAndContentAddressed(t *testing.T) {
	a := Empty().
		WithOrders([]order.Order{testutil.RestrictedOrder(1)}).
		WithCaller(callerA).
		WithRecipient(testutil.Addr(0x99))
	b := Empty().
		WithRecipient(testutil.Addr(0x99)).
		WithCaller(callerA).
		WithOrders([]order.Order{testutil.RestrictedOrder(1)})

	fa, err := a.Fingerprint()
	require.NoError(t, err)
	fb, err := b.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fa, fb)

	fc, err := a.WithFuzzParams(FuzzParams{Seed: 1}).Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fa, fc)
}

func TestMarshalCanonical_EmptyContext(t *testing.T) {
	data, err := Empty().MarshalCanonical()
	require.NoError(t, err)

	zeroAddr := "0x0000000000000000000000000000000000000000"
	zeroHash := "0x0000000000000000000000000000000000000000000000000000000000000000"
	want := `{"auxiliary":{"counter":"0","criteria_resolvers":[],"fulfiller_conduit_key":"` + zeroHash +
		`","recipient":"` + zeroAddr + `"},"caller":"` + zeroAddr +
		`","checks":[],"executor":{"address":"` + zeroAddr + `","variant":""},"fuzz_params":{"seed":0},"orders":[]}`
	assert.Equal(t, want, string(data))
}

func TestCanonical_OrderFields(t *testing.T) {
	tc := Empty().
		WithOrders([]order.Order{testutil.RestrictedOrder(7)}).
		WithChecks([]order.Selector{{0xde, 0xad, 0xbe, 0xef}}).
		WithCriteriaResolvers([]order.CriteriaResolver{testutil.Resolver(0, 3)})

	m := tc.Canonical()
	orders := m["orders"].([]any)
	require.Len(t, orders, 1)
	params := orders[0].(map[string]any)["parameters"].(map[string]any)
	assert.Equal(t, "FULL_RESTRICTED", params["order_type"])
	consideration := params["consideration"].([]any)
	assert.Equal(t, "7", consideration[0].(map[string]any)["identifier_or_criteria"])
	assert.Equal(t, "0x010203", orders[0].(map[string]any)["signature"])

	assert.Equal(t, []string{"0xdeadbeef"}, m["checks"])
	resolvers := m["auxiliary"].(map[string]any)["criteria_resolvers"].([]any)
	assert.Equal(t, "CONSIDERATION", resolvers[0].(map[string]any)["side"])
	assert.Equal(t, "3", resolvers[0].(map[string]any)["identifier"])
}
