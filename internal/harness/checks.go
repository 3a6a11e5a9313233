package harness

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/roach88/seaharness/internal/fuzzctx"
	"github.com/roach88/seaharness/internal/order"
	"github.com/roach88/seaharness/internal/zone"
)

// Built-in check signatures. A context lists checks by the selector of
// their signature.
const (
	CheckAllOrdersApproved         = "check_allOrdersApproved()"
	CheckAnyOrderRejected          = "check_anyOrderRejected()"
	CheckRestrictedOrdersConsulted = "check_restrictedOrdersConsulted()"
)

// CheckFunc inspects a finished execution. It returns a *CheckError (or any
// error) when the property does not hold.
type CheckFunc func(tc fuzzctx.TestContext, exec *Execution) error

// CheckError is returned when a check fails.
// It carries enough context to debug the failure without rerunning.
type CheckError struct {
	Check    string
	Expected string
	Actual   string
	Outcomes []OrderOutcome
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Check failed: %s\n", e.Check)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Outcomes) > 0 {
		fmt.Fprintf(&buf, "\nOrders:\n")
		for _, o := range e.Outcomes {
			if o.Consulted {
				fmt.Fprintf(&buf, "  [%d] zone %s: %s\n", o.Index, o.Zone.Hex(), o.Decision)
			} else {
				fmt.Fprintf(&buf, "  [%d] unrestricted\n", o.Index)
			}
		}
	}
	return buf.String()
}

type registeredCheck struct {
	signature string
	fn        CheckFunc
}

// CheckRegistry maps check selectors to their implementations.
//
// Thread-safety: all methods are safe for concurrent use.
type CheckRegistry struct {
	mu     sync.RWMutex
	checks map[order.Selector]registeredCheck
}

// NewCheckRegistry returns an empty registry.
func NewCheckRegistry() *CheckRegistry {
	return &CheckRegistry{checks: make(map[order.Selector]registeredCheck)}
}

// DefaultChecks returns a registry holding the built-in checks.
func DefaultChecks() *CheckRegistry {
	r := NewCheckRegistry()
	r.mustRegister(CheckAllOrdersApproved, checkAllOrdersApproved)
	r.mustRegister(CheckAnyOrderRejected, checkAnyOrderRejected)
	r.mustRegister(CheckRestrictedOrdersConsulted, checkRestrictedOrdersConsulted)
	return r
}

// Register binds fn to the selector of signature. Registering the same
// selector twice is an error.
func (r *CheckRegistry) Register(signature string, fn CheckFunc) (order.Selector, error) {
	if fn == nil {
		return order.Selector{}, fmt.Errorf("register check %s: nil function", signature)
	}
	sel := order.SelectorOf(signature)

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, exists := r.checks[sel]; exists {
		return order.Selector{}, fmt.Errorf("register check %s: selector %s already bound to %s",
			signature, sel, prev.signature)
	}
	r.checks[sel] = registeredCheck{signature: signature, fn: fn}
	return sel, nil
}

func (r *CheckRegistry) mustRegister(signature string, fn CheckFunc) {
	if _, err := r.Register(signature, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the check bound to sel and its signature.
func (r *CheckRegistry) Lookup(sel order.Selector) (CheckFunc, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.checks[sel]
	return c.fn, c.signature, ok
}

// Signatures returns the registered signatures, sorted.
func (r *CheckRegistry) Signatures() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sigs := make([]string, 0, len(r.checks))
	for _, c := range r.checks {
		sigs = append(sigs, c.signature)
	}
	sort.Strings(sigs)
	return sigs
}

// CheckOutcome is the result of one check run.
type CheckOutcome struct {
	Selector order.Selector
	Name     string
	Err      error
}

// RunAll runs tc's checks in the order the context lists them. An unknown
// selector yields a failing outcome; remaining checks still run.
func (r *CheckRegistry) RunAll(tc fuzzctx.TestContext, exec *Execution) []CheckOutcome {
	sels := tc.Checks()
	outcomes := make([]CheckOutcome, 0, len(sels))
	for _, sel := range sels {
		fn, name, ok := r.Lookup(sel)
		if !ok {
			outcomes = append(outcomes, CheckOutcome{
				Selector: sel,
				Name:     sel.String(),
				Err:      fmt.Errorf("unknown check selector %s", sel),
			})
			continue
		}
		outcomes = append(outcomes, CheckOutcome{
			Selector: sel,
			Name:     name,
			Err:      fn(tc, exec),
		})
	}
	return outcomes
}

func checkAllOrdersApproved(_ fuzzctx.TestContext, exec *Execution) error {
	for _, o := range exec.Outcomes {
		if o.Consulted && o.Decision != zone.Approved {
			return &CheckError{
				Check:    CheckAllOrdersApproved,
				Expected: "every consulted zone approves",
				Actual:   fmt.Sprintf("order %d rejected by zone %s", o.Index, o.Zone.Hex()),
				Outcomes: exec.Outcomes,
			}
		}
	}
	return nil
}

func checkAnyOrderRejected(_ fuzzctx.TestContext, exec *Execution) error {
	for _, o := range exec.Outcomes {
		if o.Consulted && o.Decision != zone.Approved {
			return nil
		}
	}
	return &CheckError{
		Check:    CheckAnyOrderRejected,
		Expected: "at least one consulted zone rejects",
		Actual:   fmt.Sprintf("%d consulted, none rejected", len(exec.Consulted())),
		Outcomes: exec.Outcomes,
	}
}

func checkRestrictedOrdersConsulted(tc fuzzctx.TestContext, exec *Execution) error {
	for i := 0; i < tc.OrderCount(); i++ {
		if !tc.Order(i).Parameters.OrderType.Restricted() {
			continue
		}
		if i >= len(exec.Outcomes) || !exec.Outcomes[i].Consulted {
			return &CheckError{
				Check:    CheckRestrictedOrdersConsulted,
				Expected: "every restricted order is sent to its zone",
				Actual:   fmt.Sprintf("order %d was not consulted", i),
				Outcomes: exec.Outcomes,
			}
		}
	}
	return nil
}
