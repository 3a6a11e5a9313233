package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/roach88/seaharness/internal/fuzzctx"
	"github.com/roach88/seaharness/internal/order"
	"github.com/roach88/seaharness/internal/zone"
)

// Driver executes one context against the protocol under test.
//
// Implementations must not retain tc after returning and must be safe for
// concurrent use; campaigns call Execute from several workers at once.
type Driver interface {
	Execute(ctx context.Context, tc fuzzctx.TestContext) (*Execution, error)
}

// OrderOutcome records what happened to one order during execution.
type OrderOutcome struct {
	Index  int
	Digest common.Hash
	Zone   common.Address

	// Consulted is false for orders whose type does not involve a zone.
	Consulted bool
	Decision  zone.Decision

	// Response is the raw wire response the zone returned.
	Response []byte
}

// Execution is the observable result of one Execute call.
type Execution struct {
	Fulfiller common.Address
	Outcomes  []OrderOutcome
}

// Approved reports whether every consulted zone approved.
func (e *Execution) Approved() bool {
	for _, o := range e.Outcomes {
		if o.Consulted && o.Decision != zone.Approved {
			return false
		}
	}
	return true
}

// Consulted returns the outcomes of orders whose zone was asked.
func (e *Execution) Consulted() []OrderOutcome {
	var out []OrderOutcome
	for _, o := range e.Outcomes {
		if o.Consulted {
			out = append(out, o)
		}
	}
	return out
}

// OracleDriver is a dry-run Driver. It asks the zone registered for each
// restricted order whether the order may be fulfilled and records the
// answer. Nothing is settled.
//
// A restricted order whose zone is not registered is an error. A zone call
// that aborts stops execution with an error wrapping zone.ErrCallAborted; a
// rejection is recorded and execution continues.
type OracleDriver struct {
	Registry *zone.Registry
	Logger   *slog.Logger
}

// NewOracleDriver returns a driver that consults reg. Logs are discarded
// until Logger is set.
func NewOracleDriver(reg *zone.Registry) *OracleDriver {
	return &OracleDriver{
		Registry: reg,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Fulfiller returns the address that fulfills on behalf of tc: the caller
// when impersonating, otherwise the executor.
func Fulfiller(tc fuzzctx.TestContext) common.Address {
	if tc.Impersonates() {
		return tc.Caller()
	}
	return tc.Executor().Address
}

// Execute implements Driver.
func (d *OracleDriver) Execute(ctx context.Context, tc fuzzctx.TestContext) (*Execution, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	orders := tc.Orders()
	digests := make([]common.Hash, len(orders))
	for i := range orders {
		digests[i] = orders[i].Digest()
	}

	exec := &Execution{
		Fulfiller: Fulfiller(tc),
		Outcomes:  make([]OrderOutcome, 0, len(orders)),
	}

	for i, o := range orders {
		if err := ctx.Err(); err != nil {
			return exec, err
		}

		out := OrderOutcome{
			Index:  i,
			Digest: digests[i],
			Zone:   o.Parameters.Zone,
		}
		if !o.Parameters.OrderType.Restricted() {
			exec.Outcomes = append(exec.Outcomes, out)
			continue
		}

		oracle, ok := d.Registry.Lookup(o.Parameters.Zone)
		if !ok {
			return exec, fmt.Errorf("order %d: no zone registered at %s", i, o.Parameters.Zone.Hex())
		}

		params := order.ZoneParametersFor(o, exec.Fulfiller, digests[i], digests)
		resp, err := zone.Call(oracle, params)
		if err != nil {
			logger.Warn("zone call aborted",
				"order", i,
				"zone", o.Parameters.Zone.Hex(),
				"error", err)
			return exec, fmt.Errorf("order %d: %w", i, err)
		}

		out.Consulted = true
		out.Response = resp
		out.Decision = zone.Interpret(resp)
		exec.Outcomes = append(exec.Outcomes, out)

		logger.Debug("zone consulted",
			"order", i,
			"zone", o.Parameters.Zone.Hex(),
			"decision", out.Decision.String())
	}
	return exec, nil
}
