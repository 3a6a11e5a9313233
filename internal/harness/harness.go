package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/seaharness/internal/fuzzctx"
)

// TokenGenerator produces iteration tokens.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator produces time-ordered UUIDv7 tokens.
//
// Thread-safety: safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Campaign runs one base context over many seeds.
type Campaign struct {
	Name string
	Base fuzzctx.TestContext

	// Seeds lists the fuzz seeds; iteration i runs Seeds[i].
	Seeds []uint64

	Driver Driver

	// Checks resolves the selectors the base context lists. Defaults to
	// DefaultChecks().
	Checks *CheckRegistry

	// Workers bounds concurrent iterations. Defaults to GOMAXPROCS.
	Workers int

	// Tokens defaults to UUIDv7Generator.
	Tokens TokenGenerator

	// Logger defaults to a discarding logger.
	Logger *slog.Logger
}

func (c Campaign) withDefaults() Campaign {
	if c.Checks == nil {
		c.Checks = DefaultChecks()
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Tokens == nil {
		c.Tokens = UUIDv7Generator{}
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// SeedRange returns n consecutive seeds starting at first.
func SeedRange(first uint64, n int) []uint64 {
	if n < 0 {
		n = 0
	}
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = first + uint64(i)
	}
	return seeds
}

// Run executes every iteration of c and returns the results in seed order.
//
// Iterations run on up to c.Workers goroutines. Each derives its own context
// from c.Base, so iterations share nothing but the driver and the check
// registry. Driver and check failures fail the iteration, not the call; Run
// returns an error only for an invalid campaign or a cancelled ctx.
func Run(ctx context.Context, c Campaign) (*Result, error) {
	if c.Driver == nil {
		return nil, fmt.Errorf("campaign %q: driver is required", c.Name)
	}
	if len(c.Seeds) == 0 {
		return nil, fmt.Errorf("campaign %q: at least one seed is required", c.Name)
	}
	c = c.withDefaults()

	// Tokens are drawn up front so that a counting generator numbers
	// iterations by index regardless of scheduling.
	tokens := make([]string, len(c.Seeds))
	for i := range tokens {
		tokens[i] = c.Tokens.Generate()
	}

	c.Logger.Info("campaign started",
		"campaign", c.Name,
		"iterations", len(c.Seeds),
		"workers", c.Workers)

	iterations := make([]IterationResult, len(c.Seeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)
	for i, seed := range c.Seeds {
		i, seed := i, seed
		g.Go(func() error {
			it, err := runIteration(gctx, c, i, seed, tokens[i])
			if err != nil {
				return err
			}
			iterations[i] = it
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("campaign %q: %w", c.Name, err)
	}

	result := NewResult(c.Name)
	result.Iterations = iterations
	for _, it := range iterations {
		if !it.Pass {
			result.Pass = false
		}
	}

	c.Logger.Info("campaign finished",
		"campaign", c.Name,
		"pass", result.Pass,
		"failed", len(result.Failed()))
	return result, nil
}

// runIteration returns an error only when ctx is done.
func runIteration(ctx context.Context, c Campaign, index int, seed uint64, token string) (IterationResult, error) {
	if err := ctx.Err(); err != nil {
		return IterationResult{}, err
	}

	tc := c.Base.WithFuzzParams(fuzzctx.FuzzParams{Seed: seed})
	it := IterationResult{
		Index: index,
		Token: token,
		Seed:  seed,
		Pass:  true,
		Trace: []TraceEvent{},
	}
	logger := c.Logger.With("campaign", c.Name, "iteration", index, "token", token)

	fp, err := tc.Fingerprint()
	if err != nil {
		it.AddError(fmt.Sprintf("fingerprint context: %v", err))
		return it, nil
	}
	it.Fingerprint = fp

	exec, err := c.Driver.Execute(ctx, tc)
	if exec != nil {
		for _, o := range exec.Outcomes {
			it.addEvent(outcomeEvent(o))
		}
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return IterationResult{}, err
		}
		logger.Warn("execution failed", "error", err)
		it.AddError(fmt.Sprintf("execute: %v", err))
		return it, nil
	}

	for _, out := range c.Checks.RunAll(tc, exec) {
		it.addEvent(TraceEvent{
			Type:   EventCheck,
			Check:  out.Name,
			Passed: out.Err == nil,
		})
		if out.Err != nil {
			it.AddError(out.Err.Error())
		}
	}

	logger.Debug("iteration finished", "seed", seed, "pass", it.Pass)
	return it, nil
}

func outcomeEvent(o OrderOutcome) TraceEvent {
	if !o.Consulted {
		return TraceEvent{Type: EventZoneSkipped, OrderIndex: o.Index}
	}
	return TraceEvent{
		Type:       EventZoneCall,
		OrderIndex: o.Index,
		Zone:       o.Zone.Hex(),
		Decision:   o.Decision.String(),
		Response:   hexutil.Encode(o.Response),
	}
}
