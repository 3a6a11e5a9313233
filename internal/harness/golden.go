package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/seaharness/internal/canonical"
)

// GoldenDir is where golden snapshots live unless overridden.
const GoldenDir = "testdata/golden"

// Snapshot renders r as canonical JSON for golden comparison.
// Iteration tokens are left out so that snapshots do not depend on the
// token generator.
func Snapshot(r *Result) ([]byte, error) {
	iterations := make([]any, len(r.Iterations))
	for i, it := range r.Iterations {
		iterations[i] = iterationCanonical(it)
	}
	errs := make([]string, len(r.Errors))
	copy(errs, r.Errors)
	return canonical.Marshal(map[string]any{
		"campaign":   r.Campaign,
		"pass":       r.Pass,
		"iterations": iterations,
		"errors":     errs,
	})
}

// IterationDigest returns the content hash of an iteration's outcome. Two
// runs of the same seed over the same context and oracles have equal
// digests.
func IterationDigest(it IterationResult) (string, error) {
	return canonical.Fingerprint(canonical.DomainIteration, iterationCanonical(it))
}

func iterationCanonical(it IterationResult) map[string]any {
	trace := make([]any, len(it.Trace))
	for i, ev := range it.Trace {
		trace[i] = eventCanonical(ev)
	}
	errs := make([]string, len(it.Errors))
	copy(errs, it.Errors)
	return map[string]any{
		"index":       it.Index,
		"seed":        it.Seed,
		"fingerprint": it.Fingerprint,
		"pass":        it.Pass,
		"trace":       trace,
		"errors":      errs,
	}
}

func eventCanonical(ev TraceEvent) map[string]any {
	m := map[string]any{
		"type": ev.Type,
		"seq":  ev.Seq,
	}
	switch ev.Type {
	case EventZoneCall:
		m["order_index"] = ev.OrderIndex
		m["zone"] = ev.Zone
		m["decision"] = ev.Decision
		m["response"] = ev.Response
	case EventZoneSkipped:
		m["order_index"] = ev.OrderIndex
	case EventCheck:
		m["check"] = ev.Check
		m["passed"] = ev.Passed
	}
	return m
}

// AssertGolden compares r's snapshot with the golden file named name.
// Files live in GoldenDir with a ".golden" suffix unless opts say otherwise.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, r *Result, opts ...goldie.Option) {
	t.Helper()

	data, err := Snapshot(r)
	if err != nil {
		t.Fatalf("snapshot %s: %v", name, err)
	}

	g := goldie.New(t, append([]goldie.Option{
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	}, opts...)...)
	g.Assert(t, name, data)
}
