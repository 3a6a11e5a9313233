package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/seaharness/internal/harness"
)

// InspectResult is the output of the inspect command.
type InspectResult struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Fingerprint  string         `json:"fingerprint"`
	Seeds        []uint64       `json:"seeds"`
	OrderDigests []string       `json:"order_digests"`
	Context      map[string]any `json:"context"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <scenario>",
		Short: "Print a scenario's canonical context and fingerprint",
		Long: `Load a scenario, build its test context and print the context in
canonical form together with its fingerprint and per-order digests.

Two scenarios with the same fingerprint describe the same context.

Examples:
  seaharness inspect ./testdata/scenarios/always_approve.yaml
  seaharness inspect ./scenario.yaml --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}
}

func runInspect(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := harness.LoadScenario(path)
	if err != nil {
		return f.fail(ExitCommandError, CodeScenarioInvalid, "failed to load scenario", err)
	}

	tc := s.Context()
	fp, err := tc.Fingerprint()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to fingerprint context", err)
	}
	data, err := tc.MarshalCanonical()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode context", err)
	}

	result := InspectResult{
		Name:         s.Name,
		Description:  s.Description,
		Fingerprint:  fp,
		Seeds:        s.Seeds(),
		OrderDigests: make([]string, tc.OrderCount()),
		Context:      tc.Canonical(),
	}
	for i := range result.OrderDigests {
		result.OrderDigests[i] = tc.Order(i).Digest().Hex()
	}

	if f.JSON() {
		return f.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Scenario:    %s\n", result.Name)
	fmt.Fprintf(w, "Description: %s\n", result.Description)
	fmt.Fprintf(w, "Fingerprint: %s\n", result.Fingerprint)
	fmt.Fprintf(w, "Seeds:       %s\n", formatSeeds(result.Seeds))
	fmt.Fprintf(w, "Orders:      %d\n", len(result.OrderDigests))
	for i, d := range result.OrderDigests {
		fmt.Fprintf(w, "  [%d] %s\n", i, d)
	}
	fmt.Fprintf(w, "Context:\n%s\n", data)
	return nil
}

func formatSeeds(seeds []uint64) string {
	switch len(seeds) {
	case 0:
		return "none"
	case 1:
		return fmt.Sprint(seeds[0])
	}
	return fmt.Sprintf("%d..%d (%d)", seeds[0], seeds[len(seeds)-1], len(seeds))
}
