package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/seaharness/internal/harness"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Iterations int
	Workers    int
	Filter     string
	GoldenDir  string
	Update     bool

	// Tokens overrides the iteration token generator (for testing).
	// If nil, campaigns use UUIDv7 tokens.
	Tokens harness.TokenGenerator
}

// RunSummary is the output of the run command.
type RunSummary struct {
	Total     int                    `json:"total"`
	Passed    int                    `json:"passed"`
	Failed    int                    `json:"failed"`
	Scenarios []ScenarioSummary      `json:"scenarios"`
	Failures  []harness.SuiteFailure `json:"failures,omitempty"`
}

// ScenarioSummary describes one campaign that ran.
type ScenarioSummary struct {
	Name       string   `json:"name"`
	Pass       bool     `json:"pass"`
	Iterations int      `json:"iterations"`
	Failed     int      `json:"failed_iterations"`
	Golden     string   `json:"golden,omitempty"` // "match" | "mismatch" | "updated" | "missing"
	Errors     []string `json:"errors,omitempty"`
}

// Golden comparison states.
const (
	goldenMatch    = "match"
	goldenMismatch = "mismatch"
	goldenUpdated  = "updated"
	goldenMissing  = "missing"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario-or-dir>",
		Short: "Run dry-run fuzz campaigns",
		Long: `Run every scenario under the given path as a dry-run campaign. Each
scenario's context is executed once per seed; restricted orders are sent to
the zone oracles the scenario binds, and the scenario's checks run after
each iteration.

With --golden-dir, each campaign's snapshot is compared with
<golden-dir>/<scenario>.golden; --update rewrites those files instead.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed or mismatched their golden file
  2 - Command error (invalid paths, etc.)

Examples:
  seaharness run ./testdata/scenarios
  seaharness run ./scenario.yaml --iterations 1000 --workers 8
  seaharness run ./scenarios --golden-dir ./scenarios/golden --update
  seaharness run ./scenarios --filter "identifier_*" --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCampaigns(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Iterations, "iterations", "n", 0, "seeds per scenario (overrides the scenario file)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent iterations per scenario (default GOMAXPROCS)")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob on the file name")
	cmd.Flags().StringVar(&opts.GoldenDir, "golden-dir", "", "directory of golden snapshots")
	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")

	return cmd
}

func runCampaigns(opts *RunOptions, root string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := f.Logger()

	if opts.Update && opts.GoldenDir == "" {
		return f.fail(ExitCommandError, CodeRunFailed, "invalid flags", errors.New("--update requires --golden-dir"))
	}
	if opts.Iterations < 0 || opts.Workers < 0 {
		return f.fail(ExitCommandError, CodeRunFailed, "invalid flags", errors.New("--iterations and --workers must not be negative"))
	}

	paths, err := harness.FindScenarios(root)
	if err != nil {
		return f.fail(ExitCommandError, CodeScenarioInvalid, "failed to find scenarios", err)
	}
	paths, err = filterScenarios(paths, opts.Filter)
	if err != nil {
		return f.fail(ExitCommandError, CodeRunFailed, "invalid filter", err)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("running scenarios", "root", root, "count", len(paths))
	suite, err := harness.RunSuite(ctx, paths, harness.RunOptions{
		Iterations: opts.Iterations,
		Workers:    opts.Workers,
		Tokens:     opts.Tokens,
		Logger:     logger,
	})
	if err != nil {
		return f.fail(ExitCommandError, CodeRunFailed, "run interrupted", err)
	}

	summary := RunSummary{
		Total:     suite.Total,
		Passed:    suite.Passed,
		Failed:    suite.Failed,
		Scenarios: make([]ScenarioSummary, 0, len(suite.Results)),
		Failures:  suite.Failures,
	}
	for _, r := range suite.Results {
		s := ScenarioSummary{
			Name:       r.Campaign,
			Pass:       r.Pass,
			Iterations: len(r.Iterations),
			Failed:     len(r.Failed()),
		}
		for _, it := range r.Failed() {
			for _, e := range it.Errors {
				s.Errors = append(s.Errors, fmt.Sprintf("seed %d: %s", it.Seed, firstLine(e)))
			}
		}

		if opts.GoldenDir != "" {
			state, err := compareGolden(opts.GoldenDir, r, opts.Update)
			if err != nil {
				return f.fail(ExitCommandError, CodeGoldenMismatch, "golden file error", err)
			}
			s.Golden = state
			if state == goldenMismatch || state == goldenMissing {
				if s.Pass {
					summary.Passed--
					summary.Failed++
				}
				s.Pass = false
				s.Errors = append(s.Errors, fmt.Sprintf("golden file %s (run with --update to regenerate)", state))
			}
		}
		summary.Scenarios = append(summary.Scenarios, s)
	}

	if summary.Failed > 0 {
		msg := fmt.Sprintf("%d scenario(s) failed", summary.Failed)
		if f.JSON() {
			_ = f.Failure(CodeRunFailed, msg, summary)
		} else {
			printSummary(cmd, summary)
		}
		return NewExitError(ExitFailure, msg)
	}

	if f.JSON() {
		return f.Success(summary)
	}
	printSummary(cmd, summary)
	return nil
}

func filterScenarios(paths []string, pattern string) ([]string, error) {
	if pattern == "" {
		return paths, nil
	}
	var out []string
	for _, p := range paths {
		base := filepath.Base(p)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern: %w", err)
		}
		if matched {
			out = append(out, p)
		}
	}
	return out, nil
}

// compareGolden checks r against <dir>/<campaign>.golden, or writes it when
// update is set.
func compareGolden(dir string, r *harness.Result, update bool) (string, error) {
	data, err := harness.Snapshot(r)
	if err != nil {
		return "", fmt.Errorf("snapshot %s: %w", r.Campaign, err)
	}
	path := filepath.Join(dir, r.Campaign+".golden")

	if update {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create golden directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return "", fmt.Errorf("failed to write golden file: %w", err)
		}
		return goldenUpdated, nil
	}

	want, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return goldenMissing, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read golden file: %w", err)
	}
	if !bytes.Equal(want, data) {
		return goldenMismatch, nil
	}
	return goldenMatch, nil
}

func printSummary(cmd *cobra.Command, s RunSummary) {
	w := cmd.OutOrStdout()
	for _, sc := range s.Scenarios {
		status := "PASS"
		if !sc.Pass {
			status = "FAIL"
		}
		line := fmt.Sprintf("%s %s (%d iterations", status, sc.Name, sc.Iterations)
		if sc.Failed > 0 {
			line += fmt.Sprintf(", %d failed", sc.Failed)
		}
		if sc.Golden != "" {
			line += ", golden " + sc.Golden
		}
		fmt.Fprintln(w, line+")")
		for _, e := range sc.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	ran := make(map[string]bool, len(s.Scenarios))
	for _, sc := range s.Scenarios {
		ran[sc.Name] = true
	}
	for _, fail := range s.Failures {
		if fail.Scenario == "" || !ran[fail.Scenario] {
			fmt.Fprintf(w, "FAIL %s\n  %s\n", fail.ScenarioPath, fail.Error)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary: %d passed, %d failed, %d total\n", s.Passed, s.Failed, s.Total)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
