package harness

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScenarioNotFoundError is returned when a scenario path does not exist.
type ScenarioNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *ScenarioNotFoundError) Error() string {
	return fmt.Sprintf("scenario file %q does not exist", e.Path)
}

// FindScenarios returns the scenario files under root, sorted. A file root
// is returned as the only entry. Files ending in .yaml or .yml count.
func FindScenarios(root string) ([]string, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, &ScenarioNotFoundError{Path: root}
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// RunOptions configures scenario runs. Zero values take Campaign defaults.
type RunOptions struct {
	// Iterations overrides the scenario's iteration count when positive.
	Iterations int
	Workers    int
	Tokens     TokenGenerator
	Checks     *CheckRegistry
	Logger     *slog.Logger
}

// CampaignFor builds the dry-run campaign for s: its zones go into a fresh
// registry behind an OracleDriver.
func CampaignFor(s *Scenario, opts RunOptions) (Campaign, error) {
	reg, err := s.Registry()
	if err != nil {
		return Campaign{}, err
	}
	driver := NewOracleDriver(reg)
	if opts.Logger != nil {
		driver.Logger = opts.Logger
	}

	seeds := s.Seeds()
	if opts.Iterations > 0 {
		seeds = SeedRange(s.Seed, opts.Iterations)
	}
	return Campaign{
		Name:    s.Name,
		Base:    s.Context(),
		Seeds:   seeds,
		Driver:  driver,
		Checks:  opts.Checks,
		Workers: opts.Workers,
		Tokens:  opts.Tokens,
		Logger:  opts.Logger,
	}, nil
}

// RunScenario runs s as a dry-run campaign.
func RunScenario(ctx context.Context, s *Scenario, opts RunOptions) (*Result, error) {
	c, err := CampaignFor(s, opts)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return Run(ctx, c)
}

// SuiteResult summarizes a run over several scenario files.
type SuiteResult struct {
	Total    int            `json:"total"`
	Passed   int            `json:"passed"`
	Failed   int            `json:"failed"`
	Results  []*Result      `json:"results,omitempty"`
	Failures []SuiteFailure `json:"failures,omitempty"`
}

// SuiteFailure is one scenario that failed to load, run or pass.
type SuiteFailure struct {
	ScenarioPath string `json:"scenario_path"`
	Scenario     string `json:"scenario,omitempty"`
	Error        string `json:"error"`
}

// Pass reports whether every scenario passed.
func (r *SuiteResult) Pass() bool {
	return r.Failed == 0
}

// RunSuite loads and runs each scenario in paths, in order. Load and run
// failures are recorded and the suite continues; only a cancelled ctx stops
// it early.
func RunSuite(ctx context.Context, paths []string, opts RunOptions) (*SuiteResult, error) {
	result := &SuiteResult{}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Total++

		s, err := LoadScenario(path)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, SuiteFailure{
				ScenarioPath: path,
				Error:        fmt.Sprintf("failed to load scenario: %v", err),
			})
			continue
		}

		runResult, err := RunScenario(ctx, s, opts)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failed++
			result.Failures = append(result.Failures, SuiteFailure{
				ScenarioPath: path,
				Scenario:     s.Name,
				Error:        fmt.Sprintf("scenario execution failed: %v", err),
			})
			continue
		}
		result.Results = append(result.Results, runResult)

		if !runResult.Pass {
			result.Failed++
			result.Failures = append(result.Failures, SuiteFailure{
				ScenarioPath: path,
				Scenario:     s.Name,
				Error:        summarizeFailures(runResult),
			})
			continue
		}
		result.Passed++
	}
	return result, nil
}

func summarizeFailures(r *Result) string {
	failed := r.Failed()
	if len(failed) == 0 {
		return fmt.Sprintf("campaign failed: %v", r.Errors)
	}
	first := failed[0]
	msg := ""
	if len(first.Errors) > 0 {
		msg = strings.SplitN(first.Errors[0], "\n", 2)[0]
	}
	return fmt.Sprintf("%d of %d iterations failed; first (seed %d): %s",
		len(failed), len(r.Iterations), first.Seed, msg)
}
