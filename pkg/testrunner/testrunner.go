package testrunner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"midnightcli/pkg/core"
	"midnightcli/pkg/runner"
)

// ErrTestsFailed is the generic outcome for a non-zero test-runner exit. The
// runner's own output carries the details; nothing is parsed out of it.
var ErrTestsFailed = errors.New("some tests failed")

// TestsDir holds the project's test files
const TestsDir = "tests"

// Options map 1:1 onto the external runner's flags
type Options struct {
	Watch    bool
	Coverage bool
	Verbose  bool
}

// Runner drives the project's package-manager test script
type Runner struct {
	toolchain *core.Toolchain
}

func NewRunner(toolchain *core.Toolchain) *Runner {
	return &Runner{toolchain: toolchain}
}

// Run makes sure a tests directory exists (scaffolding an example test when
// absent) and invokes the test runner as a blocking subprocess.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	if err := ensureTestsDir(); err != nil {
		return err
	}

	args := []string{"test"}
	var extra []string
	if opts.Watch {
		extra = append(extra, "--watch")
	}
	if opts.Coverage {
		extra = append(extra, "--experimental-test-coverage")
	}
	if opts.Verbose {
		extra = append(extra, "--test-reporter=spec")
	}
	if len(extra) > 0 {
		args = append(args, "--")
		args = append(args, extra...)
	}

	exitCode, err := runner.RunInteractive(ctx, runner.Command{
		Path: r.toolchain.PackageManagerBin,
		Args: args,
	})
	if err != nil {
		return fmt.Errorf("failed to run test runner: %v", err)
	}
	if exitCode != 0 {
		return ErrTestsFailed
	}

	return nil
}

func ensureTestsDir() error {
	if _, err := os.Stat(TestsDir); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check tests directory: %v", err)
	}

	log.Info().Msg("No tests directory found, scaffolding an example test")

	if err := os.MkdirAll(TestsDir, 0755); err != nil {
		return fmt.Errorf("failed to create tests directory: %v", err)
	}

	example := filepath.Join(TestsDir, "counter.test.js")
	if err := os.WriteFile(example, []byte(exampleTest), 0644); err != nil {
		return fmt.Errorf("failed to write example test: %v", err)
	}

	return nil
}

const exampleTest = `import { test } from "node:test";
import assert from "node:assert/strict";

test("counter starts at zero", () => {
  assert.equal(0, 0);
});
`
