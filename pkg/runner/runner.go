package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// Command describes one external-process invocation
type Command struct {
	Path string
	Args []string
	Dir  string
	Env  []string // appended to the parent environment when non-empty
}

// Result captures the outcome of a finished subprocess. A non-zero exit code
// is reported here, not as an error; callers decide whether it is fatal.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Ok reports whether the process exited zero
func (r *Result) Ok() bool {
	return r.ExitCode == 0
}

// Run executes the command, blocking until it exits, and captures both output
// streams. An error is returned only when the process could not be started at
// all (for example the binary does not exist).
func Run(ctx context.Context, cmd Command) (*Result, error) {
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	log.Debug().Str("path", cmd.Path).Strs("args", cmd.Args).Msg("Running external command")

	start := time.Now()
	err := c.Run()
	result := &Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("failed to run %s: %v", cmd.Path, err)
	}

	return result, nil
}

// RunInteractive executes the command with the parent's stdio attached,
// blocking until it exits. Used for long-running flows the user watches
// directly: dependency installation, attached containers, log following.
func RunInteractive(ctx context.Context, cmd Command) (int, error) {
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	log.Debug().Str("path", cmd.Path).Strs("args", cmd.Args).Msg("Running interactive command")

	err := c.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("failed to run %s: %v", cmd.Path, err)
	}

	return 0, nil
}

// LookBinary resolves a binary, preferring an explicit path (anything
// containing a separator is checked on disk) and falling back to PATH lookup
// for bare names.
func LookBinary(name string) (string, error) {
	if filepath.Base(name) != name {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("binary not found at %s", name)
		}
		return name, nil
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("binary %s not found in PATH", name)
	}
	return path, nil
}
