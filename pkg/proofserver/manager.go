package proofserver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"midnightcli/pkg/core"
	"midnightcli/pkg/runner"
)

var (
	// ErrDockerNotFound means the container runtime CLI is not installed
	ErrDockerNotFound = errors.New("docker not found")

	// ErrDockerNotRunning means the CLI exists but the daemon is unreachable
	ErrDockerNotRunning = errors.New("docker daemon not running")

	// ErrContainerStart means docker run failed
	ErrContainerStart = errors.New("failed to start proof server container")
)

// Manager controls the single named proof-server container
type Manager struct {
	docker  string
	image   string
	name    string
	port    int
	verbose bool
}

func NewManager(toolchain *core.Toolchain, port int, verbose bool) *Manager {
	return &Manager{
		docker:  toolchain.DockerBin,
		image:   toolchain.ProofServerImage,
		name:    toolchain.ContainerName,
		port:    port,
		verbose: verbose,
	}
}

// Port returns the host port the manager probes and publishes
func (m *Manager) Port() int {
	return m.port
}

// checkDocker runs the two preflight checks: binary installed, daemon up
func (m *Manager) checkDocker(ctx context.Context) error {
	if _, err := runner.LookBinary(m.docker); err != nil {
		return fmt.Errorf("%w: %v", ErrDockerNotFound, err)
	}

	result, err := runner.Run(ctx, runner.Command{Path: m.docker, Args: []string{"info"}})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDockerNotFound, err)
	}
	if !result.Ok() {
		return fmt.Errorf("%w: start Docker and try again", ErrDockerNotRunning)
	}

	return nil
}

// Start brings up the proof server. When a health probe on the configured
// port already answers, the server is treated as running and nothing is
// launched. A failed image pull falls back to a locally cached image.
func (m *Manager) Start(ctx context.Context, detached bool) error {
	if err := m.checkDocker(ctx); err != nil {
		return err
	}

	if ProbeHealth(m.port) {
		fmt.Printf("Proof server already running on port %d\n", m.port)
		return nil
	}

	fmt.Printf("Pulling %s...\n", m.image)
	pull, err := runner.Run(ctx, runner.Command{Path: m.docker, Args: []string{"pull", m.image}})
	if err != nil || !pull.Ok() {
		log.Warn().Msg("Image pull failed, using locally cached image")
	}

	args := []string{
		"run", "--rm",
		"--name", m.name,
		"-p", fmt.Sprintf("%d:%d", m.port, m.port),
	}
	if detached {
		args = append(args, "-d")
	}
	args = append(args, m.image)

	if detached {
		result, err := runner.Run(ctx, runner.Command{Path: m.docker, Args: args})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrContainerStart, err)
		}
		if !result.Ok() {
			return fmt.Errorf("%w: %s", ErrContainerStart, strings.TrimSpace(result.Stderr))
		}

		fmt.Printf("Proof server started on http://localhost:%d\n", m.port)
		fmt.Printf("Stop it with: midnight proof-server stop\n")
		return nil
	}

	// Attached mode blocks until the container process exits
	fmt.Printf("Starting proof server on port %d (press Ctrl+C to stop)\n", m.port)
	exitCode, err := runner.RunInteractive(ctx, runner.Command{Path: m.docker, Args: args})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContainerStart, err)
	}

	fmt.Printf("Proof server exited with code %d\n", exitCode)
	return nil
}

// Stop stops the named container. A container that is not running is an
// informational outcome, not an error.
func (m *Manager) Stop(ctx context.Context) error {
	if err := m.checkDocker(ctx); err != nil {
		return err
	}

	result, err := runner.Run(ctx, runner.Command{Path: m.docker, Args: []string{"stop", m.name}})
	if err != nil {
		return fmt.Errorf("failed to stop proof server: %v", err)
	}

	if !result.Ok() {
		stderr := strings.ToLower(result.Stderr)
		if strings.Contains(stderr, "no such container") || strings.Contains(stderr, "is not running") {
			fmt.Println("Proof server is not running")
			return nil
		}
		return fmt.Errorf("failed to stop proof server: %s", strings.TrimSpace(result.Stderr))
	}

	fmt.Println("Proof server stopped")
	return nil
}

// State describes the container and health-probe view of the server
type State struct {
	Running bool
	Healthy bool
}

// Status reports whether the container runs and, if so, whether the health
// endpoint answers. A running container with a dead endpoint is surfaced as
// unresponsive.
func (m *Manager) Status(ctx context.Context) (*State, error) {
	if err := m.checkDocker(ctx); err != nil {
		return nil, err
	}

	result, err := runner.Run(ctx, runner.Command{
		Path: m.docker,
		Args: []string{"ps", "--filter", "name=" + m.name, "--format", "{{.Names}}"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query container status: %v", err)
	}

	state := &State{Running: strings.Contains(result.Stdout, m.name)}
	if state.Running {
		state.Healthy = ProbeHealth(m.port)
	}

	return state, nil
}

// Logs dumps or follows the container log output
func (m *Manager) Logs(ctx context.Context, follow bool) error {
	if err := m.checkDocker(ctx); err != nil {
		return err
	}

	args := []string{"logs"}
	if follow {
		args = append(args, "-f")
	}
	args = append(args, m.name)

	if follow {
		// Blocks until interrupted
		if _, err := runner.RunInteractive(ctx, runner.Command{Path: m.docker, Args: args}); err != nil {
			return fmt.Errorf("failed to follow logs: %v", err)
		}
		return nil
	}

	result, err := runner.Run(ctx, runner.Command{Path: m.docker, Args: args})
	if err != nil {
		return fmt.Errorf("failed to read logs: %v", err)
	}
	if !result.Ok() {
		return fmt.Errorf("failed to read logs: %s", strings.TrimSpace(result.Stderr))
	}

	fmt.Print(result.Stdout)
	if result.Stderr != "" {
		fmt.Fprint(os.Stderr, result.Stderr)
	}

	return nil
}
