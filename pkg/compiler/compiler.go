package compiler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"midnightcli/pkg/core"
	"midnightcli/pkg/runner"
	"midnightcli/pkg/util"
)

// ContractExtension is the file suffix of Compact contract sources
const ContractExtension = ".compact"

// DefaultContractsDir is scanned when no explicit source file is given
const DefaultContractsDir = "contracts"

var (
	// ErrNoContractsFound means no explicit file was given and the
	// contracts directory holds no candidate sources.
	ErrNoContractsFound = errors.New("no contracts found")

	// ErrContractFileNotFound means the explicitly named source is missing
	ErrContractFileNotFound = errors.New("contract file not found")

	// ErrCompilerNotFound means the compactc binary is unreachable
	ErrCompilerNotFound = errors.New("compact compiler not found")

	// ErrCompilationFailed means compactc exited non-zero
	ErrCompilationFailed = errors.New("compilation failed")
)

// Compiler drives the external compactc binary
type Compiler struct {
	bin       string
	outputDir string
	verbose   bool
}

func New(toolchain *core.Toolchain, outputDir string, verbose bool) *Compiler {
	return &Compiler{
		bin:       toolchain.CompilerBin,
		outputDir: outputDir,
		verbose:   verbose,
	}
}

// ResolveSource picks the contract file to compile. An explicit path must
// exist. Otherwise the contracts directory is scanned: zero candidates is an
// error, one is selected silently, several select the first in listing order
// with a warning.
func (c *Compiler) ResolveSource(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s", ErrContractFileNotFound, explicit)
		}
		return explicit, nil
	}

	entries, err := os.ReadDir(DefaultContractsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w in %s/", ErrNoContractsFound, DefaultContractsDir)
		}
		return "", fmt.Errorf("failed to read contracts directory: %v", err)
	}

	var candidates []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ContractExtension) {
			candidates = append(candidates, filepath.Join(DefaultContractsDir, entry.Name()))
		}
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("%w in %s/", ErrNoContractsFound, DefaultContractsDir)
	}
	if len(candidates) > 1 {
		log.Warn().
			Int("candidates", len(candidates)).
			Str("selected", candidates[0]).
			Msg("Multiple contract files found, compiling the first; pass a file argument to choose")
	}

	return candidates[0], nil
}

// CheckBinary probes the compiler with its version flag
func (c *Compiler) CheckBinary(ctx context.Context) error {
	bin, err := runner.LookBinary(c.bin)
	if err != nil {
		return fmt.Errorf("%w: %v (set COMPACT_HOME or add compactc to PATH)", ErrCompilerNotFound, err)
	}

	result, err := runner.Run(ctx, runner.Command{Path: bin, Args: []string{"--version"}})
	if err != nil || !result.Ok() {
		return fmt.Errorf("%w: %s is not runnable", ErrCompilerNotFound, bin)
	}

	log.Debug().Str("version", strings.TrimSpace(result.Stdout)).Msg("Found compact compiler")
	return nil
}

// Compile invokes compactc once on the given source, creating the output
// directory first.
func (c *Compiler) Compile(ctx context.Context, source string) error {
	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	result, err := runner.Run(ctx, runner.Command{
		Path: c.bin,
		Args: []string{source, "-o", c.outputDir},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCompilerNotFound, err)
	}

	if c.verbose && result.Stdout != "" {
		fmt.Print(result.Stdout)
	}

	if !result.Ok() {
		if result.Stderr != "" {
			fmt.Fprint(os.Stderr, result.Stderr)
		}
		return fmt.Errorf("%w: compactc exited with code %d", ErrCompilationFailed, result.ExitCode)
	}

	log.Info().
		Str("source", source).
		Str("output", c.outputDir).
		Str("took", util.FormatDuration(result.Duration)).
		Msg("Contract compiled")

	return nil
}

// OutputFile is one produced artifact with its size
type OutputFile struct {
	Name string
	Size int64
}

// OutputFiles lists the artifacts currently in the output directory
func (c *Compiler) OutputFiles() ([]OutputFile, error) {
	entries, err := os.ReadDir(c.outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %v", err)
	}

	var files []OutputFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, OutputFile{Name: entry.Name(), Size: info.Size()})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// PrintOutputFiles writes the artifact listing to stdout
func (c *Compiler) PrintOutputFiles() error {
	files, err := c.OutputFiles()
	if err != nil {
		return err
	}

	fmt.Printf("Artifacts in %s/:\n", c.outputDir)
	for _, f := range files {
		fmt.Printf("  %-32s %s\n", f.Name, util.FormatBytes(f.Size))
	}

	return nil
}
