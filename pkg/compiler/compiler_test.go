package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"midnightcli/pkg/core"
)

func testCompiler(bin, outputDir string) *Compiler {
	return New(&core.Toolchain{CompilerBin: bin}, outputDir, false)
}

// writeStubCompiler creates a fake compactc that records its invocation and
// writes one artifact into the -o directory.
func writeStubCompiler(t *testing.T, dir string, exitCode int) string {
	t.Helper()

	script := fmt.Sprintf(`#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "compactc 0.2.0"
  exit 0
fi
src="$1"
out="$3"
mkdir -p "$out"
echo "compiled $src" > "$out/counter.cjs"
exit %d
`, exitCode)
	bin := filepath.Join(dir, "compactc")
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755))
	return bin
}

func TestResolveSourceExplicit(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "token.compact")
	require.NoError(t, os.WriteFile(file, []byte("pragma"), 0644))

	src, err := testCompiler("compactc", "build").ResolveSource(file)
	require.NoError(t, err)
	assert.Equal(t, file, src)
}

func TestResolveSourceExplicitMissing(t *testing.T) {
	_, err := testCompiler("compactc", "build").ResolveSource(filepath.Join(t.TempDir(), "gone.compact"))
	assert.ErrorIs(t, err, ErrContractFileNotFound)
}

func TestResolveSourceNoCandidates(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := testCompiler("compactc", "build").ResolveSource("")
	assert.ErrorIs(t, err, ErrNoContractsFound)

	// An empty contracts directory is the same outcome
	require.NoError(t, os.MkdirAll(DefaultContractsDir, 0755))
	_, err = testCompiler("compactc", "build").ResolveSource("")
	assert.ErrorIs(t, err, ErrNoContractsFound)
}

func TestResolveSourceSingleCandidate(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(DefaultContractsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(DefaultContractsDir, "counter.compact"), []byte("pragma"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(DefaultContractsDir, "notes.txt"), []byte("not a contract"), 0644))

	src, err := testCompiler("compactc", "build").ResolveSource("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(DefaultContractsDir, "counter.compact"), src)
}

func TestResolveSourceMultipleCandidatesPicksFirst(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(DefaultContractsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(DefaultContractsDir, "alpha.compact"), []byte("pragma"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(DefaultContractsDir, "beta.compact"), []byte("pragma"), 0644))

	src, err := testCompiler("compactc", "build").ResolveSource("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(DefaultContractsDir, "alpha.compact"), src)
}

func TestCheckBinaryMissing(t *testing.T) {
	err := testCompiler("/nonexistent/compactc", "build").CheckBinary(context.Background())
	assert.ErrorIs(t, err, ErrCompilerNotFound)
}

func TestCompileSuccess(t *testing.T) {
	dir := t.TempDir()
	bin := writeStubCompiler(t, dir, 0)
	t.Chdir(dir)

	src := filepath.Join(dir, "counter.compact")
	require.NoError(t, os.WriteFile(src, []byte("pragma"), 0644))

	c := testCompiler(bin, filepath.Join(dir, "build"))
	require.NoError(t, c.CheckBinary(context.Background()))
	require.NoError(t, c.Compile(context.Background(), src))

	files, err := c.OutputFiles()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "counter.cjs", files[0].Name)
	assert.Greater(t, files[0].Size, int64(0))
}

func TestCompileFailure(t *testing.T) {
	dir := t.TempDir()
	bin := writeStubCompiler(t, dir, 1)

	src := filepath.Join(dir, "counter.compact")
	require.NoError(t, os.WriteFile(src, []byte("pragma"), 0644))

	err := testCompiler(bin, filepath.Join(dir, "build")).Compile(context.Background(), src)
	assert.ErrorIs(t, err, ErrCompilationFailed)
}
