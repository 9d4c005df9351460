package testrunner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"midnightcli/pkg/core"
)

func writeStubNpm(t *testing.T, exitCode int) (bin string, logFile string) {
	t.Helper()

	dir := t.TempDir()
	logFile = filepath.Join(dir, "invocations.log")
	bin = filepath.Join(dir, "npm")

	script := fmt.Sprintf("#!/bin/sh\necho \"$@\" >> %q\nexit %d\n", logFile, exitCode)
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755))
	return bin, logFile
}

func TestRunScaffoldsTestsDir(t *testing.T) {
	t.Chdir(t.TempDir())
	npm, _ := writeStubNpm(t, 0)

	err := NewRunner(&core.Toolchain{PackageManagerBin: npm}).Run(context.Background(), Options{})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(TestsDir, "counter.test.js"))
	assert.NoError(t, statErr, "example test scaffolded")
}

func TestRunKeepsExistingTestsDir(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(TestsDir, 0755))
	npm, _ := writeStubNpm(t, 0)

	err := NewRunner(&core.Toolchain{PackageManagerBin: npm}).Run(context.Background(), Options{})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(TestsDir, "counter.test.js"))
	assert.True(t, os.IsNotExist(statErr), "no example test when the directory exists")
}

func TestRunMapsFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	npm, logFile := writeStubNpm(t, 0)

	err := NewRunner(&core.Toolchain{PackageManagerBin: npm}).Run(context.Background(), Options{
		Watch:    true,
		Coverage: true,
		Verbose:  true,
	})
	require.NoError(t, err)

	data, readErr := os.ReadFile(logFile)
	require.NoError(t, readErr)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, "test --")
	assert.Contains(t, line, "--watch")
	assert.Contains(t, line, "--experimental-test-coverage")
	assert.Contains(t, line, "--test-reporter=spec")
}

func TestRunSurfacesFailureGenerically(t *testing.T) {
	t.Chdir(t.TempDir())
	npm, _ := writeStubNpm(t, 1)

	err := NewRunner(&core.Toolchain{PackageManagerBin: npm}).Run(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrTestsFailed)
}
