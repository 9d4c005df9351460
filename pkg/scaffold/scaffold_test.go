package scaffold

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"midnightcli/pkg/core"
)

func testProject(name string, useTS bool) core.ProjectConfig {
	return core.ProjectConfig{
		Name:                name,
		Template:            core.TemplateBasicDapp,
		UseTypeScript:       useTS,
		InstallDependencies: false,
	}
}

func newTestInitializer() *Initializer {
	return NewInitializer(&core.Toolchain{PackageManagerBin: "npm"})
}

func TestInitCreatesProjectTree(t *testing.T) {
	parent := t.TempDir()

	target, err := newTestInitializer().Init(context.Background(), testProject("my-app", true), parent)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(parent, "my-app"), target)

	for _, dir := range []string{"contracts", "src", "tests"} {
		info, err := os.Stat(filepath.Join(target, dir))
		require.NoError(t, err, "missing directory %s", dir)
		assert.True(t, info.IsDir())
	}

	for _, file := range []string{
		"package.json",
		"README.md",
		".gitignore",
		"tsconfig.json",
		"contracts/counter.compact",
		"src/index.ts",
		core.ConfigFileName,
	} {
		_, err := os.Stat(filepath.Join(target, file))
		assert.NoError(t, err, "missing file %s", file)
	}
}

func TestInitJavaScriptVariant(t *testing.T) {
	parent := t.TempDir()

	target, err := newTestInitializer().Init(context.Background(), testProject("js-app", false), parent)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(target, "src/index.js"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(target, "src/index.ts"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(target, "tsconfig.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestInitRejectsInvalidName(t *testing.T) {
	parent := t.TempDir()

	_, err := newTestInitializer().Init(context.Background(), testProject("My App", false), parent)
	require.ErrorIs(t, err, ErrInvalidProjectName)

	// Nothing may have been created
	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInitRefusesExistingDirectory(t *testing.T) {
	parent := t.TempDir()
	existing := filepath.Join(parent, "taken")
	require.NoError(t, os.MkdirAll(existing, 0755))
	marker := filepath.Join(existing, "keep.txt")
	require.NoError(t, os.WriteFile(marker, []byte("precious"), 0644))

	_, err := newTestInitializer().Init(context.Background(), testProject("taken", false), parent)
	require.ErrorIs(t, err, ErrDirectoryExists)

	// The existing directory must be untouched
	entries, readErr := os.ReadDir(existing)
	require.NoError(t, readErr)
	require.Len(t, entries, 1)
	data, readErr := os.ReadFile(marker)
	require.NoError(t, readErr)
	assert.Equal(t, "precious", string(data))
}

func TestManifestDependencySetVariesOnlyWithTypeScript(t *testing.T) {
	jsManifest := manifestJSON(testProject("app", false))
	tsManifest := manifestJSON(testProject("app", true))

	var js, ts map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(jsManifest), &js))
	require.NoError(t, json.Unmarshal([]byte(tsManifest), &ts))

	assert.Equal(t, js["dependencies"], ts["dependencies"])
	assert.NotContains(t, js, "devDependencies")

	dev, ok := ts["devDependencies"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, dev, "typescript")
	assert.Contains(t, dev, "@types/node")
}

func TestInitWritesDefaultRuntimeConfig(t *testing.T) {
	parent := t.TempDir()

	target, err := newTestInitializer().Init(context.Background(), testProject("cfg-app", false), parent)
	require.NoError(t, err)

	cfg, err := core.LoadConfig(filepath.Join(target, core.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "testnet", cfg.Network)
	assert.Equal(t, 6300, cfg.ProofServer.Port)
	assert.Equal(t, "build", cfg.Compiler.OutputDir)
}

func TestStarterContractPerTemplate(t *testing.T) {
	assert.Contains(t, starterContract(core.TemplateBasicDapp), "ledger round")
	assert.Contains(t, starterContract(core.TemplateZKGame), "ledger score")
	assert.Contains(t, starterContract(core.TemplateDefiApp), "ledger balance")
	assert.Contains(t, starterContract(core.TemplateIdentity), "ledger credentials")
}
