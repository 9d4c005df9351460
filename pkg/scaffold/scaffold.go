package scaffold

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

// ErrDirectoryExists is returned when the target project directory already
// exists. Initialization never overwrites an existing directory.
var ErrDirectoryExists = errors.New("directory already exists")

// ErrInvalidProjectName is returned for names failing the
// lowercase-alphanumeric-hyphen pattern. Non-interactive callers are expected
// to validate before calling Init.
var ErrInvalidProjectName = errors.New("invalid project name")

// Subdirectories created inside every new project
var projectDirs = []string{"contracts", "src", "tests"}

// Initializer scaffolds new Midnight projects
type Initializer struct {
	toolchain *core.Toolchain
}

func NewInitializer(toolchain *core.Toolchain) *Initializer {
	return &Initializer{toolchain: toolchain}
}

// Init creates a new project directory under parentDir and returns its path.
//
// Side effects happen in a fixed order: validate the name, check the target
// path does not exist, create the directory tree, write the template files,
// then optionally run the package installer. Any filesystem error aborts the
// whole operation; partially created directories are left in place.
func (i *Initializer) Init(ctx context.Context, project core.ProjectConfig, parentDir string) (string, error) {
	if !core.ValidProjectName(project.Name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidProjectName, project.Name)
	}

	target := filepath.Join(parentDir, project.Name)
	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("%w: %s", ErrDirectoryExists, target)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to check target directory: %v", err)
	}

	for _, dir := range projectDirs {
		if err := os.MkdirAll(filepath.Join(target, dir), 0755); err != nil {
			return "", fmt.Errorf("failed to create project directories: %v", err)
		}
	}

	if err := writeTemplateFiles(target, project); err != nil {
		return "", err
	}

	log.Info().Str("project", project.Name).Str("template", string(project.Template)).Msg("Project scaffolded")

	if project.InstallDependencies {
		if err := i.installDependencies(ctx, target); err != nil {
			return "", err
		}
	}

	return target, nil
}

// installDependencies runs the package manager as a blocking subprocess with
// the user's terminal attached so install progress is visible.
func (i *Initializer) installDependencies(ctx context.Context, projectDir string) error {
	fmt.Println("Installing dependencies...")

	exitCode, err := runner.RunInteractive(ctx, runner.Command{
		Path: i.toolchain.PackageManagerBin,
		Args: []string{"install"},
		Dir:  projectDir,
	})
	if err != nil {
		return fmt.Errorf("failed to run dependency installer: %v", err)
	}
	if exitCode != 0 {
		return fmt.Errorf("dependency installation failed with exit code %d", exitCode)
	}

	return nil
}

func writeTemplateFiles(target string, project core.ProjectConfig) error {
	files := map[string]string{
		"package.json":              manifestJSON(project),
		"README.md":                 readme(project),
		".gitignore":                gitignore,
		"contracts/counter.compact": starterContract(project.Template),
	}

	if project.UseTypeScript {
		files["src/index.ts"] = starterMainTS
		files["tsconfig.json"] = tsconfigJSON
	} else {
		files["src/index.js"] = starterMainJS
	}

	for name, content := range files {
		path := filepath.Join(target, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %v", name, err)
		}
	}

	cfg := core.DefaultConfig()
	if err := cfg.Save(filepath.Join(target, core.ConfigFileName)); err != nil {
		return err
	}

	return nil
}
