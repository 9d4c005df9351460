package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
)

// ConfigFileName is the runtime configuration file written into every
// scaffolded project and read back by deploy and proof-server commands.
const ConfigFileName = "midnight.config.json"

// ErrConfigNotFound is returned when the project configuration file does not
// exist at the expected path.
var ErrConfigNotFound = errors.New("project configuration not found")

// Config is the persisted runtime configuration of a Midnight project
type Config struct {
	Network     string            `json:"network"`
	Compiler    CompilerConfig    `json:"compiler"`
	ProofServer ProofServerConfig `json:"proofServer"`
}

type CompilerConfig struct {
	Version   string `json:"version"`
	OutputDir string `json:"outputDir"`
}

type ProofServerConfig struct {
	Port   int  `json:"port"`
	Docker bool `json:"docker"`
}

func DefaultConfig() *Config {
	return &Config{
		Network: "testnet",
		Compiler: CompilerConfig{
			Version:   "0.2.0",
			OutputDir: "build",
		},
		ProofServer: ProofServerConfig{
			Port:   6300,
			Docker: true,
		},
	}
}

// LoadConfig reads a midnight.config.json from disk. A missing file is
// reported as ErrConfigNotFound so callers can distinguish it from a
// malformed one.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	return cfg, nil
}

// Save writes the configuration as indented JSON
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %v", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}

	return nil
}

// Template identifies one of the built-in project templates
type Template string

const (
	TemplateBasicDapp Template = "basic-dapp"
	TemplateZKGame    Template = "zk-game"
	TemplateDefiApp   Template = "defi-app"
	TemplateIdentity  Template = "identity"
)

// Templates lists the valid template keys in display order
func Templates() []Template {
	return []Template{TemplateBasicDapp, TemplateZKGame, TemplateDefiApp, TemplateIdentity}
}

func ValidTemplate(s string) bool {
	for _, t := range Templates() {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Project names must be safe to use as directory names and npm package names
var projectNamePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidProjectName reports whether name is lowercase alphanumeric with
// hyphens. This must hold before any filesystem mutation happens.
func ValidProjectName(name string) bool {
	return projectNamePattern.MatchString(name)
}

// ProjectConfig captures the answers gathered at project-initialization time.
// It is immutable after creation.
type ProjectConfig struct {
	Name                string
	Template            Template
	UseTypeScript       bool
	InstallDependencies bool
}
