package scaffold

import (
	"encoding/json"
	"fmt"

	"midnightcli/pkg/core"
)

// manifest mirrors the package.json layout npm expects
type manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Type            string            `json:"type"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// manifestJSON renders the generated package.json. The dependency set varies
// only with the TypeScript flag.
func manifestJSON(project core.ProjectConfig) string {
	m := manifest{
		Name:    project.Name,
		Version: "0.1.0",
		Private: true,
		Type:    "module",
		Scripts: map[string]string{
			"build":  "midnight contract compile",
			"deploy": "midnight deploy",
			"test":   "node --test tests/",
		},
		Dependencies: map[string]string{
			"@midnight-ntwrk/compact-runtime": "^0.7.0",
			"@midnight-ntwrk/midnight-js":     "^0.2.0",
		},
	}

	if project.UseTypeScript {
		m.Scripts["build"] = "tsc && midnight contract compile"
		m.DevDependencies = map[string]string{
			"typescript":  "^5.4.0",
			"@types/node": "^20.11.0",
		}
	}

	data, _ := json.MarshalIndent(m, "", "  ")
	return string(data) + "\n"
}

// starterContract returns the template contract body. Each template ships the
// same counter skeleton with a domain-flavored ledger field.
func starterContract(template core.Template) string {
	field := "round"
	switch template {
	case core.TemplateZKGame:
		field = "score"
	case core.TemplateDefiApp:
		field = "balance"
	case core.TemplateIdentity:
		field = "credentials"
	}

	return fmt.Sprintf(`pragma language_version >= 0.14;

import CompactStandardLibrary;

export ledger %s: Counter;

export circuit increment(): [] {
  %s.increment(1);
}
`, field, field)
}

const starterMainTS = `import { createContract } from "@midnight-ntwrk/midnight-js";

async function main(): Promise<void> {
  const contract = await createContract("counter");
  console.log("Contract ready:", contract.address);
}

main().catch((err) => {
  console.error(err);
  process.exit(1);
});
`

const starterMainJS = `import { createContract } from "@midnight-ntwrk/midnight-js";

async function main() {
  const contract = await createContract("counter");
  console.log("Contract ready:", contract.address);
}

main().catch((err) => {
  console.error(err);
  process.exit(1);
});
`

const tsconfigJSON = `{
  "compilerOptions": {
    "target": "ES2022",
    "module": "NodeNext",
    "moduleResolution": "NodeNext",
    "strict": true,
    "outDir": "dist"
  },
  "include": ["src"]
}
`

const gitignore = `node_modules/
build/
dist/
deployments.json
.env
`

func readme(project core.ProjectConfig) string {
	return fmt.Sprintf(`# %s

A Midnight dapp scaffolded from the %s template.

## Getting started

    midnight proof-server start --detached
    midnight contract compile
    midnight deploy

Run the test suite with:

    midnight test
`, project.Name, project.Template)
}
