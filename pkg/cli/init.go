package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"midnightcli/pkg/core"
	"midnightcli/pkg/prompt"
	"midnightcli/pkg/scaffold"
)

func initCommand(toolchain *core.Toolchain) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "scaffold a new Midnight project",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "template",
				Usage: "project template (basic-dapp, zk-game, defi-app, identity)",
			},
			&cli.BoolFlag{
				Name:  "typescript",
				Usage: "generate a TypeScript project",
			},
			&cli.BoolFlag{
				Name:  "no-install",
				Usage: "skip dependency installation",
			},
		},
		Action: func(c *cli.Context) error {
			project, err := resolveProjectConfig(c)
			if err != nil {
				return err
			}

			target, err := scaffold.NewInitializer(toolchain).Init(c.Context, *project, ".")
			if err != nil {
				return err
			}

			printSuccess("Created %s from the %s template", target, project.Template)
			fmt.Printf("\nNext steps:\n  cd %s\n  midnight proof-server start --detached\n  midnight contract compile\n", project.Name)
			return nil
		},
	}
}

// resolveProjectConfig merges flags, interactive answers and defaults, one
// option at a time and flags winning. Options already pinned by a flag or
// argument are never asked about.
func resolveProjectConfig(c *cli.Context) (*core.ProjectConfig, error) {
	p := prompt.New(os.Stdin, os.Stdout)

	name := c.Args().First()
	if name != "" {
		// Non-interactive path: the caller must supply a valid name
		if !core.ValidProjectName(name) {
			return nil, fmt.Errorf("%w: %q (use lowercase letters, numbers and hyphens)", scaffold.ErrInvalidProjectName, name)
		}
	} else {
		answer, err := p.ProjectName("my-midnight-app")
		if err != nil {
			return nil, err
		}
		name = answer
	}

	templateFlag := c.String("template")
	if templateFlag != "" && !core.ValidTemplate(templateFlag) {
		return nil, fmt.Errorf("unknown template %q", templateFlag)
	}
	var templateAnswer string
	if templateFlag == "" {
		answer, err := p.SelectTemplate(core.TemplateBasicDapp)
		if err != nil {
			return nil, err
		}
		templateAnswer = string(answer)
	}
	template := prompt.ResolveString(templateFlag, templateAnswer, string(core.TemplateBasicDapp))

	tsAnswered := false
	tsAnswer := false
	if !c.IsSet("typescript") {
		answer, err := p.Confirm("Use TypeScript?", true)
		if err != nil {
			return nil, err
		}
		tsAnswered, tsAnswer = true, answer
	}
	useTS := prompt.ResolveBool(c.IsSet("typescript"), c.Bool("typescript"), tsAnswered, tsAnswer, true)

	installAnswered := false
	installAnswer := false
	if !c.IsSet("no-install") {
		answer, err := p.Confirm("Install dependencies now?", true)
		if err != nil {
			return nil, err
		}
		installAnswered, installAnswer = true, answer
	}
	install := prompt.ResolveBool(c.IsSet("no-install"), !c.Bool("no-install"), installAnswered, installAnswer, true)

	return &core.ProjectConfig{
		Name:                name,
		Template:            core.Template(template),
		UseTypeScript:       useTS,
		InstallDependencies: install,
	}, nil
}
