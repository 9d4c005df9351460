package cli

import (
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"midnightcli/pkg/core"
	"midnightcli/pkg/testrunner"
)

func testCommand(toolchain *core.Toolchain) *cli.Command {
	return &cli.Command{
		Name:  "test",
		Usage: "run the project test suite",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "rerun tests on change",
			},
			&cli.BoolFlag{
				Name:  "coverage",
				Usage: "collect coverage",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "verbose test output",
			},
		},
		Action: func(c *cli.Context) error {
			verboseLogging(c.Bool("verbose"))

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := testrunner.NewRunner(toolchain).Run(ctx, testrunner.Options{
				Watch:    c.Bool("watch"),
				Coverage: c.Bool("coverage"),
				Verbose:  c.Bool("verbose"),
			}); err != nil {
				return err
			}

			printSuccess("All tests passed")
			return nil
		},
	}
}
