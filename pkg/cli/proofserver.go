package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"midnightcli/pkg/core"
	"midnightcli/pkg/proofserver"
)

func proofServerCommand(toolchain *core.Toolchain) *cli.Command {
	return &cli.Command{
		Name:  "proof-server",
		Usage: "manage the local proof server container",
		Subcommands: []*cli.Command{
			{
				Name:  "start",
				Usage: "start the proof server",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Usage: "host port for the proof server",
						Value: 0,
					},
					&cli.BoolFlag{
						Name:  "detached",
						Usage: "run the container in the background",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "show docker output",
					},
				},
				Action: func(c *cli.Context) error {
					verboseLogging(c.Bool("verbose"))

					manager := proofserver.NewManager(toolchain, resolvePort(c), c.Bool("verbose"))

					ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
					defer stop()
					return manager.Start(ctx, c.Bool("detached"))
				},
			},
			{
				Name:  "stop",
				Usage: "stop the proof server",
				Action: func(c *cli.Context) error {
					manager := proofserver.NewManager(toolchain, resolvePort(c), false)
					return manager.Stop(c.Context)
				},
			},
			{
				Name:  "status",
				Usage: "report whether the proof server is running and healthy",
				Action: func(c *cli.Context) error {
					manager := proofserver.NewManager(toolchain, resolvePort(c), false)

					state, err := manager.Status(c.Context)
					if err != nil {
						return err
					}

					switch {
					case state.Running && state.Healthy:
						printSuccess("Proof server running and healthy on port %d", manager.Port())
					case state.Running:
						printWarning("Proof server container running but not answering health checks on port %d", manager.Port())
					default:
						fmt.Println("Proof server is not running")
					}
					return nil
				},
			},
			{
				Name:  "logs",
				Usage: "show proof server logs",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "follow",
						Usage: "keep streaming logs",
					},
				},
				Action: func(c *cli.Context) error {
					manager := proofserver.NewManager(toolchain, resolvePort(c), false)

					ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
					defer stop()
					return manager.Logs(ctx, c.Bool("follow"))
				},
			},
		},
	}
}

// resolvePort prefers the --port flag, then the project config when present,
// then the built-in default.
func resolvePort(c *cli.Context) int {
	if port := c.Int("port"); port != 0 {
		return port
	}
	if cfg, err := core.LoadConfig(core.ConfigFileName); err == nil {
		return cfg.ProofServer.Port
	}
	return core.DefaultConfig().ProofServer.Port
}
