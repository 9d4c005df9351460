package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"midnightcli/pkg/core"
	"midnightcli/pkg/deploy"
)

func deployCommand(toolchain *core.Toolchain) *cli.Command {
	return &cli.Command{
		Name:  "deploy",
		Usage: "deploy the compiled contract",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "network",
				Usage: "target network (testnet, mainnet)",
			},
			&cli.StringFlag{
				Name:  "contract",
				Usage: "compiled contract artifact path",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "project configuration file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "show deployment detail",
			},
		},
		Action: func(c *cli.Context) error {
			verboseLogging(c.Bool("verbose"))

			record, err := deploy.NewDeployer(toolchain).Deploy(c.Context, deploy.Options{
				Network:      c.String("network"),
				ContractPath: c.String("contract"),
				ConfigPath:   c.String("config"),
				Verbose:      c.Bool("verbose"),
			})
			if err != nil {
				return err
			}

			printSuccess("Deployed to %s", record.Network)
			fmt.Printf("  Address:     %s\n", record.ContractAddress)
			fmt.Printf("  Transaction: %s\n", record.TransactionHash)
			fmt.Printf("  Block:       %d\n", record.BlockNumber)
			return nil
		},
	}
}
