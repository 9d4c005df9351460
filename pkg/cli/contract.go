package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"midnightcli/pkg/compiler"
	"midnightcli/pkg/core"
	"midnightcli/pkg/deploy"
	"midnightcli/pkg/proofserver"
)

func contractCommand(toolchain *core.Toolchain) *cli.Command {
	return &cli.Command{
		Name:  "contract",
		Usage: "compile and inspect Compact contracts",
		Subcommands: []*cli.Command{
			compileCommand(toolchain),
			verifyCommand(toolchain),
			interactCommand(toolchain),
		},
	}
}

func compileCommand(toolchain *core.Toolchain) *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "compile a Compact contract",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Usage: "artifact output directory",
				Value: "build",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "recompile whenever the contract changes",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "show compiler output",
			},
		},
		Action: func(c *cli.Context) error {
			verboseLogging(c.Bool("verbose"))

			comp := compiler.New(toolchain, c.String("output"), c.Bool("verbose"))

			source, err := comp.ResolveSource(c.Args().First())
			if err != nil {
				return err
			}
			if err := comp.CheckBinary(c.Context); err != nil {
				return err
			}

			if c.Bool("watch") {
				ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				return comp.Watch(ctx, source)
			}

			if err := comp.Compile(c.Context, source); err != nil {
				return err
			}

			printSuccess("Compiled %s", source)
			return comp.PrintOutputFiles()
		},
	}
}

func verifyCommand(toolchain *core.Toolchain) *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "verify a deployed contract against the local ledger",
		ArgsUsage: "<address>",
		Action: func(c *cli.Context) error {
			address := c.Args().First()
			if address == "" {
				return fmt.Errorf("contract address is required")
			}
			if !common.IsHexAddress(address) {
				return fmt.Errorf("invalid contract address: %s", address)
			}

			ledger, err := deploy.LoadLedger(deploy.LedgerFileName)
			if err != nil {
				return err
			}

			record, found := ledger.FindByAddress(common.HexToAddress(address).Hex())
			if !found {
				return fmt.Errorf("no deployment found for %s in %s", address, deploy.LedgerFileName)
			}

			cfg, err := core.LoadConfig(core.ConfigFileName)
			if err != nil {
				return err
			}
			if !proofserver.ProbeHealth(cfg.ProofServer.Port) {
				printWarning("Proof server not reachable, verified against the local ledger only")
			}

			printSuccess("Contract verified on %s", record.Network)
			fmt.Printf("  Address:     %s\n", record.ContractAddress)
			fmt.Printf("  Transaction: %s\n", record.TransactionHash)
			fmt.Printf("  Block:       %d\n", record.BlockNumber)
			fmt.Printf("  Deployed at: %s\n", record.Timestamp)
			return nil
		},
	}
}

func interactCommand(toolchain *core.Toolchain) *cli.Command {
	return &cli.Command{
		Name:      "interact",
		Usage:     "inspect the callable surface of a deployed contract",
		ArgsUsage: "<address>",
		Action: func(c *cli.Context) error {
			address := c.Args().First()
			if address == "" {
				return fmt.Errorf("contract address is required")
			}
			if !common.IsHexAddress(address) {
				return fmt.Errorf("invalid contract address: %s", address)
			}

			ledger, err := deploy.LoadLedger(deploy.LedgerFileName)
			if err != nil {
				return err
			}
			record, found := ledger.FindByAddress(common.HexToAddress(address).Hex())
			if !found {
				return fmt.Errorf("no deployment found for %s in %s", address, deploy.LedgerFileName)
			}

			cfg, err := core.LoadConfig(core.ConfigFileName)
			if err != nil {
				return err
			}

			fmt.Printf("Contract %s on %s\n", record.ContractAddress, record.Network)

			comp := compiler.New(toolchain, cfg.Compiler.OutputDir, false)
			files, err := comp.OutputFiles()
			if err != nil {
				return fmt.Errorf("no compiled artifacts found, run 'midnight contract compile' first: %v", err)
			}

			fmt.Println("Compiled artifacts:")
			for _, f := range files {
				fmt.Printf("  %s\n", f.Name)
			}
			return nil
		},
	}
}
