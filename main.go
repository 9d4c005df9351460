package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"midnightcli/pkg/cli"
	"midnightcli/pkg/core"
)

func main() {
	// Configure logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Resolve the external toolchain once, at the program boundary
	toolchain := core.LoadToolchain()

	app := cli.NewApp(toolchain)
	if err := app.Run(os.Args); err != nil {
		cli.PrintFailure(err)
		os.Exit(1)
	}
}
