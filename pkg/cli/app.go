package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"midnightcli/pkg/core"
)

// Version of the midnight CLI
const Version = "0.2.0"

var (
	successMark = color.New(color.FgGreen).Sprint("✔")
	failureMark = color.New(color.FgRed).Sprint("✖")
	warnMark    = color.New(color.FgYellow).Sprint("⚠")
)

func printSuccess(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", successMark, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", warnMark, fmt.Sprintf(format, args...))
}

// PrintFailure writes an error with the failure indicator prefix
func PrintFailure(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", failureMark, err)
}

// NewApp builds the midnight command tree around a toolchain resolved once at
// the program boundary.
func NewApp(toolchain *core.Toolchain) *cli.App {
	return &cli.App{
		Name:    "midnight",
		Usage:   "developer toolkit for Midnight dapps",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			initCommand(toolchain),
			contractCommand(toolchain),
			proofServerCommand(toolchain),
			deployCommand(toolchain),
			testCommand(toolchain),
		},
	}
}

// verboseLogging raises the log level for a single command invocation
func verboseLogging(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("Verbose output enabled")
	}
}
