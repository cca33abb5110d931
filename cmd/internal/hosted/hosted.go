// Package hosted runs the greeting through the host process's own
// streams.  It is the portable mode: no guest, no raw traps.
package hosted

import (
	"github.com/urfave/cli/v2"

	nolibc "github.com/nolibc/go"
	"github.com/nolibc/go/cmd/internal/flags"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:   "hosted",
		Usage:  "print the greeting through the host runtime",
		Action: run(),
	}
}

func run() cli.ActionFunc {
	return func(c *cli.Context) error {
		nolibc.Start(flags.Hosted(c))
		return nil // unreachable
	}
}
