// Package raw runs the greeting over direct system calls, with
// nothing between the program and the kernel.
package raw

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	nolibc "github.com/nolibc/go"
	"github.com/nolibc/go/rawsys"
	"github.com/nolibc/go/system"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:   "raw",
		Usage:  "print the greeting over raw system calls",
		Action: run(),
	}
}

func run() cli.ActionFunc {
	return func(c *cli.Context) error {
		if !rawsys.Supported {
			return errors.New("raw system calls unsupported on this platform")
		}

		nolibc.Start(system.Raw{})
		return nil // unreachable
	}
}
