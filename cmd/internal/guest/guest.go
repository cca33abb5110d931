// Package guest runs the greeting as a sandboxed wasm process.
package guest

import (
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/nolibc/go/cmd/internal/flags"
	"github.com/nolibc/go/proc"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:   "guest",
		Usage:  "run the greeting as a sandboxed wasm process",
		Flags:  append(flags.SysFlags(), flags.GuestFlags()...),
		Action: run(),
	}
}

func run() cli.ActionFunc {
	return func(c *cli.Context) error {
		sys, err := flags.System(c)
		if err != nil {
			return err
		}

		bytecode, err := flags.Image(c)
		if err != nil {
			return err
		}

		r := proc.NewRuntime(c.Context)
		defer r.Close(c.Context)

		p, err := proc.Command{
			Sys:    sys,
			Stdout: c.App.Writer,
			Stderr: c.App.ErrWriter,
		}.Instantiate(c.Context, r, bytecode)
		if err != nil {
			return err
		}
		defer p.Close(c.Context)

		slog.DebugContext(c.Context, "process instantiated",
			"pid", p.String(),
			"abi", c.String("abi"))

		return p.Start(c.Context)
	}
}
