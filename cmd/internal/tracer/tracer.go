// Package tracer runs the greeting with every capability crossing
// recorded, and reports the log on the way out.
package tracer

import (
	"log/slog"

	"github.com/urfave/cli/v2"

	nolibc "github.com/nolibc/go"
	"github.com/nolibc/go/cmd/internal/flags"
	"github.com/nolibc/go/trace"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:   "trace",
		Usage:  "run the greeting and report each capability crossing",
		Flags:  flags.SysFlags(),
		Action: run(),
	}
}

func run() cli.ActionFunc {
	return func(c *cli.Context) error {
		sys, err := flags.System(c)
		if err != nil {
			return err
		}

		tr, err := trace.Config{
			Sys: sys,
			OnExit: func(events []trace.Event) {
				report(c, events)
			},
		}.New()
		if err != nil {
			return err
		}

		nolibc.Start(tr)
		return nil // unreachable
	}
}

func report(c *cli.Context, events []trace.Event) {
	for _, ev := range events {
		log := slog.With(
			"seq", ev.ID,
			"op", ev.Op,
			"n", ev.N)
		if ev.FD >= 0 {
			log = log.With("fd", ev.FD)
		}
		if ev.Err != "" {
			log = log.With("reason", ev.Err)
		}

		log.InfoContext(c.Context, "capability crossed")
	}
}
