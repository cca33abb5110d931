package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v2"

	"github.com/nolibc/go/cmd/internal/guest"
	"github.com/nolibc/go/cmd/internal/hosted"
	"github.com/nolibc/go/cmd/internal/raw"
	"github.com/nolibc/go/cmd/internal/tracer"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt,
		os.Kill)
	defer cancel()

	app := &cli.App{
		Name:      "nolibc",
		Usage:     "print a greeting without touching libc",
		Copyright: "2026 The nolibc Authors",
		Before:    setup,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				EnvVars: []string{"NOLIBC_DEBUG"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			hosted.Command(),
			raw.Command(),
			guest.Command(),
			tracer.Command(),
		},
		DefaultCommand: "hosted",
	}

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		slog.ErrorContext(ctx, err.Error())
		os.Exit(1)
	}
}

func setup(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("debug") {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(tint.NewHandler(c.App.ErrWriter, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))

	return nil
}
