// Package flags binds the command-line surface shared across
// subcommands: which capability set backs the program, and which
// guest image to run.
package flags

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/nolibc/go/guest"
	"github.com/nolibc/go/rawsys"
	"github.com/nolibc/go/system"
	"github.com/nolibc/go/util"
)

// SysFlags returns the capability control flags that can be shared across commands
func SysFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "sys",
			Category: "SYSTEM",
			Usage:    "capability `set`: hosted or raw",
			Value:    "hosted",
			EnvVars:  []string{"NOLIBC_SYS"},
		},
	}
}

// GuestFlags returns the guest control flags that can be shared across commands
func GuestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "abi",
			Category: "GUEST",
			Usage:    "host `abi` imported by the guest: env or wasi",
			Value:    "env",
			EnvVars:  []string{"NOLIBC_ABI"},
		},
	}
}

// System returns the capability set selected by --sys.
func System(c *cli.Context) (system.Interface, error) {
	switch s := c.String("sys"); s {
	case "hosted":
		return Hosted(c), nil
	case "raw":
		if !rawsys.Supported {
			return nil, errors.New("raw system calls unsupported on this platform")
		}
		return system.Raw{}, nil
	default:
		return nil, errors.Errorf("unknown capability set: %s", s)
	}
}

// Hosted returns a capability set bound to the app's streams.  A
// parent process can redirect either stream by passing descriptors
// through NOLIBC_FD_* environment variables.
func Hosted(c *cli.Context) system.Interface {
	sys := system.Hosted{
		Stdout: c.App.Writer,
		Stderr: c.App.ErrWriter,
	}

	for name, fd := range util.FDMap() {
		switch name {
		case "stdout":
			sys.Stdout = util.File(fd)
		case "stderr":
			sys.Stderr = util.File(fd)
		}
	}

	return sys
}

// Image returns the guest bytecode selected by --abi.
func Image(c *cli.Context) ([]byte, error) {
	switch abi := c.String("abi"); abi {
	case "env":
		return guest.Image(), nil
	case "wasi":
		return guest.WASI(), nil
	default:
		return nil, errors.Errorf("unknown abi: %s", abi)
	}
}
