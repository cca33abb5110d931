// Package rawsys issues kernel system calls directly, without the Go
// runtime's file abstractions in between.  It is the only package in
// the module that crosses the kernel boundary by hand: one trap
// instruction per call, arguments in registers, errno decoded from the
// return value.
//
// Coverage is deliberately narrow.  The package provides the write and
// exit_group calls a freestanding program needs, on the Linux
// architectures it carries trap tables for.  Everywhere else it
// compiles to stubs that fail with ErrUnsupported.
package rawsys

import "github.com/pkg/errors"

// ErrUnsupported reports that the platform has no trap table.
var ErrUnsupported = errors.New("raw system calls unsupported")
