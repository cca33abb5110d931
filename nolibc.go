// Package nolibc is a freestanding-style "hello world" toolkit.  The
// greeting is emitted through the narrow capability set a process needs
// from its host: measure a NUL-terminated byte sequence, write bytes to
// a descriptor, and terminate.  Providers of that capability set live
// in the system package; raw trap-based implementations live in rawsys;
// a WebAssembly rendition of the program lives in guest and runs under
// proc.
package nolibc

import "github.com/nolibc/go/system"

// Message is the greeting.  Exactly these bytes, and nothing else,
// reach standard output.
const Message = "Hello nolibc!\n"

// message is Message in storage form: a fixed, NUL-terminated byte
// sequence.  The terminator is bookkeeping for Strlen and is never
// written.
var message = append([]byte(Message), 0)

// Main prints the greeting and reports the advisory status code.  The
// write result is computed by the provider but deliberately not
// inspected here; Main always reports success.
func Main(sys system.Interface) int {
	n := sys.Strlen(message)
	sys.Write(system.Stdout, message[:n])
	return 0
}

// Start is the entry point: run Main, hand its status to Exit.  It
// never returns; the terminal panic marks the unreachable point in
// case a provider breaks the Exit contract.
func Start(sys system.Interface) {
	sys.Exit(Main(sys))
	panic("nolibc: exit returned")
}
