// Package system defines the host services a nolibc program is allowed
// to use, and ships the two standard providers of those services:
// Hosted, which rides on the Go runtime, and Raw, which traps straight
// into the kernel.
package system

// Descriptor numbers for the standard streams, as the kernel assigns
// them to a fresh process.
const (
	Stdin  = 0
	Stdout = 1
	Stderr = 2
)

// Interface is the complete capability set of a nolibc program.  A
// program receives exactly one Interface and reaches the host only
// through it.
type Interface interface {
	// Strlen reports the number of bytes in p that precede the first
	// NUL.  A sequence without a terminator measures as len(p).
	Strlen(p []byte) int

	// Write submits p to descriptor fd as a single request.  It
	// reports the number of bytes accepted by the host.  Short writes
	// are not retried.
	Write(fd int, p []byte) (int, error)

	// Exit terminates the program with the given status code.  It
	// does not return.
	Exit(code int)
}

type ExitError interface {
	error
	ExitCode() uint32
}
