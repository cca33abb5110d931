package system

import "github.com/nolibc/go/rawsys"

var _ Interface = (*Raw)(nil)

// Raw provides the capability set directly on kernel system calls,
// bypassing the Go runtime's file abstractions.  Write and Exit trap
// into the kernel through the rawsys package; on platforms rawsys does
// not cover, Write fails with rawsys.ErrUnsupported.
//
// Raw is not configurable.  Descriptor numbers are kernel descriptor
// numbers, and exit terminates the whole process.
type Raw struct{}

// Strlen scans p one byte at a time until the terminator, the way a
// freestanding strlen walks memory.
func (Raw) Strlen(p []byte) int {
	n := 0
	for ; n < len(p) && p[n] != 0; n++ {
	}

	return n
}

// Write traps the kernel's write with fd and p as given.
func (Raw) Write(fd int, p []byte) (int, error) {
	return rawsys.Write(fd, p)
}

// Exit traps the kernel's exit_group.  It does not return.
func (Raw) Exit(code int) {
	rawsys.Exit(code)
}
