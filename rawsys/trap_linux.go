//go:build linux && (amd64 || arm64 || riscv64)

package rawsys

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Supported reports whether this platform has a trap table.
const Supported = true

// _zero backs zero-length writes, which still trap with a valid
// address.
var _zero uintptr

// Write issues the write system call with fd and p exactly as given.
// One call, one trap: short writes are reported, not retried.  The
// trap bypasses the Go scheduler, so a descriptor that never accepts
// bytes blocks its thread.
func Write(fd int, p []byte) (int, error) {
	var _p0 unsafe.Pointer
	if len(p) > 0 {
		_p0 = unsafe.Pointer(&p[0])
	} else {
		_p0 = unsafe.Pointer(&_zero)
	}

	r0, _, e1 := unix.RawSyscall(sysWrite, uintptr(fd), uintptr(_p0), uintptr(len(p)))
	if e1 != 0 {
		return 0, e1
	}

	return int(r0), nil
}

// Exit terminates the process with the given status.  The trap is
// exit_group rather than exit: the Go runtime is threaded, and exit
// would stop only the calling thread while its siblings run on.
// Control never comes back; the terminal panic marks the spot where a
// freestanding program would park in an infinite loop.
func Exit(code int) {
	unix.RawSyscall(sysExitGroup, uintptr(code), 0, 0)
	panic("rawsys: exit_group returned")
}
