//go:build linux && amd64

package rawsys

// Trap numbers from the amd64 syscall table.
const (
	sysWrite     = 1
	sysExit      = 60
	sysExitGroup = 231
)
