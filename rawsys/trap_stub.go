//go:build !(linux && (amd64 || arm64 || riscv64))

package rawsys

// Supported reports whether this platform has a trap table.
const Supported = false

// Write fails with ErrUnsupported.
func Write(int, []byte) (int, error) {
	return 0, ErrUnsupported
}

// Exit panics.  Without a trap table there is no way to honor the
// never-returns contract.
func Exit(int) {
	panic(ErrUnsupported)
}
