package util

import (
	"os"
	"strconv"
	"strings"
)

// FDPrefix marks environment variables that hand descriptors down to a
// child process, as NOLIBC_FD_NAME=number.
const FDPrefix = "NOLIBC_FD_"

// File wraps an already-open descriptor number.  The returned file
// owns the descriptor; closing one closes the other.
func File(fd int) *os.File {
	return os.NewFile(uintptr(fd), "fd/"+strconv.Itoa(fd))
}

// FDMap returns a map of names to file descriptor numbers from environment variables.
// This is a utility function for child processes to easily access the
// descriptors a parent passed down.
func FDMap() map[string]int {
	fdMap := make(map[string]int)

	for _, env := range os.Environ() {
		name, num, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, FDPrefix) {
			continue
		}

		if fd, err := strconv.Atoi(num); err == nil {
			fdMap[strings.ToLower(name[len(FDPrefix):])] = fd
		}
	}

	return fdMap
}
