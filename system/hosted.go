package system

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

var _ Interface = (*Hosted)(nil)

// Hosted provides the capability set on top of the Go runtime.  The
// standard streams resolve to the supplied writers, or to the
// process's own streams when left nil, which makes Hosted the default
// provider for tests and for ordinary command-line use.
type Hosted struct {
	Stdout, Stderr io.Writer
	Exiter         func(code int)
}

// Strlen reports the number of bytes in p that precede the first NUL.
func (h Hosted) Strlen(p []byte) int {
	if i := bytes.IndexByte(p, 0); i >= 0 {
		return i
	}

	return len(p)
}

// Write submits p to the writer backing fd.  Hosted brokers only the
// standard output streams; any other descriptor fails with EBADF.
func (h Hosted) Write(fd int, p []byte) (int, error) {
	if w := h.writer(fd); w != nil {
		return w.Write(p)
	}

	return 0, unix.EBADF
}

func (h Hosted) writer(fd int) io.Writer {
	switch fd {
	case Stdout:
		if h.Stdout != nil {
			return h.Stdout
		}
		return os.Stdout

	case Stderr:
		if h.Stderr != nil {
			return h.Stderr
		}
		return os.Stderr
	}

	return nil
}

// Exit terminates the process through os.Exit, or hands the status to
// the Exiter when one is installed.  An Exiter must not return.
func (h Hosted) Exit(code int) {
	if h.Exiter != nil {
		h.Exiter(code)
		panic("system: exit handler returned")
	}

	os.Exit(code)
}
