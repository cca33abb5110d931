package proc

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
)

type PID [20]byte // 160bit opaque identifier

func NewPID() (pid PID) {
	var err error
	if pid, err = ReadPID(rand.Reader); err != nil {
		panic(err)
	}

	return
}

func ReadPID(r io.Reader) (pid PID, err error) {
	var n int // if no error and don't read 20 bytes, sound the alarm.
	if n, err = r.Read(pid[:]); n != len(pid) && err == nil {
		err = io.ErrUnexpectedEOF
	}

	return
}

func ParsePID(s string) (pid PID, err error) {
	var buf []byte
	if buf, err = base58.FastBase58Decoding(s); err == nil {
		copy(pid[:], buf)
	}
	return
}

func (pid PID) String() string {
	return base58.FastBase58Encoding(pid[:])
}

// PIDIndexer indexes records by process identifier.  It implements
// go-memdb's Indexer and SingleIndexer, so tables of trace events or
// process entries can be keyed and queried by PID in any of its
// common shapes.
type PIDIndexer struct{}

// FromArgs builds a lookup key from a single PID, or from its base58
// string form.
func (PIDIndexer) FromArgs(args ...any) ([]byte, error) {
	if len(args) != 1 {
		return nil, errors.Errorf("want exactly one argument, got %d", len(args))
	}

	return pidKey(args[0])
}

// FromObject extracts the index key from anything that carries a PID.
func (PIDIndexer) FromObject(obj any) (bool, []byte, error) {
	if x, ok := obj.(interface{ ProcessID() PID }); ok {
		pid := x.ProcessID()
		return true, pid[:], nil
	}

	key, err := pidKey(obj)
	if err != nil {
		return false, nil, err
	}

	return true, key, nil
}

func pidKey(v any) ([]byte, error) {
	switch x := v.(type) {
	case PID:
		return x[:], nil

	case string:
		pid, err := ParsePID(x)
		if err != nil {
			return nil, err
		}
		return pid[:], nil

	case fmt.Stringer:
		pid, err := ParsePID(x.String())
		if err != nil {
			return nil, err
		}
		return pid[:], nil
	}

	return nil, errors.Errorf("unsupported type: %T", v)
}
