package guest

import (
	"encoding/binary"

	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	nolibc "github.com/nolibc/go"
	"github.com/nolibc/go/system"
)

// WASI returns a program image that speaks wasi_snapshot_preview1
// instead of the nolibc capability set: one fd_write with a single
// iovec, then proc_exit(0).  Hosts that already serve WASI can run it
// without any nolibc host module.
func WASI() []byte {
	const (
		typeFdWrite = iota // (i32, i32, i32, i32) -> i32
		typeProcExit       // (i32) -> nil
		typeStart          // nil -> nil
	)

	const (
		fnFdWrite = iota
		fnProcExit
		fnStart
	)

	// The iovec sits at address 0 and points at the greeting; fd_write
	// reports the byte count into the cell at nwrittenPtr.
	const (
		iovsPtr     = 0
		nwrittenPtr = 8
	)

	msg := []byte(nolibc.Message)

	iovec := binary.LittleEndian.AppendUint32(nil, msgPtr)
	iovec = binary.LittleEndian.AppendUint32(iovec, uint32(len(msg)))

	return cat(
		header,

		section(secType, vec(3,
			funcType([]byte{valI32, valI32, valI32, valI32}, []byte{valI32}),
			funcType([]byte{valI32}, nil),
			funcType(nil, nil),
		)),

		section(secImport, vec(2,
			funcImport(wasi_snapshot_preview1.ModuleName, "fd_write", typeFdWrite),
			funcImport(wasi_snapshot_preview1.ModuleName, "proc_exit", typeProcExit),
		)),

		section(secFunction, vec(1, uleb(typeStart))),

		section(secMemory, vec(1, limits(1))),

		section(secExport, vec(2,
			export("memory", kindMemory, 0),
			export("_start", kindFunc, fnStart),
		)),

		section(secCode, vec(1,
			// _start: fd_write(stdout, iovs, 1, nwritten), errno
			// dropped, then proc_exit(0).
			body(
				i32Const(system.Stdout),
				i32Const(iovsPtr),
				i32Const(1),
				i32Const(nwrittenPtr),
				call(fnFdWrite),
				[]byte{opDrop},
				i32Const(0),
				call(fnProcExit),
				[]byte{opUnreachable},
			),
		)),

		section(secData, vec(2,
			data(iovsPtr, iovec),
			data(msgPtr, msg),
		)),

		custom(system.ABISection, []byte(system.DefaultABI.String())),
	)
}
