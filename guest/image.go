// Package guest builds the WebAssembly renditions of the greeting
// program.  The images are encoded by hand, byte for byte, so the repo
// carries no build-step artifacts; what a host runs is exactly what
// this package returns.
package guest

import (
	nolibc "github.com/nolibc/go"
	"github.com/nolibc/go/system"
)

// msgPtr is where the greeting lives in guest memory.  The first
// sixteen bytes stay zero.
const msgPtr = 16

// Image returns a program image that imports the capability set from
// the host: write, strlen and exit arrive as imports under
// system.HostModule, and the image declares the ABI revision it was
// built against in the system.ABISection custom section.
//
// The program is main calling the capabilities in the canonical order,
// and _start handing main's status to exit:
//
//	main()  { return drop(write(1, msg, strlen(msg))), 0 }
//	_start() { exit(main()); unreachable }
func Image() []byte {
	const (
		typeWrite = iota // (i32, i32, i32) -> i32
		typeStrlen       // (i32) -> i32
		typeExit         // (i32) -> nil
		typeMain         // nil -> i32
		typeStart        // nil -> nil
	)

	// Imported functions occupy the low indices.
	const (
		fnWrite = iota
		fnStrlen
		fnExit
		fnMain
		fnStart
	)

	// NUL-terminated, as strlen expects.
	msg := append([]byte(nolibc.Message), 0)

	return cat(
		header,

		section(secType, vec(5,
			funcType([]byte{valI32, valI32, valI32}, []byte{valI32}),
			funcType([]byte{valI32}, []byte{valI32}),
			funcType([]byte{valI32}, nil),
			funcType(nil, []byte{valI32}),
			funcType(nil, nil),
		)),

		section(secImport, vec(3,
			funcImport(system.HostModule, "write", typeWrite),
			funcImport(system.HostModule, "strlen", typeStrlen),
			funcImport(system.HostModule, "exit", typeExit),
		)),

		section(secFunction, vec(2,
			uleb(typeMain),
			uleb(typeStart),
		)),

		// One page is plenty for a fifteen-byte program.
		section(secMemory, vec(1, limits(1))),

		section(secExport, vec(2,
			export("memory", kindMemory, 0),
			export("_start", kindFunc, fnStart),
		)),

		section(secCode, vec(2,
			// main: write(stdout, msg, strlen(msg)), result dropped,
			// status 0.
			body(
				i32Const(system.Stdout),
				i32Const(msgPtr),
				i32Const(msgPtr),
				call(fnStrlen),
				call(fnWrite),
				[]byte{opDrop},
				i32Const(0),
			),
			// _start: exit(main()).  Control must not come back; if
			// the host's exit misbehaves, the guest traps.
			body(
				call(fnMain),
				call(fnExit),
				[]byte{opUnreachable},
			),
		)),

		section(secData, vec(1, data(msgPtr, msg))),

		custom(system.ABISection, []byte(system.DefaultABI.String())),
	)
}
