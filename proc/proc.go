// Package proc instantiates and runs guest program images under a
// WebAssembly runtime, serving the capability set to them as a host
// module.
package proc

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
	"go.uber.org/multierr"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sys/unix"

	"github.com/nolibc/go/system"
)

var (
	// ErrMissingABI reports a guest image with no ABI declaration.
	ErrMissingABI = errors.New("missing abi section")

	// ErrStarted reports a second Start on a single-shot process.
	ErrStarted = errors.New("already started")
)

// NewRuntime returns a runtime configured for guest programs: custom
// sections are retained for ABI discovery, and guests are interrupted
// when ctx ends.
func NewRuntime(ctx context.Context) wazero.Runtime {
	return wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().
		WithCloseOnContextDone(true).
		WithCustomSections(true))
}

// Command describes one guest process.  Zero values work: the PID is
// drawn fresh, streams default to the host process's own, and the
// capability set defaults to system.Hosted over those streams.
type Command struct {
	PID            PID
	Sys            system.Interface
	Stdout, Stderr io.Writer
}

// Instantiate compiles bytecode and instantiates it in r, wiring the
// host side the image asks for.  Images that import WASI get
// wazero's wasi_snapshot_preview1 module.  Images that import the
// capability set under system.HostModule must declare a compatible
// revision in the system.ABISection custom section, and receive
// cmd.Sys as their write, strlen and exit.
//
// A runtime hosts one guest: the capability wiring is bound to cmd, so
// concurrent guests each get their own runtime from NewRuntime.
func (cmd Command) Instantiate(ctx context.Context, r wazero.Runtime, bytecode []byte) (*P, error) {
	if cmd.PID == (PID{}) {
		cmd.PID = NewPID()
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if cmd.Sys == nil {
		cmd.Sys = system.Hosted{
			Stdout: cmd.Stdout,
			Stderr: cmd.Stderr,
		}
	}

	cm, err := r.CompileModule(ctx, bytecode)
	if err != nil {
		return nil, errors.Wrap(err, "compile guest")
	}

	var ok bool
	defer func() {
		if !ok {
			cm.Close(ctx)
		}
	}()

	if imported(cm, wasi_snapshot_preview1.ModuleName) {
		if r.Module(wasi_snapshot_preview1.ModuleName) == nil {
			if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
				return nil, errors.Wrap(err, "instantiate wasi")
			}
		}
	} else {
		abi, err := guestABI(cm)
		if err != nil {
			return nil, errors.Wrap(err, "guest abi")
		} else if !system.DefaultABI.Compatible(abi) {
			return nil, errors.Errorf("incompatible abi: %s", abi)
		}

		if err := cmd.instantiateHost(ctx, r); err != nil {
			return nil, errors.Wrap(err, "instantiate host module")
		}
	}

	mod, err := r.InstantiateModule(ctx, cm, wazero.NewModuleConfig().
		WithName(cmd.PID.String()).
		WithStdout(cmd.Stdout).
		WithStderr(cmd.Stderr).
		WithEnv("NOLIBC_PID", cmd.PID.String()).
		WithStartFunctions()) // call _start explicitly, via P.Start
	if err != nil {
		return nil, errors.Wrap(err, "instantiate guest")
	}

	ok = true
	return New(cm, mod), nil
}

// instantiateHost serves cmd.Sys to the guest under system.HostModule.
func (cmd Command) instantiateHost(ctx context.Context, r wazero.Runtime) error {
	_, err := r.NewHostModuleBuilder(system.HostModule).
		NewFunctionBuilder().WithFunc(cmd.hostWrite).Export("write").
		NewFunctionBuilder().WithFunc(cmd.hostStrlen).Export("strlen").
		NewFunctionBuilder().WithFunc(cmd.hostExit).Export("exit").
		Instantiate(ctx)
	return err
}

// hostWrite bridges the guest's write to cmd.Sys.  The return value
// follows the kernel convention the guest expects: bytes written, or a
// negated errno.
func (cmd Command) hostWrite(ctx context.Context, mod api.Module, fd, ptr, size uint32) uint32 {
	p, ok := mod.Memory().Read(ptr, size)
	if !ok {
		return negErrno(unix.EFAULT)
	}

	n, err := cmd.Sys.Write(int(int32(fd)), p)
	if err != nil {
		return negErrno(errnoOf(err))
	}

	return uint32(n)
}

// hostStrlen measures the NUL-terminated sequence at ptr in guest
// memory.  A sequence running off the end of memory measures to the
// memory boundary.
func (cmd Command) hostStrlen(ctx context.Context, mod api.Module, ptr uint32) uint32 {
	mem := mod.Memory()

	p, ok := mem.Read(ptr, mem.Size()-ptr)
	if !ok {
		return 0
	}

	return uint32(cmd.Sys.Strlen(p))
}

// hostExit retires the guest the way wasi's proc_exit does: close the
// module with the status code, then unwind the guest stack.  The host
// process stays up; cmd.Sys.Exit is deliberately not consulted, since
// a guest may only terminate itself.
func (cmd Command) hostExit(ctx context.Context, mod api.Module, code uint32) {
	_ = mod.CloseWithExitCode(ctx, code)
	panic(sys.NewExitError(code))
}

// P is a single-shot guest process.
type P struct {
	cm  wazero.CompiledModule
	mod api.Module
	sem *semaphore.Weighted
}

func New(cm wazero.CompiledModule, mod api.Module) *P {
	return &P{
		cm:  cm,
		mod: mod,
		sem: semaphore.NewWeighted(1),
	}
}

func (p *P) String() string {
	return p.mod.Name()
}

// Start runs the guest's _start.  The first call wins; any later call
// fails with ErrStarted, however the first ended.  A guest that exits
// with status zero reports success.
func (p *P) Start(ctx context.Context) error {
	if !p.sem.TryAcquire(1) {
		return ErrStarted
	}

	fn := p.mod.ExportedFunction("_start")
	if fn == nil {
		return errors.New("missing export: _start")
	}

	_, err := fn.Call(ctx)
	if errors.Is(err, context.Canceled) {
		return context.Canceled
	} else if errors.Is(err, context.DeadlineExceeded) {
		return context.DeadlineExceeded
	}

	var exit system.ExitError
	if errors.As(err, &exit) && exit.ExitCode() == 0 {
		return nil
	}

	return err
}

// Close releases the instance and its compiled module.
func (p *P) Close(ctx context.Context) error {
	return multierr.Combine(
		p.mod.Close(ctx),
		p.cm.Close(ctx),
	)
}

// guestABI reads the revision a guest image declares.
func guestABI(cm wazero.CompiledModule) (system.ABI, error) {
	for _, s := range cm.CustomSections() {
		if s.Name() == system.ABISection {
			return system.ParseABI(string(s.Data()))
		}
	}

	return system.ABI{}, ErrMissingABI
}

// imported reports whether cm imports any function from the named
// module.
func imported(cm wazero.CompiledModule, module string) bool {
	for _, def := range cm.ImportedFunctions() {
		if m, _, ok := def.Import(); ok && m == module {
			return true
		}
	}

	return false
}

func negErrno(e unix.Errno) uint32 {
	return uint32(-int32(e))
}

// errnoOf maps an error from the capability set to an errno for the
// guest.  Anything that is not already an errno reports as EIO.
func errnoOf(err error) unix.Errno {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno
	}

	return unix.EIO
}
