package proc_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"golang.org/x/sys/unix"

	nolibc "github.com/nolibc/go"
	"github.com/nolibc/go/guest"
	"github.com/nolibc/go/proc"
	"github.com/nolibc/go/system"
	"github.com/nolibc/go/system/mocks"
	syncutils "github.com/nolibc/go/util/sync"
)

// importEnvExit is a guest that imports the capability set but
// declares no ABI revision.
var importEnvExit = []byte{
	0x00, 0x61, 0x73, 0x6d, // WASM magic number
	0x01, 0x00, 0x00, 0x00, // Version 1
	0x01, 0x05, 0x01, 0x60, 0x01, 0x7f, 0x00, // Type section: (i32) -> nil
	0x02, 0x0c, 0x01, // Import section: 1 import
	0x03, 0x65, 0x6e, 0x76, // module "env"
	0x04, 0x65, 0x78, 0x69, 0x74, // field "exit"
	0x00, 0x00, // function import, type 0
}

// spin is a guest whose _start loops forever.
var spin = []byte{
	0x00, 0x61, 0x73, 0x6d, // WASM magic number
	0x01, 0x00, 0x00, 0x00, // Version 1
	0x01, 0x04, 0x01, 0x60, 0x00, 0x00, // Type section: nil -> nil
	0x03, 0x02, 0x01, 0x00, // Function section: 1 function of type 0
	0x07, 0x0a, 0x01, 0x06, 0x5f, 0x73, 0x74, 0x61, 0x72, 0x74, 0x00, 0x00, // Export section: "_start"
	0x0a, 0x09, 0x01, 0x07, 0x00, 0x03, 0x40, 0x0c, 0x00, 0x0b, 0x0b, // Code section: loop { br 0 }
}

// abiSection encodes a trailing custom section declaring revision.
func abiSection(revision string) []byte {
	payload := append([]byte{byte(len(system.ABISection))}, system.ABISection...)
	payload = append(payload, revision...)
	return append([]byte{0x00, byte(len(payload))}, payload...)
}

// declaring glues a bytecode prefix to an ABI declaration without
// aliasing the prefix's backing array.
func declaring(bytecode []byte, revision string) []byte {
	image := append([]byte{}, bytecode...)
	return append(image, abiSection(revision)...)
}

func TestCommand_Instantiate(t *testing.T) {
	t.Parallel()

	ctx := context.TODO()

	t.Run("EnvGuestGreets", func(t *testing.T) {
		t.Parallel()

		r := proc.NewRuntime(ctx)
		defer r.Close(ctx)

		stdout := new(bytes.Buffer)
		p, err := proc.Command{
			Sys: system.Hosted{Stdout: stdout},
		}.Instantiate(ctx, r, guest.Image())
		require.NoError(t, err, "failed to instantiate process")
		require.NotNil(t, p, "should return *proc.P")
		defer p.Close(ctx)

		require.NoError(t, p.Start(ctx))
		require.Equal(t, nolibc.Message, stdout.String(),
			"exactly the greeting bytes should reach stdout")
	})

	t.Run("WASIGuestGreets", func(t *testing.T) {
		t.Parallel()

		r := proc.NewRuntime(ctx)
		defer r.Close(ctx)

		stdout := new(bytes.Buffer)
		p, err := proc.Command{Stdout: stdout}.Instantiate(ctx, r, guest.WASI())
		require.NoError(t, err, "failed to instantiate process")
		defer p.Close(ctx)

		require.NoError(t, p.Start(ctx))
		require.Equal(t, nolibc.Message, stdout.String())
	})

	t.Run("InvalidBytecode", func(t *testing.T) {
		t.Parallel()

		r := proc.NewRuntime(ctx)
		defer r.Close(ctx)

		p, err := proc.Command{}.Instantiate(ctx, r, []byte("invalid wasm bytecode"))
		require.ErrorContains(t, err, "compile guest")
		require.Nil(t, p)
	})

	t.Run("MissingABI", func(t *testing.T) {
		t.Parallel()

		r := proc.NewRuntime(ctx)
		defer r.Close(ctx)

		p, err := proc.Command{}.Instantiate(ctx, r, importEnvExit)
		require.ErrorIs(t, err, proc.ErrMissingABI)
		require.Nil(t, p)
	})

	t.Run("IncompatibleABI", func(t *testing.T) {
		t.Parallel()

		r := proc.NewRuntime(ctx)
		defer r.Close(ctx)

		p, err := proc.Command{}.Instantiate(ctx, r,
			declaring(importEnvExit, "nolibc/9.0.0"))
		require.ErrorContains(t, err, "incompatible abi")
		require.Nil(t, p)
	})
}

func TestP_Start(t *testing.T) {
	t.Parallel()

	ctx := context.TODO()

	t.Run("StartOnce", func(t *testing.T) {
		t.Parallel()

		r := proc.NewRuntime(ctx)
		defer r.Close(ctx)

		stdout := new(bytes.Buffer)
		p, err := proc.Command{
			Sys: system.Hosted{Stdout: stdout},
		}.Instantiate(ctx, r, guest.Image())
		require.NoError(t, err)
		defer p.Close(ctx)

		require.NoError(t, p.Start(ctx))
		require.ErrorIs(t, p.Start(ctx), proc.ErrStarted)
		require.Equal(t, nolibc.Message, stdout.String(),
			"a single-shot process should greet exactly once")
	})

	t.Run("CapabilityOrder", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		r := proc.NewRuntime(ctx)
		defer r.Close(ctx)

		// The guest measures, then writes.  It may only terminate
		// itself, so Exit never reaches the capability set.
		sys := mocks.NewMockInterface(ctrl)
		gomock.InOrder(
			sys.EXPECT().
				Strlen(gomock.Any()).
				Return(len(nolibc.Message)).
				Times(1),
			sys.EXPECT().
				Write(system.Stdout, []byte(nolibc.Message)).
				Return(len(nolibc.Message), nil).
				Times(1),
		)

		p, err := proc.Command{Sys: sys}.Instantiate(ctx, r, guest.Image())
		require.NoError(t, err)
		defer p.Close(ctx)

		require.NoError(t, p.Start(ctx))
	})

	t.Run("WriteFailureTolerated", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		r := proc.NewRuntime(ctx)
		defer r.Close(ctx)

		sys := mocks.NewMockInterface(ctrl)
		sys.EXPECT().Strlen(gomock.Any()).Return(len(nolibc.Message))
		sys.EXPECT().Write(system.Stdout, gomock.Any()).Return(0, unix.EBADF)

		p, err := proc.Command{Sys: sys}.Instantiate(ctx, r, guest.Image())
		require.NoError(t, err)
		defer p.Close(ctx)

		require.NoError(t, p.Start(ctx),
			"the write result is advisory; the guest still exits 0")
	})

	t.Run("MissingStartExport", func(t *testing.T) {
		t.Parallel()

		r := proc.NewRuntime(ctx)
		defer r.Close(ctx)

		p, err := proc.Command{}.Instantiate(ctx, r,
			declaring(importEnvExit, system.DefaultABI.String()))
		require.NoError(t, err)
		defer p.Close(ctx)

		require.ErrorContains(t, p.Start(ctx), "missing export: _start")
	})

	t.Run("InterruptedAtDeadline", func(t *testing.T) {
		t.Parallel()

		r := proc.NewRuntime(ctx)
		defer r.Close(ctx)

		p, err := proc.Command{}.Instantiate(ctx, r,
			declaring(spin, system.DefaultABI.String()))
		require.NoError(t, err)
		defer p.Close(ctx)

		timeout, cancel := context.WithTimeout(ctx, time.Millisecond*100)
		defer cancel()

		assert.Error(t, p.Start(timeout),
			"the runtime should interrupt a spinning guest")
	})
}

// TestCommand_parallel runs several guests concurrently, each in its
// own runtime, and checks that the greetings never mix.
func TestCommand_parallel(t *testing.T) {
	t.Parallel()

	ctx := context.TODO()

	var join syncutils.Any
	var bufs [8]bytes.Buffer
	for i := range bufs {
		stdout := &bufs[i]
		join.Go(func() error {
			r := proc.NewRuntime(ctx)
			defer r.Close(ctx)

			p, err := proc.Command{
				Sys: system.Hosted{Stdout: stdout},
			}.Instantiate(ctx, r, guest.Image())
			if err != nil {
				return err
			}
			defer p.Close(ctx)

			return p.Start(ctx)
		})
	}

	require.NoError(t, join.Wait())
	for i := range bufs {
		require.Equal(t, nolibc.Message, bufs[i].String())
	}
}

// TestP_lifecycle checks that a full run leaves nothing behind.
func TestP_lifecycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.TODO()
	r := proc.NewRuntime(ctx)

	stdout := new(bytes.Buffer)
	p, err := proc.Command{
		Sys: system.Hosted{Stdout: stdout},
	}.Instantiate(ctx, r, guest.Image())
	require.NoError(t, err)

	require.NoError(t, p.Start(ctx))
	require.NoError(t, p.Close(ctx))
	require.NoError(t, r.Close(ctx))
}
