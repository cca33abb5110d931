package nolibc_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/sys/unix"

	nolibc "github.com/nolibc/go"
	"github.com/nolibc/go/system"
	"github.com/nolibc/go/system/mocks"
)

func TestMain_greeting(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	status := nolibc.Main(system.Hosted{Stdout: &buf})

	require.Zero(t, status, "greeting should report success")
	require.Equal(t, nolibc.Message, buf.String(),
		"exactly the greeting bytes should be written")
	require.NotContains(t, buf.String(), "\x00",
		"the NUL terminator is bookkeeping, not payload")
}

func TestMain_capabilities(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sys := mocks.NewMockInterface(ctrl)
	gomock.InOrder(
		sys.EXPECT().
			Strlen(gomock.Len(len(nolibc.Message)+1)).
			Return(len(nolibc.Message)).
			Times(1),
		sys.EXPECT().
			Write(system.Stdout, []byte(nolibc.Message)).
			Return(len(nolibc.Message), nil).
			Times(1),
	)

	require.Zero(t, nolibc.Main(sys))
}

func TestMain_ignoresWriteFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sys := mocks.NewMockInterface(ctrl)
	sys.EXPECT().Strlen(gomock.Any()).Return(len(nolibc.Message))
	sys.EXPECT().Write(system.Stdout, gomock.Any()).
		Return(0, unix.EBADF)

	require.Zero(t, nolibc.Main(sys),
		"the write result is advisory; status is still success")
}

func TestStart_terminates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var status int
	sys := system.Hosted{
		Stdout: &buf,
		Exiter: func(code int) {
			status = code
			panic(exited{})
		},
	}

	require.PanicsWithValue(t, exited{}, func() {
		nolibc.Start(sys)
	})
	require.Zero(t, status)
	require.Equal(t, nolibc.Message, buf.String())
}

func TestStart_exitMustNotReturn(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sys := mocks.NewMockInterface(ctrl)
	sys.EXPECT().Strlen(gomock.Any()).Return(len(nolibc.Message))
	sys.EXPECT().Write(gomock.Any(), gomock.Any()).Return(len(nolibc.Message), nil)
	sys.EXPECT().Exit(0) // returns, violating the contract

	require.PanicsWithValue(t, "nolibc: exit returned", func() {
		nolibc.Start(sys)
	})
}

// exited is a sentinel carried by the test Exiter's panic.
type exited struct{}
