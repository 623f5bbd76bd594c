package errors

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartError(t *testing.T) {
	root := errors.New("executable file not found")
	err := &StartError{
		Command: []string{"no-such-program", "--flag"},
		Err:     root,
	}

	require.Equal(
		t,
		"failed to start [no-such-program --flag]: executable file not found",
		err.Error(),
	)
	require.ErrorIs(t, err, root)
	require.True(t, err.IsBridgeError())
}

func TestBrokenWriteError(t *testing.T) {
	root := &fs.PathError{Op: "write", Path: "|1", Err: syscall.EPIPE}
	err := &BrokenWriteError{Err: root}

	require.Equal(t, "failed to write process input: write |1: broken pipe", err.Error())
	require.ErrorIs(t, err, syscall.EPIPE)
	require.True(t, err.IsBridgeError())
}

func TestProcessExitError_WithStderr(t *testing.T) {
	err := &ProcessExitError{
		ExitCode: 3,
		Stderr:   []byte("out of memory"),
	}

	require.Equal(t, "process failed (exit 3): out of memory", err.Error())
	require.NoError(t, err.Unwrap())
	require.True(t, err.IsBridgeError())
}

func TestProcessExitError_WithoutStderr(t *testing.T) {
	err := &ProcessExitError{ExitCode: 1}

	require.Equal(t, "process failed (exit 1)", err.Error())
}

func TestProcessExitError_ChainsReclassifiedCause(t *testing.T) {
	cause := &BrokenWriteError{Err: syscall.EPIPE}
	err := &ProcessExitError{
		ExitCode: 2,
		Stderr:   []byte("bad input"),
		Err:      cause,
	}

	require.ErrorIs(t, err, syscall.EPIPE)

	inner, ok := errors.AsType[*BrokenWriteError](err)
	require.True(t, ok)
	require.Same(t, cause, inner)
}

func TestIsBrokenPipe(t *testing.T) {
	require.True(t, IsBrokenPipe(syscall.EPIPE))
	require.True(t, IsBrokenPipe(&fs.PathError{Op: "write", Err: syscall.EPIPE}))
	require.True(t, IsBrokenPipe(fmt.Errorf("close stdin: %w", os.ErrClosed)))
	require.True(t, IsBrokenPipe(io.ErrClosedPipe))

	require.False(t, IsBrokenPipe(nil))
	require.False(t, IsBrokenPipe(io.EOF))
	require.False(t, IsBrokenPipe(errors.New("write failed")))
}
