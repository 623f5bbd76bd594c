package errors

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
)

// BridgeError is the base interface for all procstream errors.
type BridgeError interface {
	error
	IsBridgeError() bool
}

// Compile-time verification that all error types implement BridgeError.
var (
	_ BridgeError = (*StartError)(nil)
	_ BridgeError = (*BrokenWriteError)(nil)
	_ BridgeError = (*ProcessExitError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrInvalidChunkSize indicates a non-positive chunk size was configured.
	ErrInvalidChunkSize = errors.New("chunk size must be positive")

	// ErrEmptyCommand indicates an empty command was given to Open.
	ErrEmptyCommand = errors.New("command must contain at least the program name")
)

// StartError indicates the child process could not be spawned, for example
// because the program was not found. No workers are started when it occurs.
type StartError struct {
	Command []string
	Err     error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %v: %v", e.Command, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *StartError) IsBridgeError() bool { return true }

// BrokenWriteError indicates writing to, or closing, the child's stdin
// failed, most commonly because the child already closed its end.
type BrokenWriteError struct {
	Err error
}

func (e *BrokenWriteError) Error() string {
	return fmt.Sprintf("failed to write process input: %v", e.Err)
}

func (e *BrokenWriteError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *BrokenWriteError) IsBridgeError() bool { return true }

// ProcessExitError indicates the child process exited with a non-zero
// status. Stderr holds the trailing bytes of the child's error stream,
// bounded to at most one chunk size.
//
// Err, when set, chains the broken-write failure this error was
// reclassified from, so the original diagnosis is not lost.
type ProcessExitError struct {
	ExitCode int
	Stderr   []byte
	Err      error
}

func (e *ProcessExitError) Error() string {
	if len(e.Stderr) > 0 {
		return fmt.Sprintf("process failed (exit %d): %s", e.ExitCode, e.Stderr)
	}

	return fmt.Sprintf("process failed (exit %d)", e.ExitCode)
}

func (e *ProcessExitError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *ProcessExitError) IsBridgeError() bool { return true }

// IsBrokenPipe reports whether err is a write failure against a stream
// whose reader has gone away.
func IsBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, os.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe)
}
