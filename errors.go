package procstream

import "github.com/procstream/procstream/internal/errors"

// Re-export error types from internal package

// BridgeError is the base interface for all procstream errors.
type BridgeError = errors.BridgeError

// StartError indicates the child process could not be spawned.
type StartError = errors.StartError

// BrokenWriteError indicates writing to, or closing, the child's stdin failed.
type BrokenWriteError = errors.BrokenWriteError

// ProcessExitError indicates the child process exited with a non-zero status.
type ProcessExitError = errors.ProcessExitError

// Re-export sentinel errors from internal package.
var (
	// ErrInvalidChunkSize indicates a non-positive chunk size was configured.
	ErrInvalidChunkSize = errors.ErrInvalidChunkSize

	// ErrEmptyCommand indicates an empty command was given to Open.
	ErrEmptyCommand = errors.ErrEmptyCommand
)

// IsBrokenPipe reports whether err is a write failure against a stream whose
// reader has gone away.
func IsBrokenPipe(err error) bool {
	return errors.IsBrokenPipe(err)
}
