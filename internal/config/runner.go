package config

import (
	"context"
	"io"
)

// Runner is the child-process collaborator the bridge supervises: a program
// spawned with its stdin, stdout and stderr redirected to pipes.
//
// The default implementation lives in internal/process. Custom runners can
// be injected via Options.Runner for testing and mocking.
type Runner interface {
	// Start spawns the program with all three standard streams piped.
	// Cancelling ctx after a successful Start terminates the process.
	Start(ctx context.Context, command []string) error

	// Stdin returns the writable input stream. Closing it signals
	// end-of-input to the process.
	Stdin() io.WriteCloser

	// Stdout returns the readable output stream.
	Stdout() io.Reader

	// Stderr returns the readable error stream.
	Stderr() io.Reader

	// Terminate forcefully stops the process. It is safe to call on a
	// process that has already exited.
	Terminate() error

	// Wait reaps the process and returns its exit code. It must only be
	// called after all reads from Stdout and Stderr have completed.
	Wait() (int, error)
}
