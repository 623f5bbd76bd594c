package config

import (
	"log/slog"
)

// DefaultChunkSize is the unit of byte transfer on every pipe when no
// explicit chunk size is configured.
const DefaultChunkSize = 65536

// Options configures a single bridge run.
type Options struct {
	// ChunkSize is the maximum size of a transferred chunk and the bound on
	// retained stderr bytes. Zero means DefaultChunkSize; negative values
	// are rejected by Open.
	ChunkSize int

	// Logger receives lifecycle and debug events. Nil disables logging.
	Logger *slog.Logger

	// Env provides additional environment variables for the child process.
	Env map[string]string

	// Dir is the working directory for the child process. Empty means the
	// current directory.
	Dir string

	// Runner overrides the child-process collaborator. Nil means the
	// default os/exec-backed implementation. Used for testing and mocking.
	Runner Runner
}
