package procstream

import (
	"log/slog"

	"github.com/procstream/procstream/internal/config"
)

// DefaultChunkSize is the unit of byte transfer on every pipe when no
// explicit chunk size is configured.
const DefaultChunkSize = config.DefaultChunkSize

// Options configures a bridge run.
type Options = config.Options

// Runner is the child-process collaborator the bridge supervises.
// Implement this to provide custom process backends for testing or mocking;
// the default implementation spawns the command via os/exec.
type Runner = config.Runner

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithChunkSize sets the maximum size of a transferred chunk and the bound
// on retained stderr bytes. Must be positive; Open rejects negative values
// and zero means DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(o *Options) {
		o.ChunkSize = n
	}
}

// WithLogger sets the logger for lifecycle and debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithEnv provides additional environment variables for the child process.
func WithEnv(env map[string]string) Option {
	return func(o *Options) {
		o.Env = env
	}
}

// WithDir sets the working directory for the child process.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}

// WithRunner injects a custom child-process collaborator.
// If not set, the command is spawned via os/exec.
func WithRunner(r Runner) Option {
	return func(o *Options) {
		o.Runner = r
	}
}
