package process

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/procstream/procstream/internal/config"
	"github.com/procstream/procstream/internal/errors"
)

// Child runs one external program with piped standard streams.
type Child struct {
	log    *slog.Logger
	env    map[string]string
	dir    string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser
}

// Compile-time verification that Child implements the Runner interface.
var _ config.Runner = (*Child)(nil)

// New creates a Child using the environment and working directory from
// options. The process is not spawned until Start.
func New(log *slog.Logger, options *config.Options) *Child {
	return &Child{
		log: log.With("component", "process"),
		env: options.Env,
		dir: options.Dir,
	}
}

// Start spawns the program with all three standard streams redirected to
// pipes. Returns StartError if the pipes cannot be created or the program
// cannot be spawned (for example, command not found).
//
// Cancelling ctx after a successful Start kills the process, bounding
// teardown latency for cancelled callers.
func (c *Child) Start(ctx context.Context, command []string) error {
	if len(command) == 0 {
		return &errors.StartError{Command: command, Err: errors.ErrEmptyCommand}
	}

	//nolint:gosec // G204: spawning a caller-supplied command is the point.
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = c.dir

	if len(c.env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range c.env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return &errors.StartError{Command: command, Err: fmt.Errorf("stdin pipe: %w", err)}
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &errors.StartError{Command: command, Err: fmt.Errorf("stdout pipe: %w", err)}
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return &errors.StartError{Command: command, Err: fmt.Errorf("stderr pipe: %w", err)}
	}

	if err := cmd.Start(); err != nil {
		return &errors.StartError{Command: command, Err: err}
	}

	c.cmd = cmd
	c.stdin = stdin
	c.stdout = stdout
	c.stderr = stderr

	c.log.Debug("process started", "pid", cmd.Process.Pid)

	return nil
}

// Stdin returns the process's writable input stream.
func (c *Child) Stdin() io.WriteCloser { return c.stdin }

// Stdout returns the process's readable output stream.
func (c *Child) Stdout() io.Reader { return c.stdout }

// Stderr returns the process's readable error stream.
func (c *Child) Stderr() io.Reader { return c.stderr }

// Terminate kills the process. Safe to call on an already-exited process.
func (c *Child) Terminate() error {
	if c.cmd == nil || c.cmd.Process == nil {
		return nil
	}

	c.log.Debug("killing process", "pid", c.cmd.Process.Pid)

	if err := c.cmd.Process.Kill(); err != nil && !stderrors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill process (pid %d): %w", c.cmd.Process.Pid, err)
	}

	return nil
}

// Wait reaps the process and returns its exit code. A process stopped by a
// signal reports -1, matching os/exec. Must only be called after all pipe
// reads have completed.
func (c *Child) Wait() (int, error) {
	err := c.cmd.Wait()
	if err != nil {
		if _, ok := stderrors.AsType[*exec.ExitError](err); ok {
			return c.cmd.ProcessState.ExitCode(), nil
		}

		return -1, fmt.Errorf("wait for process: %w", err)
	}

	return c.cmd.ProcessState.ExitCode(), nil
}
