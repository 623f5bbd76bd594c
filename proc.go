package procstream

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/procstream/procstream/internal/errors"
	"github.com/procstream/procstream/internal/process"
	"github.com/procstream/procstream/internal/tail"
)

// Proc is a handle on one running bridge: a child process plus the feeder
// and drainer workers. Obtain one with Open and always release it with
// Close; Run wraps both for the common case.
//
// A Proc is single-use and is intended to be driven from one goroutine:
// the one that iterates Output and finally calls Close.
type Proc struct {
	log       *slog.Logger
	runner    Runner
	chunkSize int
	stdout    io.Reader

	feeder  errgroup.Group
	drainer errgroup.Group
	exiting atomic.Bool

	stderrTail *tail.Buffer

	outputDone bool
	outputErr  error

	closed   bool
	closeErr error
}

// Open spawns command with all three standard streams piped, then starts
// the drainer and feeder workers, in that order, so input, output and error
// flows are all live before the caller observes anything.
//
// The returned Proc must be released with Close even when the caller's own
// work fails; Close runs the full shutdown protocol and reports the run's
// consolidated error. Cancelling ctx terminates the child.
func Open(ctx context.Context, command []string, input InputStream, opts ...Option) (*Proc, error) {
	options := applyOptions(opts)

	chunkSize := options.ChunkSize
	if chunkSize < 0 {
		return nil, fmt.Errorf("chunk size %d: %w", chunkSize, errors.ErrInvalidChunkSize)
	}

	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	log = log.With("component", "supervisor", "run_id", ulid.Make().String())

	runner := options.Runner
	if runner == nil {
		runner = process.New(log, options)
	}

	if err := runner.Start(ctx, command); err != nil {
		return nil, err
	}

	p := &Proc{
		log:        log,
		runner:     runner,
		chunkSize:  chunkSize,
		stdout:     runner.Stdout(),
		stderrTail: tail.New(chunkSize),
	}

	// The drainer starts first: stderr must never be able to back up the
	// child, even if the input stream is slow to produce its first chunk.
	p.drainer.Go(func() error {
		return p.drain(runner.Stderr())
	})

	p.feeder.Go(func() error {
		return p.feed(input, runner.Stdin())
	})

	log.Debug("bridge started", "command", command, "chunk_size", chunkSize)

	return p, nil
}

// Output returns the child's stdout as a lazy, forward-only sequence of
// chunks. Reads happen on the iterating goroutine itself, so the caller's
// consumption speed backpressures the child through the OS pipe. The
// sequence ends when the child closes its stdout; re-ranging resumes from
// the current stream position, it never restarts.
func (p *Proc) Output() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for !p.outputDone {
			buf := make([]byte, p.chunkSize)

			n, err := p.stdout.Read(buf)
			if n > 0 {
				if !yield(buf[:n]) {
					return
				}
			}

			if err != nil {
				// Read failures during shutdown are induced by our own
				// termination of the child and carry no signal.
				if !stderrors.Is(err, io.EOF) && !p.exiting.Load() {
					p.outputErr = fmt.Errorf("read process output: %w", err)
				}

				p.outputDone = true
			}
		}
	}
}

// feed writes input chunks to the child's stdin in order, then closes
// stdin, so the child always sees end-of-input once the feeder stops,
// whether the stream completed, failed, or a write broke.
func (p *Proc) feed(input InputStream, stdin io.WriteCloser) (err error) {
	defer func() {
		if closeErr := stdin.Close(); closeErr != nil && err == nil {
			err = &errors.BrokenWriteError{Err: closeErr}
		}
	}()

	if input == nil {
		return nil
	}

	for chunk, streamErr := range input {
		if streamErr != nil {
			return fmt.Errorf("read input stream: %w", streamErr)
		}

		if p.exiting.Load() {
			return nil
		}

		if len(chunk) == 0 {
			continue
		}

		if _, writeErr := stdin.Write(chunk); writeErr != nil {
			return &errors.BrokenWriteError{Err: writeErr}
		}
	}

	return nil
}

// drain consumes the child's stderr until end-of-stream so the child can
// never block on a full stderr pipe, keeping only the most recent bytes
// for diagnostics.
func (p *Proc) drain(stderr io.Reader) error {
	for {
		buf := make([]byte, p.chunkSize)

		n, err := stderr.Read(buf)
		if n > 0 {
			p.stderrTail.Append(buf[:n])
		}

		if err != nil {
			if stderrors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("read process stderr: %w", err)
		}
	}
}

// Close runs the shutdown protocol and reports the run's consolidated
// error. callerErr is the error the caller's own scope failed with, if any;
// a non-nil callerErr forces immediate termination of the child instead of
// waiting for graceful input closure, and is always returned as-is once
// shutdown completes.
//
// Close is idempotent: later calls return the first result without
// repeating the shutdown.
func (p *Proc) Close(callerErr error) error {
	if p.closed {
		return p.closeErr
	}

	p.closed = true
	p.closeErr = p.shutdown(callerErr)

	return p.closeErr
}

// shutdown enforces the teardown order: stop the output flow, join the
// feeder, join the drainer, reap the child. Only then is any error raised,
// so a failure never leaks the process or a worker.
func (p *Proc) shutdown(callerErr error) error {
	p.exiting.Store(true)

	if callerErr != nil {
		p.log.Debug("caller failed, terminating process", "error", callerErr)

		if err := p.runner.Terminate(); err != nil {
			p.log.Warn("failed to terminate process", "error", err)
		}
	}

	// Drain whatever stdout remains so the child cannot sit blocked on a
	// full output pipe while we join the workers and wait on it.
	for range p.Output() {
	}

	feedErr := p.feeder.Wait()
	drainErr := p.drainer.Wait()

	exitCode, waitErr := p.runner.Wait()
	p.log.Debug("process exited", "exit_code", exitCode)

	if callerErr != nil {
		return callerErr
	}

	return p.reconcile(feedErr, drainErr, waitErr, exitCode)
}

// reconcile folds the captured worker errors and the child's exit status
// into the single error the run surfaces.
func (p *Proc) reconcile(feedErr, drainErr, waitErr error, exitCode int) error {
	// A broken stdin write next to a non-zero exit is almost always a
	// symptom: the child failed and stopped reading its input. Report the
	// child's own failure and keep the write error as the chained cause.
	// With a zero exit the broken write is the genuine condition.
	if brokenErr, ok := stderrors.AsType[*errors.BrokenWriteError](feedErr); ok {
		if exitCode != 0 {
			return &errors.ProcessExitError{
				ExitCode: exitCode,
				Stderr:   p.stderrTail.Bytes(),
				Err:      brokenErr,
			}
		}

		return brokenErr
	}

	if feedErr != nil {
		return feedErr
	}

	if drainErr != nil {
		return drainErr
	}

	if p.outputErr != nil {
		return p.outputErr
	}

	if waitErr != nil {
		return waitErr
	}

	if exitCode != 0 {
		return &errors.ProcessExitError{
			ExitCode: exitCode,
			Stderr:   p.stderrTail.Bytes(),
		}
	}

	return nil
}
