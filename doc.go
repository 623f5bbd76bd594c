// Package procstream bridges a lazily-produced input stream and an external
// process's standard input/output/error, so that neither side is ever
// materialized fully in memory.
//
// A background feeder writes input chunks to the process's stdin, a
// background drainer keeps stderr from backing up while retaining its tail
// for diagnostics, and the caller consumes stdout as a lazy chunk sequence
// driven by its own reads. The shutdown protocol guarantees that the process
// is always reaped and both workers joined, no matter how the scope exits.
//
// # Basic Usage
//
// Run manages the whole lifecycle:
//
//	input := procstream.ChunksFromSlice([][]byte{
//	    []byte("first"), []byte("second"), []byte("third"),
//	})
//
//	err := procstream.Run(ctx, []string{"cat"}, input,
//	    func(output iter.Seq[[]byte]) error {
//	        for chunk := range output {
//	            fmt.Printf("%s", chunk)
//	        }
//	        return nil
//	    },
//	)
//
// Returning an error from the scope function terminates the process
// immediately and propagates that exact error, so a failing caller never
// waits for a slow child.
//
// # Error Handling
//
// Failures surface as typed errors once the shutdown protocol has finished:
//
//	err := procstream.Run(ctx, []string{"gzip", "-d"}, input, consume)
//	if exitErr, ok := errors.AsType[*procstream.ProcessExitError](err); ok {
//	    log.Fatalf("exit %d: %s", exitErr.ExitCode, exitErr.Stderr)
//	}
//	if _, ok := errors.AsType[*procstream.BrokenWriteError](err); ok {
//	    log.Fatal("process stopped reading its input")
//	}
//
// A broken stdin write observed together with a non-zero exit is reported as
// the exit failure (the broken pipe is almost always its symptom), with the
// write error kept as the chained cause.
//
// # Logging
//
// Logging is disabled by default. Use WithLogger for lifecycle tracing:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	err := procstream.Run(ctx, command, input, consume,
//	    procstream.WithLogger(logger),
//	)
package procstream
