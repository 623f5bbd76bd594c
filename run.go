package procstream

import (
	"context"
	"errors"
	"iter"
)

// errAbandoned marks a scope that never reached a normal return, i.e. the
// scope function panicked. It forces the termination path in Close; the
// panic itself keeps propagating past Run.
var errAbandoned = errors.New("scope abandoned")

// Run bridges input through command and hands the child's output sequence
// to fn, guaranteeing the full shutdown protocol when fn returns — or
// panics. The child is always reaped and both workers joined before Run
// returns.
//
// fn's own error always wins: it terminates the child immediately and is
// returned as-is, even when the child also failed. When fn returns nil, Run
// reports the run's consolidated error, if any: an input stream failure, a
// broken stdin write, or a non-zero exit carrying the child's stderr tail.
//
//	err := procstream.Run(ctx, []string{"sort"}, input,
//	    func(output iter.Seq[[]byte]) error {
//	        for chunk := range output {
//	            if _, err := w.Write(chunk); err != nil {
//	                return err
//	            }
//	        }
//	        return nil
//	    },
//	)
func Run(
	ctx context.Context,
	command []string,
	input InputStream,
	fn func(output iter.Seq[[]byte]) error,
	opts ...Option,
) (err error) {
	p, openErr := Open(ctx, command, input, opts...)
	if openErr != nil {
		return openErr
	}

	callerErr := errAbandoned

	defer func() {
		err = p.Close(callerErr)
	}()

	callerErr = fn(p.Output())

	// A cancelled context with no explicit error from fn still counts as a
	// caller-side abort: terminate rather than drain.
	if callerErr == nil && ctx.Err() != nil {
		callerErr = ctx.Err()
	}

	return nil
}
