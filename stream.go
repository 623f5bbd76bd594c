package procstream

import (
	"errors"
	"io"
	"iter"
)

// InputStream is a lazy sequence of byte chunks fed to the child process.
// A non-nil error value aborts the run and surfaces to the caller once
// shutdown completes; no further chunks are consumed after it.
type InputStream = iter.Seq2[[]byte, error]

// NoInput returns an empty input stream for processes that take no input.
func NoInput() InputStream {
	return func(func([]byte, error) bool) {}
}

// ChunksFromSlice creates an InputStream from a fixed set of chunks.
func ChunksFromSlice(chunks [][]byte) InputStream {
	return func(yield func([]byte, error) bool) {
		for _, chunk := range chunks {
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// ChunksFromChannel creates an InputStream from a channel. This is useful
// for dynamic input where chunks are produced over time. The stream
// completes when the channel is closed.
func ChunksFromChannel(ch <-chan []byte) InputStream {
	return func(yield func([]byte, error) bool) {
		for chunk := range ch {
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// ChunksFromReader creates an InputStream that re-chunks r into chunks of
// at most chunkSize bytes (DefaultChunkSize if chunkSize is not positive).
// The stream completes at EOF; any other read failure ends the stream with
// that error.
func ChunksFromReader(r io.Reader, chunkSize int) InputStream {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return func(yield func([]byte, error) bool) {
		for {
			buf := make([]byte, chunkSize)

			n, err := r.Read(buf)
			if n > 0 {
				if !yield(buf[:n], nil) {
					return
				}
			}

			if err != nil {
				if !errors.Is(err, io.EOF) {
					yield(nil, err)
				}

				return
			}
		}
	}
}
