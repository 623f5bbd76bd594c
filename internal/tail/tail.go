package tail

// Buffer retains the trailing bytes of a stream. Chunks are appended in
// stream order and the oldest chunks are evicted once the bytes retained
// without them still meet the limit, so retention stays close to one limit's
// worth of bytes without per-byte bookkeeping.
//
// Buffer is not safe for concurrent use; the bridge guarantees a single
// writer and defers all reads until that writer has finished.
type Buffer struct {
	limit  int
	chunks [][]byte
	size   int
}

// New returns a Buffer bounded to roughly limit bytes.
func New(limit int) *Buffer {
	return &Buffer{limit: limit}
}

// Append adds chunk to the tail, evicting the oldest chunks while the
// remaining bytes alone still reach the limit. The chunk is retained by
// reference and must not be modified by the caller afterwards.
func (b *Buffer) Append(chunk []byte) {
	if len(chunk) == 0 {
		return
	}

	b.chunks = append(b.chunks, chunk)
	b.size += len(chunk)

	for len(b.chunks) > 0 && b.size-len(b.chunks[0]) >= b.limit {
		b.size -= len(b.chunks[0])
		b.chunks[0] = nil
		b.chunks = b.chunks[1:]
	}
}

// Len returns the number of retained bytes.
func (b *Buffer) Len() int {
	return b.size
}

// Bytes joins the retained chunks, truncated to at most limit bytes from
// the end of the stream.
func (b *Buffer) Bytes() []byte {
	joined := make([]byte, 0, b.size)
	for _, chunk := range b.chunks {
		joined = append(joined, chunk...)
	}

	if len(joined) > b.limit {
		joined = joined[len(joined)-b.limit:]
	}

	return joined
}
