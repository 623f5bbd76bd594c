// Package tail provides a bounded buffer that retains only the most recent
// bytes of a stream, as an ordered sequence of chunks.
package tail
