package tail

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppend_RetainsEverythingUnderLimit(t *testing.T) {
	b := New(100)
	b.Append([]byte("hello "))
	b.Append([]byte("world"))

	require.Equal(t, 11, b.Len())
	require.Equal(t, []byte("hello world"), b.Bytes())
}

func TestAppend_EvictsOldestChunks(t *testing.T) {
	b := New(8)
	b.Append([]byte("aaaa"))
	b.Append([]byte("bbbb"))
	b.Append([]byte("cccc"))

	// The bytes retained without "aaaa" still reach the limit, so the first
	// chunk goes; dropping "bbbb" too would leave only 4 bytes, so it stays.
	require.Equal(t, []byte("bbbbcccc"), b.Bytes())
}

func TestAppend_KeepsRetentionNearLimit(t *testing.T) {
	const limit = 64

	b := New(limit)
	chunk := bytes.Repeat([]byte("x"), 7)

	for range 1000 {
		b.Append(chunk)
		// Retained bytes minus the oldest chunk always stay below the limit.
		require.Less(t, b.Len()-len(chunk), limit)
	}

	require.LessOrEqual(t, len(b.Bytes()), limit)
}

func TestAppend_SingleOversizedChunk(t *testing.T) {
	b := New(8)
	b.Append([]byte("0123456789abcdef"))

	// The only chunk is never evicted, but Bytes truncates to the limit,
	// keeping the end of the stream.
	require.Equal(t, []byte("89abcdef"), b.Bytes())
}

func TestBytes_TruncatesToStreamEnd(t *testing.T) {
	b := New(5)
	b.Append([]byte("abcdef"))
	b.Append([]byte("gh"))

	got := b.Bytes()
	require.LessOrEqual(t, len(got), 5)
	require.True(t, bytes.HasSuffix([]byte("abcdefgh"), got))
}

func TestAppend_IgnoresEmptyChunks(t *testing.T) {
	b := New(10)
	b.Append(nil)
	b.Append([]byte{})

	require.Zero(t, b.Len())
	require.Empty(t, b.Bytes())
}
