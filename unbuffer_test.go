package bufread_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	bufread "github.com/uponusolutions/go-bufread"
	"github.com/uponusolutions/go-bufread/tester"
)

// A reader with 4 buffered bytes and 10 more behind it: small reads drain
// only the remnant, then the adapter becomes a plain passthrough.
func TestUnbufferDrainThenPassthrough(t *testing.T) {
	data := []byte("abcdefghijklmn")
	src := tester.NewChunkReader(data, 4)
	r := bufread.NewSize(src, 8)

	buf, err := r.Fill()
	require.NoError(t, err)
	require.Equal(t, []byte("abcd"), buf)

	u := r.Unbuffer()
	require.False(t, u.BufferEmpty())
	require.Equal(t, 4, u.Buffered())

	cache := make([]byte, 2)

	n, err := u.Read(cache)
	require.NoError(t, err)
	require.Equal(t, []byte("ab"), cache[:n])
	require.Equal(t, 2, u.Buffered())

	n, err = u.Read(cache)
	require.NoError(t, err)
	require.Equal(t, []byte("cd"), cache[:n])
	require.True(t, u.BufferEmpty())
	require.Equal(t, 0, u.Buffered())

	// Drained; everything else comes straight from the source.
	reads := src.Reads()
	rest, err := io.ReadAll(u)
	require.NoError(t, err)
	require.Equal(t, []byte("efghijklmn"), rest)
	require.Greater(t, src.Reads(), reads)
}

// While the remnant holds bytes a read never mixes them with live source
// bytes, even when the destination has room for both.
func TestUnbufferNeverMixes(t *testing.T) {
	src := tester.NewChunkReader([]byte("abcdefgh"), 4)
	r := bufread.NewSize(src, 8)
	_, err := r.Fill()
	require.NoError(t, err)

	u := r.Unbuffer()

	cache := make([]byte, 100)
	n, err := u.Read(cache)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte("abcd"), cache[:n])
	require.Equal(t, 1, src.Reads())
}

// Unbuffering keeps the consumed prefix consumed.
func TestUnbufferAfterConsume(t *testing.T) {
	src := tester.NewChunkReader([]byte("abcdefgh"))
	r := bufread.NewSize(src, 8)
	_, err := r.Fill()
	require.NoError(t, err)
	r.Consume(3)

	u := r.Unbuffer()
	require.Equal(t, 5, u.Buffered())

	rest, err := io.ReadAll(u)
	require.NoError(t, err)
	require.Equal(t, []byte("defgh"), rest)
}

func TestUnbufferEmptyBuffer(t *testing.T) {
	src := tester.NewChunkReader([]byte("abc"))
	u := bufread.NewSize(src, 8).Unbuffer()

	require.True(t, u.BufferEmpty())
	require.Equal(t, 0, u.Buffered())

	rest, err := io.ReadAll(u)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), rest)
}

func TestUnbufferUnwrap(t *testing.T) {
	src := tester.NewChunkReader([]byte("abcdefgh"))
	r := bufread.NewSize(src, 8)
	_, err := r.Fill()
	require.NoError(t, err)

	// Undrained remnant bytes are discarded silently.
	u := r.Unbuffer()
	require.Same(t, src, u.Unwrap())
}

func TestUnbufferString(t *testing.T) {
	src := tester.NewChunkReader([]byte("abcd"))
	r := bufread.NewSize(src, 4)
	_, err := r.Fill()
	require.NoError(t, err)

	u := r.Unbuffer()
	require.Contains(t, u.String(), "buffer: 0/4")
}
