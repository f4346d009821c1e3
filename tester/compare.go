package tester

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// ReaderCompareTest compares the bytes actual produces against the bytes
// expected produces from a plain reader over the same data. To simulate
// sources with different delivery patterns it re-runs actual with chunk
// sizes increasing up to 512.
func ReaderCompareTest(t *testing.T, data []byte, expected func(io.Reader) ([]byte, error), actual func(io.Reader) ([]byte, error)) {
	want, err := expected(bytes.NewReader(data))
	require.NoError(t, err)

	for size := 1; size <= 512 && size <= len(data); size++ {
		got, err := actual(NewChunkReader(data, size))
		require.NoError(t, err)
		require.Equal(t, want, got, "chunk size %d", size)
	}
}
