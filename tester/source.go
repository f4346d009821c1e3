// Package tester contains fakes and harnesses shared by the bufread tests.
package tester

import (
	"errors"
	"io"
)

// ChunkReader fakes a source that delivers its data in scripted chunk
// sizes, one chunk per Read call. With no sizes given it fills the whole
// destination. It counts its Read calls so tests can assert that a wrapper
// touched the source exactly as often as promised.
type ChunkReader struct {
	data  []byte
	sizes []int
	reads int
}

// NewChunkReader creates a ChunkReader over data. The sizes are cycled
// through, one per Read call.
func NewChunkReader(data []byte, sizes ...int) *ChunkReader {
	return &ChunkReader{data: data, sizes: sizes}
}

// Read implements io.Reader. It never delivers more than one scripted
// chunk per call and returns io.EOF once the data is exhausted.
func (r *ChunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}

	n := len(p)
	if len(r.sizes) > 0 {
		if s := r.sizes[r.reads%len(r.sizes)]; s < n {
			n = s
		}
	}
	r.reads++

	n = copy(p[:min(n, len(r.data))], r.data)
	r.data = r.data[n:]
	return n, nil
}

// Reads returns how many times Read has been called.
func (r *ChunkReader) Reads() int {
	return r.reads
}

// ErrSeekFailed is returned by Seeker for a scripted seek failure.
var ErrSeekFailed = errors.New("tester: scripted seek failure")

// SeekCall records the arguments of one Seek call.
type SeekCall struct {
	Offset int64
	Whence int
}

// Seeker fakes a seekable byte source. It records every Seek call and can
// be told to fail the nth one, leaving its position untouched.
type Seeker struct {
	// FailAt makes the nth Seek call (1-based) return ErrSeekFailed;
	// zero disables the failure.
	FailAt int

	data  []byte
	pos   int64
	calls []SeekCall
}

// NewSeeker creates a Seeker over data.
func NewSeeker(data []byte) *Seeker {
	return &Seeker{data: data}
}

// Read implements io.Reader.
func (s *Seeker) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += int64(n)
	return n, nil
}

// Seek implements io.Seeker.
func (s *Seeker) Seek(offset int64, whence int) (int64, error) {
	s.calls = append(s.calls, SeekCall{Offset: offset, Whence: whence})
	if s.FailAt == len(s.calls) {
		return 0, ErrSeekFailed
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = s.pos + offset
	case io.SeekEnd:
		abs = int64(len(s.data)) + offset
	default:
		return 0, errors.New("tester: invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("tester: negative position")
	}

	s.pos = abs
	return abs, nil
}

// Pos returns the current absolute position.
func (s *Seeker) Pos() int64 {
	return s.pos
}

// Seeks returns the recorded Seek calls in order.
func (s *Seeker) Seeks() []SeekCall {
	return s.calls
}
