package bufread

import (
	"fmt"
	"io"
)

// Unbuffer drains the buffered bytes left over from a consumed BufReader
// and then reads from the source directly. The remnant storage is released
// as soon as it has been drained and is never reallocated.
//
// Created by BufReader.Unbuffer.
type Unbuffer struct {
	src io.Reader
	buf []byte
	pos int
}

// BufferEmpty reports whether the remnant has been fully drained.
func (u *Unbuffer) BufferEmpty() bool {
	return u.pos >= len(u.buf)
}

// Buffered returns the number of bytes remaining in the remnant.
func (u *Unbuffer) Buffered() int {
	if u.pos >= len(u.buf) {
		return 0
	}
	return len(u.buf) - u.pos
}

// Read implements io.Reader. While the remnant holds bytes it serves only
// those, even when p has room for more; remnant and live source bytes are
// never mixed in one call. Once drained, every call goes straight to the
// source.
func (u *Unbuffer) Read(p []byte) (int, error) {
	if u.pos < len(u.buf) {
		n := copy(p, u.buf[u.pos:])
		u.pos += n

		if u.pos == len(u.buf) {
			// Drained; let the remnant go.
			u.buf = nil
			u.pos = 0
		}

		return n, nil
	}

	return u.src.Read(p)
}

// Unwrap returns the source, silently discarding any bytes still left in
// the remnant.
func (u *Unbuffer) Unwrap() io.Reader {
	src := u.src
	u.src = nil
	u.buf = nil
	u.pos = 0
	return src
}

// String returns a snapshot of the adapter state for debugging.
func (u *Unbuffer) String() string {
	return fmt.Sprintf("bufread.Unbuffer{src: %v, buffer: %d/%d}", u.src, u.pos, len(u.buf))
}
