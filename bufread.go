// Package bufread implements a buffered front-end for an io.Reader with
// explicit control over the internal buffer: lookahead without consuming,
// caller-driven growth and compaction, and consuming transitions that hand
// the source back together with any bytes still buffered.
package bufread

import (
	"fmt"
	"io"
)

const (
	// DefaultBufferSize is the buffer capacity used by New.
	DefaultBufferSize = 64 * 1024

	// Compacting on every small consume would cost more than it reclaims,
	// so a refill only moves data down once at least this many stale bytes
	// sit in front of the unread region.
	moveThreshold = 1024
)

// BufReader wraps an io.Reader with an internal buffer and a
// peek-then-consume protocol on top of it.
//
// The buffer never grows or shrinks on its own; callers control its size
// through NewSize and Grow. The unread bytes live in buf[pos:cap], the
// space behind cap is free for refills and the space before pos is stale
// until MakeRoom reclaims it.
//
// A BufReader is consumed by Detach, Unwrap and Unbuffer and must not be
// used afterwards.
type BufReader struct {
	src io.Reader
	buf []byte
	pos int
	cap int

	// err holds a source error that arrived together with data; the data
	// is delivered first, the error on the next call.
	err error
}

// New returns a BufReader with the default buffer capacity.
func New(src io.Reader) *BufReader {
	return NewSize(src, DefaultBufferSize)
}

// NewSize returns a BufReader whose buffer holds at least size bytes.
func NewSize(src io.Reader, size int) *BufReader {
	b := &BufReader{src: src}
	b.Grow(size)
	return b
}

// Grow extends the buffer by at least additional bytes. The runtime may
// round the allocation up to a larger block; the whole block is claimed as
// usable capacity and zero-filled instead of being wasted. Each call incurs
// a reallocation, so Grow is not meant for the hot path.
func (b *BufReader) Grow(additional int) {
	old := len(b.buf)
	if cap(b.buf)-old < additional {
		b.buf = append(b.buf, make([]byte, additional)...)
	}
	b.buf = b.buf[:cap(b.buf)]
	for i := old; i < len(b.buf); i++ {
		b.buf[i] = 0
	}
}

// MakeRoom moves the unread bytes to the start of the buffer, making room
// behind them for further reading. When there is nothing to preserve only
// the cursors are reset.
func (b *BufReader) MakeRoom() {
	if b.pos == b.cap || b.pos == 0 {
		b.pos = 0
		b.cap = 0
		return
	}

	// copy has memmove semantics, the overlap is fine.
	copy(b.buf, b.buf[b.pos:b.cap])

	b.cap -= b.pos
	b.pos = 0
}

// Buffered returns the unread section of the buffer without touching the
// source; it may be empty. Consume removes bytes from its front.
func (b *BufReader) Buffered() []byte {
	return b.buf[b.pos:b.cap]
}

// Available returns the number of unread bytes currently buffered.
func (b *BufReader) Available() int {
	return b.cap - b.pos
}

// Capacity returns the total size of the internal buffer.
func (b *BufReader) Capacity() int {
	return len(b.buf)
}

// Source returns the wrapped reader. Reading from it directly while the
// buffer holds unread bytes desynchronizes the two and is not recommended.
func (b *BufReader) Source() io.Reader {
	return b.src
}

// Consume drops n bytes from the front of the unread section. Consuming
// more than Available is not an error, the cursor stops at the end of the
// unread section.
func (b *BufReader) Consume(n int) {
	b.pos = min(b.pos+n, b.cap)
}

// Fill returns the unread section, reading from the source once to fill it
// only when it is empty. With no intervening Consume, repeated calls return
// the same bytes. At end of stream the section stays empty and io.EOF is
// returned.
func (b *BufReader) Fill() ([]byte, error) {
	if b.pos == b.cap {
		if b.err != nil {
			return nil, b.readErr()
		}
		n, err := b.src.Read(b.buf)
		b.pos = 0
		b.cap = n
		if n == 0 {
			return nil, err
		}
		// Deliver the bytes first, the error on the next call.
		b.err = err
	}
	return b.buf[b.pos:b.cap], nil
}

// ReadIntoBuf unconditionally performs one read from the source into the
// buffer, compacting first when the stale space in front of the unread
// section is both larger than the free space behind it and worth the move.
// It returns the number of unread bytes now available.
func (b *BufReader) ReadIntoBuf() (int, error) {
	if b.err != nil {
		return b.Available(), b.readErr()
	}

	var err error
	if b.pos == b.cap {
		b.pos = 0
		b.cap, err = b.src.Read(b.buf)
	} else {
		if len(b.buf)-b.cap < b.pos && b.pos > moveThreshold {
			b.MakeRoom()
		}

		var n int
		n, err = b.src.Read(b.buf[b.cap:])
		b.cap += n
	}

	return b.Available(), err
}

// Read implements io.Reader. It copies out of the buffer, refilling it from
// the source at most once per call; callers must expect partial reads. A
// large read into an empty buffer bypasses buffering entirely and goes
// straight to the source, avoiding a pointless double copy.
func (b *BufReader) Read(p []byte) (int, error) {
	if b.pos == b.cap && len(p) >= len(b.buf) {
		if b.err != nil {
			return 0, b.readErr()
		}
		return b.src.Read(p)
	}

	rem, err := b.Fill()
	if len(rem) == 0 {
		return 0, err
	}

	n := copy(p, rem)
	b.Consume(n)
	return n, nil
}

func (b *BufReader) readErr() error {
	err := b.err
	b.err = nil
	return err
}

// Detach consumes the reader, compacts the buffer and truncates it to the
// unread length, returning the source together with exactly the bytes that
// were buffered but not yet delivered, starting at offset 0.
//
// See also Unbuffer.
func (b *BufReader) Detach() (io.Reader, []byte) {
	b.MakeRoom()
	src, buf := b.src, b.buf[:b.cap]
	b.reset()
	return src, buf
}

// Unwrap consumes the reader and returns the bare source, discarding any
// buffered bytes.
func (b *BufReader) Unwrap() io.Reader {
	src := b.src
	b.reset()
	return src
}

// Unbuffer consumes the reader into an adapter that drains the remaining
// buffered bytes before reading from the source directly. The buffer is
// truncated but not compacted, the unread bytes keep their offset.
func (b *BufReader) Unbuffer() *Unbuffer {
	u := &Unbuffer{
		src: b.src,
		buf: b.buf[:b.cap],
		pos: b.pos,
	}
	b.reset()
	return u
}

func (b *BufReader) reset() {
	b.src = nil
	b.buf = nil
	b.pos = 0
	b.cap = 0
	b.err = nil
}

// String returns a snapshot of the reader state for debugging.
func (b *BufReader) String() string {
	return fmt.Sprintf("bufread.BufReader{src: %v, available: %d, capacity: %d}",
		b.src, b.Available(), b.Capacity())
}
