package bufread

import (
	"io"
	"math"
)

// Seek seeks to an offset in the source, correcting io.SeekCurrent offsets
// for bytes that are buffered but not yet delivered: the source's physical
// cursor runs ahead of the reader's logical one by Available() bytes, and
// the correction makes seeking behave as if no buffer existed.
//
// Seeking always discards the buffer, even when the target position would
// fall inside it and even when the underlying seek fails. This guarantees
// that Unwrap immediately after a Seek yields the source at the reported
// position, and that buffered bytes are never served across a physical
// reposition.
//
// In the edge case where offset minus the buffered remainder underflows an
// int64, two seeks are performed instead of one. If the second one fails,
// the source is left at the position a Seek of Current(0) would have
// produced, so the failure leaves a well-defined state.
//
// Sources that do not implement io.Seeker make Seek return ErrNotSeeker.
func (b *BufReader) Seek(offset int64, whence int) (int64, error) {
	s, ok := b.src.(io.Seeker)
	if !ok {
		return 0, ErrNotSeeker
	}

	remainder := int64(b.cap - b.pos)

	// Buffered bytes cannot be trusted once a physical seek has been
	// attempted; a pending deferred error dies with them.
	b.pos = b.cap
	b.err = nil

	if whence != io.SeekCurrent {
		// Start- and end-relative targets do not care about the buffer.
		return s.Seek(offset, whence)
	}

	if offset >= math.MinInt64+remainder {
		return s.Seek(offset-remainder, io.SeekCurrent)
	}

	// offset - remainder underflows: rewind by the remainder first, then
	// seek by the requested offset. Failing the second seek leaves the
	// source at the reader's pre-seek logical position.
	if _, err := s.Seek(-remainder, io.SeekCurrent); err != nil {
		return 0, err
	}
	return s.Seek(offset, io.SeekCurrent)
}
