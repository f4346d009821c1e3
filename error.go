package bufread

import "errors"

// ErrNotSeeker is returned by BufReader.Seek when the wrapped source does
// not implement io.Seeker.
var ErrNotSeeker = errors.New("bufread: source does not support seeking")
