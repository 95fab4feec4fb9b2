// Package unbuf implements buffered reading and writing over endpoints the
// buffers do not own. Every operation borrows the endpoint for the duration
// of a single call, so the owning context keeps the only reference to the
// underlying stream and may share it between a read-side and a write-side
// buffer without duplicating handles.
//
// Neither Reader nor Writer performs internal locking; access to one
// instance must be serialized by the caller.
package unbuf

import (
	"errors"
	"io"
	"syscall"
)

const defaultBufferSize = 1024 * 16

// ErrStalledWrite is returned by Writer.Flush when the endpoint reports
// zero bytes written while staged bytes remain.
var ErrStalledWrite = errors.New("unbuf: write stalled, endpoint accepted no bytes")

// readSome issues a single read against r, retrying only when the endpoint
// reports an interrupted call with no progress. Any other error is returned
// to the caller untouched.
func readSome(r io.Reader, p []byte) (int, error) {
	for {
		n, err := r.Read(p)
		if n == 0 && err != nil && errors.Is(err, syscall.EINTR) {
			continue
		}
		return n, err
	}
}

// writeSome issues a single write against w, retrying only when the
// endpoint reports an interrupted call with no progress.
func writeSome(w io.Writer, p []byte) (int, error) {
	for {
		n, err := w.Write(p)
		if n == 0 && err != nil && errors.Is(err, syscall.EINTR) {
			continue
		}
		return n, err
	}
}
