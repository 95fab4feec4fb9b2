// Package duplex wraps a full-duplex endpoint with one unowned buffer per
// direction. The Stream holds the only reference to the endpoint; each
// buffer borrows it for the duration of a single call. Every direction is
// guarded by its own mutex, so one goroutine may read while another writes
// to the same endpoint concurrently.
package duplex

import (
	"io"
	"sync"

	"github.com/CodisLabs/codis/pkg/utils/errors"
	"github.com/CodisLabs/codis/pkg/utils/sync2/atomic2"

	"github.com/AlexanderSchuetz97/unowned-buf/pkg/unbuf"
)

var (
	_ io.Reader = (*Stream)(nil)
	_ io.Writer = (*Stream)(nil)
)

type Stream struct {
	rw io.ReadWriter

	rd struct {
		sync.Mutex
		buf    *unbuf.Reader
		err    error
		nbytes atomic2.Int64
	}
	wt struct {
		sync.Mutex
		buf    *unbuf.Writer
		err    error
		nbytes atomic2.Int64
	}
}

func New(rw io.ReadWriter) *Stream {
	return NewSize(rw, 0, 0)
}

// NewSize creates a Stream with the given buffer capacities; a size of 0
// selects the package default. The Stream does not manage the lifecycle of
// rw, closing the endpoint remains the owner's job.
func NewSize(rw io.ReadWriter, rsize, wsize int) *Stream {
	s := &Stream{rw: rw}
	s.rd.buf = unbuf.NewReaderSize(rsize)
	s.wt.buf = unbuf.NewWriterSize(wsize)
	return s
}

func (s *Stream) Read(p []byte) (int, error) {
	s.rd.Lock()
	defer s.rd.Unlock()
	if s.rd.err != nil {
		return 0, s.rd.err
	}
	n, err := s.rd.buf.Read(s.rw, p)
	s.rd.nbytes.Add(int64(n))
	return n, err
}

// ReadBytes reads until the first occurrence of delim, staged bytes first.
func (s *Stream) ReadBytes(delim byte) ([]byte, error) {
	s.rd.Lock()
	defer s.rd.Unlock()
	if s.rd.err != nil {
		return nil, s.rd.err
	}
	b, err := s.rd.buf.ReadBytes(s.rw, delim)
	s.rd.nbytes.Add(int64(len(b)))
	return b, err
}

func (s *Stream) ReadString(delim byte) (string, error) {
	b, err := s.ReadBytes(delim)
	return string(b), err
}

// ReadFull reads exactly len(p) bytes.
func (s *Stream) ReadFull(p []byte) error {
	s.rd.Lock()
	defer s.rd.Unlock()
	if s.rd.err != nil {
		return s.rd.err
	}
	if err := s.rd.buf.ReadFull(s.rw, p); err != nil {
		return err
	}
	s.rd.nbytes.Add(int64(len(p)))
	return nil
}

// Write accepts all of p, spilling to the endpoint whenever the write-side
// buffer overflows. Delivery of staged bytes is only guaranteed after
// Flush.
func (s *Stream) Write(p []byte) (int, error) {
	s.wt.Lock()
	defer s.wt.Unlock()
	if s.wt.err != nil {
		return 0, s.wt.err
	}
	var nn int
	for nn < len(p) {
		n, err := s.wt.buf.Write(s.rw, p[nn:])
		if n == 0 && err == nil {
			err = unbuf.ErrStalledWrite
		}
		nn += n
		s.wt.nbytes.Add(int64(n))
		if err != nil {
			return nn, err
		}
	}
	return nn, nil
}

// Flush drains the write-side buffer to the endpoint.
func (s *Stream) Flush() error {
	s.wt.Lock()
	defer s.wt.Unlock()
	if s.wt.err != nil {
		return s.wt.err
	}
	return s.wt.buf.Flush(s.rw)
}

// Stats returns the bytes read from and accepted for the endpoint so far.
func (s *Stream) Stats() (rbytes, wbytes int64) {
	return s.rd.nbytes.Int64(), s.wt.nbytes.Int64()
}

// CloseRead latches err on the read direction; nil selects ErrClosedPipe.
// Later reads fail with the latched error.
func (s *Stream) CloseRead(err error) error {
	if err == nil {
		err = errors.Trace(io.ErrClosedPipe)
	}
	s.rd.Lock()
	defer s.rd.Unlock()
	if s.rd.err == nil {
		s.rd.err = err
	}
	return nil
}

// CloseWrite latches err on the write direction; nil selects ErrClosedPipe.
// Staged bytes that were never flushed are dropped.
func (s *Stream) CloseWrite(err error) error {
	if err == nil {
		err = errors.Trace(io.ErrClosedPipe)
	}
	s.wt.Lock()
	defer s.wt.Unlock()
	if s.wt.err == nil {
		s.wt.err = err
	}
	return nil
}

// Close latches both directions. The endpoint itself is left open for its
// owner to close.
func (s *Stream) Close() error {
	s.CloseRead(nil)
	s.CloseWrite(nil)
	return nil
}
