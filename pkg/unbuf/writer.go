package unbuf

import (
	"io"
)

// Writer stages bytes destined for a writable endpoint so that repeated
// small writes amortize into fewer endpoint calls. The endpoint is passed
// to every operation and never retained; staged bytes reach it only through
// Flush or when a write spills over capacity.
type Writer struct {
	buf  []byte
	wpos int
}

func NewWriter() *Writer {
	return NewWriterSize(defaultBufferSize)
}

func NewWriterSize(size int) *Writer {
	if size <= 0 {
		size = defaultBufferSize
	}
	return &Writer{buf: make([]byte, size)}
}

// Size returns the capacity of the internal buffer.
func (b *Writer) Size() int {
	return len(b.buf)
}

// Buffered returns the number of staged, unflushed bytes.
func (b *Writer) Buffered() int {
	return b.wpos
}

// Available returns how many bytes can still be staged without flushing.
func (b *Writer) Available() int {
	return len(b.buf) - b.wpos
}

// Bytes returns the staged region. The slice aliases the internal buffer
// and is invalidated by the next operation on b.
func (b *Writer) Bytes() []byte {
	return b.buf[:b.wpos]
}

// Write accepts bytes from p. When p fits behind the staged bytes it is
// buffered whole and no endpoint call is made. Otherwise the staged region
// is flushed first; a flush failure aborts the call with nothing of p
// accepted and the unflushed suffix intact. Once the buffer is empty a p of
// at least Size() bytes goes to the endpoint in one direct write, whose
// result is returned as-is; a smaller p is buffered whole.
func (b *Writer) Write(w io.Writer, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.wpos+len(p) <= len(b.buf) {
		b.wpos += copy(b.buf[b.wpos:], p)
		return len(p), nil
	}
	if err := b.Flush(w); err != nil {
		return 0, err
	}
	if len(p) >= len(b.buf) {
		return writeSome(w, p)
	}
	b.wpos = copy(b.buf, p)
	return len(p), nil
}

// TryWrite stages whatever prefix of p still fits and reports its length.
// The endpoint is never touched; a return of 0 means the buffer is full.
func (b *Writer) TryWrite(p []byte) int {
	n := copy(b.buf[b.wpos:], p)
	b.wpos += n
	return n
}

// WriteAll accepts all of p, flushing and writing through as needed. It
// returns nil only when every byte is staged or already delivered.
func (b *Writer) WriteAll(w io.Writer, p []byte) error {
	for len(p) != 0 {
		n, err := b.Write(w, p)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrStalledWrite
		}
		p = p[n:]
	}
	return nil
}

// Flush drains the staged region to the endpoint, accepting short writes
// and retrying interrupted ones without losing progress. An endpoint write
// that makes no progress surfaces ErrStalledWrite instead of looping. On
// error the unflushed suffix is moved to the front of the buffer so that a
// caller retry resumes without re-sending delivered bytes.
func (b *Writer) Flush(w io.Writer) error {
	if b.wpos == 0 {
		return nil
	}
	var done int
	for done < b.wpos {
		n, err := writeSome(w, b.buf[done:b.wpos])
		if n == 0 && err == nil {
			err = ErrStalledWrite
		}
		done += n
		if err != nil {
			if done != 0 {
				copy(b.buf, b.buf[done:b.wpos])
				b.wpos -= done
			}
			return err
		}
	}
	b.wpos = 0
	return nil
}
