package unbuf

import (
	"bytes"
	"io"
)

// Reader stages bytes pulled from a readable endpoint so that repeated
// small reads amortize into fewer endpoint calls. The endpoint is passed to
// every operation and never retained.
//
// The staged region is buf[rpos:wpos]; both cursors reset to zero whenever
// the region drains.
type Reader struct {
	buf  []byte
	rpos int
	wpos int

	// err holds an endpoint error that arrived together with data; it is
	// delivered once the staged region drains, before the endpoint is
	// touched again.
	err error
}

func NewReader() *Reader {
	return NewReaderSize(defaultBufferSize)
}

func NewReaderSize(size int) *Reader {
	if size <= 0 {
		size = defaultBufferSize
	}
	return &Reader{buf: make([]byte, size)}
}

// Size returns the capacity of the internal buffer.
func (b *Reader) Size() int {
	return len(b.buf)
}

// Buffered returns the number of staged, unconsumed bytes.
func (b *Reader) Buffered() int {
	return b.wpos - b.rpos
}

// Bytes returns the staged region. The slice aliases the internal buffer
// and is invalidated by the next operation on b.
func (b *Reader) Bytes() []byte {
	return b.buf[b.rpos:b.wpos]
}

// takeErr returns the held endpoint error, if any, and clears it.
func (b *Reader) takeErr() error {
	err := b.err
	b.err = nil
	return err
}

// Fill returns the staged region, issuing at most one read against r to
// replenish it when it is empty. End of stream surfaces as io.EOF with an
// empty slice. On any endpoint error the buffer is left empty, so a caller
// retry is safe. A read that returns bytes together with an error keeps the
// bytes and holds the error, which is returned once the staged region
// drains, before the endpoint is read again.
func (b *Reader) Fill(r io.Reader) ([]byte, error) {
	if b.rpos == b.wpos {
		if err := b.takeErr(); err != nil {
			return nil, err
		}
		b.rpos, b.wpos = 0, 0
		n, err := readSome(r, b.buf)
		b.wpos = n
		if n == 0 {
			return nil, err
		}
		b.err = err
	}
	return b.buf[b.rpos:b.wpos], nil
}

// FillMore issues one appending read against r without requiring the
// staged region to be empty. It panics when the buffer has no space left;
// call Compact first to reclaim the consumed prefix.
func (b *Reader) FillMore(r io.Reader) (int, error) {
	if b.wpos == len(b.buf) {
		panic("unbuf: fill on full buffer")
	}
	if err := b.takeErr(); err != nil {
		return 0, err
	}
	n, err := readSome(r, b.buf[b.wpos:])
	b.wpos += n
	if n != 0 {
		b.err = err
		return n, nil
	}
	return 0, err
}

// Consume discards n staged bytes. It panics when n exceeds Buffered(),
// which is a caller bug rather than an I/O condition.
func (b *Reader) Consume(n int) {
	if n < 0 || n > b.wpos-b.rpos {
		panic("unbuf: consume out of range")
	}
	b.rpos += n
	if b.rpos == b.wpos {
		b.rpos, b.wpos = 0, 0
	}
}

// Compact moves the staged region to the front of the buffer, making the
// space held by consumed bytes available to FillMore and Preload again.
func (b *Reader) Compact() {
	if b.rpos == 0 {
		return
	}
	copy(b.buf, b.buf[b.rpos:b.wpos])
	b.wpos -= b.rpos
	b.rpos = 0
}

// Preload appends p to the staged region so a later read picks it up before
// touching the endpoint. It panics when p does not fit.
func (b *Reader) Preload(p []byte) {
	if len(p) > len(b.buf)-b.wpos {
		panic("unbuf: preload exceeds buffer space")
	}
	b.wpos += copy(b.buf[b.wpos:], p)
}

// Read copies bytes into p, staged bytes first. When the buffer is empty a
// request of at least Size() bytes bypasses staging and goes directly to
// the endpoint; smaller requests trigger a single Fill. Exactly one
// endpoint read is issued when the buffer was empty and none otherwise,
// matching the short-read semantics of the endpoint itself.
func (b *Reader) Read(r io.Reader, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.rpos == b.wpos {
		if len(p) >= len(b.buf) {
			if err := b.takeErr(); err != nil {
				return 0, err
			}
			return readSome(r, p)
		}
		if _, err := b.Fill(r); err != nil {
			return 0, err
		}
	}
	n := copy(p, b.buf[b.rpos:b.wpos])
	b.Consume(n)
	return n, nil
}

// TryRead drains staged bytes into p without ever touching the endpoint.
func (b *Reader) TryRead(p []byte) int {
	n := copy(p, b.buf[b.rpos:b.wpos])
	b.Consume(n)
	return n
}

// ReadFull reads exactly len(p) bytes, issuing as many endpoint calls as
// needed. An endpoint that ends early yields io.ErrUnexpectedEOF.
func (b *Reader) ReadFull(r io.Reader, p []byte) error {
	for len(p) != 0 {
		n, err := b.Read(r, p)
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

// Readable reports whether at least one byte can be read, filling the
// buffer from r at most once when it is empty.
func (b *Reader) Readable(r io.Reader) (bool, error) {
	if b.rpos != b.wpos {
		return true, nil
	}
	buf, err := b.Fill(r)
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(buf) != 0, nil
}

// ReadBytes reads until the first occurrence of delim, returning the data
// up to and including it. When the endpoint ends before delim is found the
// data read so far is returned together with io.EOF.
func (b *Reader) ReadBytes(r io.Reader, delim byte) ([]byte, error) {
	var out []byte
	for {
		buf, err := b.Fill(r)
		if i := bytes.IndexByte(buf, delim); i >= 0 {
			out = append(out, buf[:i+1]...)
			b.Consume(i + 1)
			return out, nil
		}
		out = append(out, buf...)
		b.Consume(len(buf))
		if err != nil {
			return out, err
		}
		if len(buf) == 0 {
			return out, io.EOF
		}
	}
}

// ReadBytesLimit reads like ReadBytes but appends at most limit bytes. When
// the limit is reached before delim is found the data is returned with a nil
// error and the excess stays staged for later reads, keeping the allocation
// bounded regardless of how far away the delimiter is. A limit <= 0 returns
// no data and never touches the endpoint.
func (b *Reader) ReadBytesLimit(r io.Reader, delim byte, limit int) ([]byte, error) {
	var out []byte
	for len(out) < limit {
		buf, err := b.Fill(r)
		if len(buf) > limit-len(out) {
			buf = buf[:limit-len(out)]
		}
		if i := bytes.IndexByte(buf, delim); i >= 0 {
			out = append(out, buf[:i+1]...)
			b.Consume(i + 1)
			return out, nil
		}
		out = append(out, buf...)
		b.Consume(len(buf))
		if err != nil {
			return out, err
		}
		if len(buf) == 0 {
			return out, io.EOF
		}
	}
	return out, nil
}

// ReadString reads until the first occurrence of delim, returning a string
// holding the data up to and including it.
func (b *Reader) ReadString(r io.Reader, delim byte) (string, error) {
	out, err := b.ReadBytes(r, delim)
	return string(out), err
}

// ReadAll reads until end of stream, draining the staged region first.
func (b *Reader) ReadAll(r io.Reader) ([]byte, error) {
	var out []byte
	for {
		buf, err := b.Fill(r)
		out = append(out, buf...)
		b.Consume(len(buf))
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		if len(buf) == 0 {
			return out, nil
		}
	}
}
