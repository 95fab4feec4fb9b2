package unbuf

import (
	"bytes"
	"io"
	"os"
	"syscall"
)

type countReader struct {
	io.Reader
	calls int
}

func (r *countReader) Read(p []byte) (int, error) {
	r.calls++
	return r.Reader.Read(p)
}

type countWriter struct {
	io.Writer
	calls int
}

func (w *countWriter) Write(p []byte) (int, error) {
	w.calls++
	return w.Writer.Write(p)
}

// chunkWriter accepts at most chunk bytes per call.
type chunkWriter struct {
	sink  bytes.Buffer
	chunk int
	calls int
}

func (w *chunkWriter) Write(p []byte) (int, error) {
	w.calls++
	if len(p) > w.chunk {
		p = p[:w.chunk]
	}
	return w.sink.Write(p)
}

func eintr(op string) error {
	return os.NewSyscallError(op, syscall.EINTR)
}

// interruptReader fails with EINTR a fixed number of times before letting
// reads through.
type interruptReader struct {
	io.Reader
	failures int
}

func (r *interruptReader) Read(p []byte) (int, error) {
	if r.failures != 0 {
		r.failures--
		return 0, eintr("read")
	}
	return r.Reader.Read(p)
}

type interruptWriter struct {
	io.Writer
	failures int
}

func (w *interruptWriter) Write(p []byte) (int, error) {
	if w.failures != 0 {
		w.failures--
		return 0, eintr("write")
	}
	return w.Writer.Write(p)
}

// stalledWriter reports success without accepting anything.
type stalledWriter struct {
	calls int
}

func (w *stalledWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, nil
}

// errorWriter accepts up to limit bytes in total, then fails.
type errorWriter struct {
	sink  bytes.Buffer
	limit int
	err   error
}

func (w *errorWriter) Write(p []byte) (int, error) {
	if w.sink.Len() >= w.limit {
		return 0, w.err
	}
	if n := w.limit - w.sink.Len(); len(p) > n {
		p = p[:n]
	}
	return w.sink.Write(p)
}

type errorReader struct {
	err error
}

func (r *errorReader) Read(p []byte) (int, error) {
	return 0, r.err
}

// dataErrReader delivers its payload together with err in one call, the way
// an endpoint may report a one-shot failure alongside the last data.
type dataErrReader struct {
	data []byte
	err  error
}

func (r *dataErrReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, r.err
}
