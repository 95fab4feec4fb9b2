package unbuf

import (
	"bufio"
	"io"
	"testing"

	"github.com/CodisLabs/codis/pkg/utils/bufio2"
)

// zeroReader never ends and always fills p.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

const benchBufferSize = 1024 * 16

func BenchmarkReaderRead(b *testing.B) {
	var rd = NewReaderSize(benchBufferSize)
	var p = make([]byte, 512)
	var src zeroReader
	b.SetBytes(int64(len(p)))
	for i := 0; i < b.N; i++ {
		if _, err := rd.Read(src, p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBufioRead(b *testing.B) {
	var rd = bufio.NewReaderSize(zeroReader{}, benchBufferSize)
	var p = make([]byte, 512)
	b.SetBytes(int64(len(p)))
	for i := 0; i < b.N; i++ {
		if _, err := rd.Read(p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBufio2Read(b *testing.B) {
	var rd = bufio2.NewReaderSize(zeroReader{}, benchBufferSize)
	var p = make([]byte, 512)
	b.SetBytes(int64(len(p)))
	for i := 0; i < b.N; i++ {
		if _, err := rd.Read(p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWriterWrite(b *testing.B) {
	var wt = NewWriterSize(benchBufferSize)
	var p = make([]byte, 512)
	b.SetBytes(int64(len(p)))
	for i := 0; i < b.N; i++ {
		if _, err := wt.Write(io.Discard, p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBufioWrite(b *testing.B) {
	var wt = bufio.NewWriterSize(io.Discard, benchBufferSize)
	var p = make([]byte, 512)
	b.SetBytes(int64(len(p)))
	for i := 0; i < b.N; i++ {
		if _, err := wt.Write(p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBufio2Write(b *testing.B) {
	var wt = bufio2.NewWriterSize(io.Discard, benchBufferSize)
	var p = make([]byte, 512)
	b.SetBytes(int64(len(p)))
	for i := 0; i < b.N; i++ {
		if _, err := wt.Write(p); err != nil {
			b.Fatal(err)
		}
	}
}
