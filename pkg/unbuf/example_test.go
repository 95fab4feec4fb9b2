package unbuf_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/AlexanderSchuetz97/unowned-buf/pkg/unbuf"
)

func ExampleReader() {
	endpoint := strings.NewReader("status: ok\nbytes: 42\n")
	rd := unbuf.NewReaderSize(64)

	for {
		line, err := rd.ReadString(endpoint, '\n')
		if err != nil {
			break
		}
		fmt.Print(line)
	}
	// Output:
	// status: ok
	// bytes: 42
}

func ExampleWriter() {
	var endpoint bytes.Buffer
	wt := unbuf.NewWriterSize(64)

	for _, word := range []string{"hello", " ", "unowned", " ", "buffers"} {
		if _, err := wt.Write(&endpoint, []byte(word)); err != nil {
			panic(err)
		}
	}
	fmt.Println(endpoint.Len()) // nothing delivered before the flush

	if err := wt.Flush(&endpoint); err != nil {
		panic(err)
	}
	fmt.Println(endpoint.String())
	// Output:
	// 0
	// hello unowned buffers
}
