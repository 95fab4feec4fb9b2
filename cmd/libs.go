package main

import (
	"bytes"
	"fmt"
	"net"

	"github.com/CodisLabs/codis/pkg/utils/log"
)

var (
	Version = "unknown"
	Compile = "unknown"
)

func openConn(target string) net.Conn {
	c, err := net.Dial("tcp", target)
	if err != nil {
		log.PanicErrorf(err, "cannot connect to %q", target)
	}
	return c
}

// closeWrite half-closes the connection when the transport supports it, so
// the peer observes EOF while its own data can still be relayed back.
func closeWrite(c net.Conn) {
	if cw, ok := c.(interface{ CloseWrite() error }); ok {
		if err := cw.CloseWrite(); err != nil {
			log.WarnErrorf(err, "close-write failed")
		}
	}
}

func formatAlign(align int, format string, args ...interface{}) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, format, args...)
	for b.Len()%align != 0 {
		b.WriteByte(' ')
	}
	return b.String()
}

type Job struct {
	main func()
}

func NewJob(main func()) *Job {
	return &Job{main}
}

func (j *Job) Run() <-chan struct{} {
	var done = make(chan struct{})
	go func() {
		defer close(done)
		j.main()
	}()
	return done
}

func (j *Job) RunAndWait() {
	<-j.Run()
}
