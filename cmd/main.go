// Copyright 2024 Alexander Schuetz. All Rights Reserved.
// Licensed under the MIT (MIT-LICENSE.txt) license.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/CodisLabs/codis/pkg/utils/bytesize"
	"github.com/CodisLabs/codis/pkg/utils/log"
	"github.com/CodisLabs/codis/pkg/utils/sync2/atomic2"

	"github.com/AlexanderSchuetz97/unowned-buf/pkg/duplex"
)

func main() {
	const usage = `
Usage:
	unbuf-relay [--ncpu=N] (--target=TARGET|TARGET) [--rbuf=SIZE] [--wbuf=SIZE]
	unbuf-relay  --version

Options:
	-n N, --ncpu=N                    Set runtime.GOMAXPROCS to N.
	-t TARGET, --target=TARGET        The target address (host:port).
	--rbuf=SIZE                       Read-side buffer capacity, default is 128kb.
	--wbuf=SIZE                       Write-side buffer capacity, default is 128kb.

Examples:
	$ unbuf-relay 127.0.0.1:6379
	$ unbuf-relay -t 127.0.0.1:8000 --rbuf=1mb --wbuf=64kb < input > output
`
	var flags = parseFlags(usage)

	log.Infof("relay: target = %q, rbuf = %d, wbuf = %d\n",
		flags.Target, flags.ReaderBufferSize, flags.WriterBufferSize)

	conn := openConn(flags.Target)
	defer conn.Close()

	stream := duplex.NewSize(conn,
		int(flags.ReaderBufferSize), int(flags.WriterBufferSize))
	defer stream.Close()

	var stdinBytes, stdoutBytes atomic2.Int64
	var input = rBuilder(os.Stdin).Count(&stdinBytes).Reader
	var output = wBuilder(os.Stdout).Must().Count(&stdoutBytes).Writer

	NewJob(func() {
		var p = make([]byte, bytesize.KB*8)
		for {
			n, err := input.Read(p)
			if n != 0 {
				if _, err := stream.Write(p[:n]); err != nil {
					log.PanicError(err, "write to target failed")
				}
				if err := stream.Flush(); err != nil {
					log.PanicError(err, "flush to target failed")
				}
			}
			if err == io.EOF {
				closeWrite(conn)
				return
			}
			if err != nil {
				log.PanicError(err, "read from stdin failed")
			}
		}
	}).Run()

	var downlink = NewJob(func() {
		var p = make([]byte, bytesize.KB*8)
		for {
			n, err := stream.Read(p)
			if n != 0 {
				output.Write(p[:n])
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				log.PanicError(err, "read from target failed")
			}
		}
	}).Run()

	log.Infof("relay: (i/o) = (stdin/stdout)")

	NewJob(func() {
		var last struct {
			rbytes, wbytes int64
		}
		for stop := false; !stop; {
			select {
			case <-downlink:
				stop = true
			case <-time.After(time.Second):
			}
			rbytes, wbytes := stream.Stats()

			var b bytes.Buffer
			fmt.Fprintf(&b, "relay: (i,o)=%s",
				formatAlign(4, "(%d,%d)", stdinBytes.Int64(), stdoutBytes.Int64()))
			fmt.Fprintf(&b, "  ~  speed=%s",
				formatAlign(4, "(%s,%s)",
					bytesize.Int64(wbytes-last.wbytes).HumanString(),
					bytesize.Int64(rbytes-last.rbytes).HumanString()))
			last.rbytes, last.wbytes = rbytes, wbytes
			log.Info(b.String())
		}
	}).RunAndWait()

	log.Info("relay: done")
}
