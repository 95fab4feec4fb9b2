package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/CodisLabs/codis/pkg/utils/bytesize"
	"github.com/CodisLabs/codis/pkg/utils/log"

	docopt "github.com/docopt/docopt-go"
)

const (
	ReaderBufferSize = 1024 * 128
	WriterBufferSize = 1024 * 128
)

type Flags struct {
	Target string

	ReaderBufferSize int64
	WriterBufferSize int64
}

func parseFlags(usage string) *Flags {
	return parseFlagsFromArgs(usage, os.Args[1:])
}

func parseFlagsFromArgs(usage string, args []string) *Flags {
	d, err := docopt.Parse(usage, args, true, "", false)
	if err != nil {
		log.PanicErrorf(err, "parse arguments failed")
	}
	switch {
	case d["--version"].(bool):
		fmt.Println("version:", Version)
		fmt.Println("compile:", Compile)
		os.Exit(0)
	}

	if s, ok := d["--ncpu"].(string); ok && s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			log.PanicErrorf(err, "parse --ncpu=%q failed", s)
		}
		if n <= 0 || n > 1024 {
			log.Panicf("parse --ncpu=%q failed, invalid", s)
		}
		runtime.GOMAXPROCS(n)
	} else {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}

	var flags Flags
	for _, key := range []string{"TARGET", "--target"} {
		if s, ok := d[key].(string); ok && s != "" {
			flags.Target = s
		}
	}

	flags.ReaderBufferSize = ReaderBufferSize
	if s, ok := d["--rbuf"].(string); ok && s != "" {
		n, err := bytesize.Parse(s)
		if err != nil {
			log.PanicErrorf(err, "parse --rbuf=%q failed", s)
		}
		if n <= 0 {
			log.Panicf("parse --rbuf=%q failed, invalid", s)
		}
		flags.ReaderBufferSize = n
	}

	flags.WriterBufferSize = WriterBufferSize
	if s, ok := d["--wbuf"].(string); ok && s != "" {
		n, err := bytesize.Parse(s)
		if err != nil {
			log.PanicErrorf(err, "parse --wbuf=%q failed", s)
		}
		if n <= 0 {
			log.Panicf("parse --wbuf=%q failed, invalid", s)
		}
		flags.WriterBufferSize = n
	}
	return &flags
}
