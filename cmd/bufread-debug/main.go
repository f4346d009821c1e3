// Command bufread-debug copies a file or stdin to stdout through a
// BufReader, useful for poking at buffer sizing and drain behavior.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	bufread "github.com/uponusolutions/go-bufread"
)

var (
	size     = flag.Int("size", bufread.DefaultBufferSize, "internal buffer capacity in bytes")
	chunk    = flag.Int("chunk", 4096, "destination chunk size per read")
	peek     = flag.Int("peek", 0, "log up to this many lookahead bytes before copying")
	unbuffer = flag.Bool("unbuffer", false, "drain through the unbuffer adapter")
)

func main() {
	flag.Parse()

	in := io.Reader(os.Stdin)
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	r := bufread.NewSize(in, *size)

	if *peek > 0 {
		buf, err := r.Fill()
		if err != nil && err != io.EOF {
			log.Fatal(err)
		}
		if len(buf) > *peek {
			buf = buf[:*peek]
		}
		log.Printf("peek: %q", buf)
	}

	var src io.Reader = r
	if *unbuffer {
		u := r.Unbuffer()
		log.Printf("unbuffer: %d bytes left to drain", u.Buffered())
		src = u
	}

	dst := make([]byte, *chunk)
	var total, reads int64
	for {
		n, err := src.Read(dst)
		total += int64(n)
		reads++
		if n > 0 {
			if _, werr := os.Stdout.Write(dst[:n]); werr != nil {
				log.Fatal(werr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("copied %d bytes in %d reads", total, reads)
}
