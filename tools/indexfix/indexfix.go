// Rewrite a multistream index, dropping lines that don't parse.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikigraph"
	log "github.com/sirupsen/logrus"
)

// summarize writes the offset and page count of every stream.
func summarize(r io.Reader, w io.Writer) error {
	isr := wikigraph.NewIndexSummaryReader(r)
	for {
		offset, count, err := isr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%v\t%v\n", offset, count)
	}
}

// rewrite copies every good index line to w and logs the bad ones.
func rewrite(r io.Reader, w io.Writer) error {
	var kept, dropped int64
	ir := wikigraph.NewIndexReader(r)
	for {
		e, err := ir.Next()
		if err == io.EOF {
			break
		}
		var pe *wikigraph.ParseError
		if errors.As(err, &pe) {
			log.Warnf("Dropping %v", pe)
			dropped++
			continue
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(w, e.String())
		kept++
	}
	log.Infof("Kept %s entries, dropped %s",
		humanize.Comma(kept), humanize.Comma(dropped))
	return nil
}

// run writes whatever it got through before an error.
func run(r io.Reader, w io.Writer, summary bool) (err error) {
	bw := bufio.NewWriter(w)
	defer func() {
		if ferr := bw.Flush(); err == nil {
			err = ferr
		}
	}()
	if summary {
		return summarize(r, bw)
	}
	return rewrite(r, bw)
}

func main() {
	summary := flag.Bool("summary", false, "Print stream offsets and page counts instead")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("Usage: %v [-summary] index.txt.bz2 > index.txt", os.Args[0])
	}

	r, err := wikigraph.OpenIndex(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error opening %v: %v", flag.Arg(0), err)
	}
	err = run(r, os.Stdout, *summary)
	r.Close()
	if err != nil {
		log.Fatalf("Error reading stream: %v", err)
	}
}
