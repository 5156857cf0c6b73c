// Load a wikipedia link graph into CouchBase
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/couchbase/go-couchbase"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikigraph"
	log "github.com/sirupsen/logrus"
)

var numWorkers = flag.Int("numWorkers", 8, "Number of node workers")

var wg sync.WaitGroup

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] network.tsv\n",
		os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

// Node is a page of the graph and its outgoing links.
type Node struct {
	Links     []string `json:"links"`
	OutDegree int      `json:"outdegree"`
}

func nodeHandler(db *couchbase.Bucket, ch <-chan wikigraph.AdjacencyRecord) {
	defer wg.Done()
	for rec := range ch {
		err := db.Set(rec.Title, 0, Node{Links: rec.Links, OutDegree: len(rec.Links)})
		if err != nil {
			log.Printf("Error setting %v: %v", rec.Title, err)
		}
	}
}

func main() {
	couchbaseServer := flag.String("couchbase", "http://localhost:8091/",
		"Couchbase URL")
	couchbaseBucket := flag.String("bucket", "default", "Couchbase bucket")
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
	}

	db, err := couchbase.GetBucket(*couchbaseServer,
		"default", *couchbaseBucket)
	if err != nil {
		log.Fatalf("Error connecting to couchbase: %v", err)
	}

	ch := make(chan wikigraph.AdjacencyRecord, 1000)

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go nodeHandler(db, ch)
	}

	nodes := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(10000)
	err = wikigraph.EachAdjacency(flag.Arg(0), func(rec wikigraph.AdjacencyRecord) error {
		ch <- rec
		nodes++
		if nodes%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Processed %s nodes total (%.2f/s)",
				humanize.Comma(nodes), float64(reportfreq)/d.Seconds())
			prev = now
		}
		return nil
	})
	close(ch)
	wg.Wait()
	if err != nil {
		log.Fatalf("Error reading graph: %v", err)
	}
	log.Printf("Loaded %s nodes in %v", humanize.Comma(nodes), time.Since(start))
}
