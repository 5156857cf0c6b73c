// Load a wikipedia link graph into CouchDB
package main

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-couch"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikigraph"
	log "github.com/sirupsen/logrus"
)

var wg sync.WaitGroup

type Node struct {
	ID    string   `json:"_id"`
	Rev   string   `json:"_rev,omitempty"`
	Title string   `json:"title"`
	Links []string `json:"links"`
}

func escapeTitle(in string) string {
	return strings.Replace(strings.Replace(in, "/", "%2f", -1),
		"+", "%2b", -1)
}

// replace overwrites a node stored by an earlier load.
func replace(db *couch.Database, n *Node) {
	var prev Node
	err := db.Retrieve(n.ID, &prev)
	if err != nil {
		log.Printf("  Error retrieving existing %v: %v", n.ID, err)
		return
	}
	if prev.Rev == "" {
		log.Printf("Got no rev from %v", n.ID)
		return
	}
	_, err = db.EditWith(n, n.ID, prev.Rev)
	if err != nil {
		log.Printf("  Error updating %v: %v", n.ID, err)
	}
}

func doNode(db *couch.Database, rec wikigraph.AdjacencyRecord) {
	defer wg.Done()
	n := Node{ID: escapeTitle(rec.Title), Title: rec.Title, Links: rec.Links}

	_, _, err := db.Insert(&n)
	httpe, isHttpError := err.(*couch.HTTPError)
	switch {
	case err == nil:
		// yay
	case isHttpError && httpe.Status == 409:
		replace(db, &n)
	default:
		log.Printf("Error inserting %v: %v", n.Title, err)
	}
}

func nodeHandler(db couch.Database, ch <-chan wikigraph.AdjacencyRecord) {
	for rec := range ch {
		doNode(&db, rec)
	}
}

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("Usage: %v couchdb-url network.tsv", os.Args[0])
	}
	dburl, file := os.Args[1], os.Args[2]

	db, err := couch.Connect(dburl)
	if err != nil {
		log.Fatalf("Error connecting to couchdb: %v", err)
	}

	ch := make(chan wikigraph.AdjacencyRecord, 1000)

	for i := 0; i < 20; i++ {
		go nodeHandler(db, ch)
	}

	nodes := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(1000)
	err = wikigraph.EachAdjacency(file, func(rec wikigraph.AdjacencyRecord) error {
		wg.Add(1)
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
	wg.Wait()
	close(ch)
	d := time.Since(start)
	log.Printf("Ended with err after %v:  %v after %s nodes (%.2f n/s)",
		d, err, humanize.Comma(nodes), float64(nodes)/d.Seconds())
}
