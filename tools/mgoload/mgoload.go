package main

import (
	"flag"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikigraph"
	log "github.com/sirupsen/logrus"
	"gopkg.in/mgo.v2"
)

var proc = flag.Int("proc", 8, "How many processes to run.")
var file = flag.String("file", "", "The network file.")
var dburl = flag.String("dburl", "localhost", "The dburl(s). I.e. localhost.")
var verbose = flag.Bool("v", false, "Verbose logging?")
var collection = flag.String("collection", "nodes", "The collection to store graph nodes in.")
var dbname = flag.String("dbname", "wp", "The database name to use.")

var wg sync.WaitGroup

// Titles are unique in the graph, one node per page.
var titleIndex = mgo.Index{
	Key:        []string{"title"},
	Unique:     true,
	DropDups:   true,
	Background: true,
	Sparse:     true,
}

type node struct {
	Title     string   `bson:",omitempty"`
	Links     []string `bson:",omitempty"`
	OutDegree int
}

func nodeHandler(db *mgo.Database, ch <-chan wikigraph.AdjacencyRecord) {
	for rec := range ch {
		makeNode(db, rec)
	}
}

func makeNode(db *mgo.Database, rec wikigraph.AdjacencyRecord) {
	defer wg.Done()
	n := node{Title: rec.Title, Links: rec.Links, OutDegree: len(rec.Links)}
	err := db.C(*collection).Insert(&n)
	if err != nil {
		if mgo.IsDup(err) {
			if *verbose {
				log.Printf("Duplicate Key Error inserting %s", n.Title)
			}
		} else {
			log.Printf("Error inserting %s: %s", n.Title, err)
		}
	}
}

func main() {
	flag.Parse()
	if *file == "" {
		log.Fatal("You must supply a network file.")
	}
	session, err := mgo.Dial(*dburl)
	if err != nil {
		log.Fatalf("Error connecting to %v: %v", *dburl, err)
	}
	defer session.Close()

	db := session.DB(*dbname)
	err = db.C(*collection).EnsureIndex(titleIndex)
	if err != nil {
		log.Fatal("Error creating title index", err)
	}

	ch := make(chan wikigraph.AdjacencyRecord, 1000)
	for i := 0; i < *proc; i++ {
		go nodeHandler(db, ch)
	}

	nodes := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(10000)
	err = wikigraph.EachAdjacency(*file, func(rec wikigraph.AdjacencyRecord) error {
		wg.Add(1)
		ch <- rec
		nodes++
		if nodes%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Processed %s nodes total (%.2f/s)\n",
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
