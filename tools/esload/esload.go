// Load a wikipedia link graph into ElasticSearch
package main

import (
	"flag"
	"sync"
	"time"

	"github.com/dustin/go-elasticsearch"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikigraph"
	log "github.com/sirupsen/logrus"
)

var wg sync.WaitGroup

var (
	esurl        = flag.String("es", "http://localhost:9200/", "ElasticSearch URL")
	index        = flag.String("index", "wikigraph", "Index to load nodes into")
	workers      = flag.Int("workers", 4, "Number of bulk loaders")
	batchSize    = flag.Int("batch", 1000, "Nodes per bulk request")
	redirectFile = flag.Bool("redirects", false, "The file is a redirect file, not a graph")
)

func nodeHandler(ch <-chan wikigraph.AdjacencyRecord) {
	defer wg.Done()
	counter := 0
	es := elasticsearch.ElasticSearch{URL: *esurl}
	bulkLoader := es.Bulk()

	for rec := range ch {
		counter++
		if counter > *batchSize {
			bulkLoader.SendBatch()
			counter = 0
		}
		body := map[string]interface{}{
			"title":     rec.Title,
			"links":     rec.Links,
			"outdegree": len(rec.Links),
		}
		if *redirectFile && len(rec.Links) == 1 {
			body = map[string]interface{}{
				"title":  rec.Title,
				"target": rec.Links[0],
			}
		}
		ui := elasticsearch.UpdateInstruction{
			Id:    rec.Title,
			Index: *index,
			Type:  "node",
			Body:  body,
		}
		bulkLoader.Update(&ui)
	}
	bulkLoader.Quit()
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("Need a network file to load")
	}

	ch := make(chan wikigraph.AdjacencyRecord, 1000)

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go nodeHandler(ch)
	}

	nodes := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(10000)
	err := wikigraph.EachAdjacency(flag.Arg(0), func(rec wikigraph.AdjacencyRecord) error {
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
	log.Printf("Ended with err after %v:  %v after %s nodes",
		time.Since(start), err, humanize.Comma(nodes))
}
