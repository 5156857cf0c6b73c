// Sample program that finds the shortest chain of links between two
// pages of a link graph.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikigraph"
	log "github.com/sirupsen/logrus"
)

var maxDepth = flag.Int("depth", 6, "Give up after this many links")

// shortestPath walks the graph breadth first from one title to the
// other and returns the titles on the way, both ends included.
func shortestPath(network map[string][]string, from, to string, depth int) []string {
	if from == to {
		return []string{from}
	}
	parent := map[string]string{from: ""}
	frontier := []string{from}
	for d := 0; d < depth && len(frontier) > 0; d++ {
		var next []string
		for _, n := range frontier {
			for _, l := range network[n] {
				if _, seen := parent[l]; seen {
					continue
				}
				parent[l] = n
				if l == to {
					var path []string
					for at := to; at != ""; at = parent[at] {
						path = append([]string{at}, path...)
					}
					return path
				}
				next = append(next, l)
			}
		}
		log.Debugf("Depth %d: %s pages to visit", d+1, humanize.Comma(int64(len(next))))
		frontier = next
	}
	return nil
}

func main() {
	verbose := flag.Bool("v", false, "Log every level of the walk")
	flag.Parse()
	if flag.NArg() != 3 {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [opts] network.tsv from to\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	start := time.Now()
	network, err := wikigraph.LoadNetwork(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error loading network: %v", err)
	}
	log.Printf("Loaded %s pages in %v", humanize.Comma(int64(len(network))), time.Since(start))

	c := wikigraph.NewCanonicalizer()
	from, _ := c.Canonicalize(flag.Arg(1))
	to, _ := c.Canonicalize(flag.Arg(2))
	if _, ok := network[from]; !ok {
		log.Fatalf("No page %q in the network", from)
	}

	path := shortestPath(network, from, to, *maxDepth)
	if path == nil {
		log.Fatalf("No path from %q to %q within %d links", from, to, *maxDepth)
	}
	fmt.Println(strings.Join(path, " -> "))
}
