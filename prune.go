package wikigraph

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// PruneStats counts what PruneDangling did to the links.
type PruneStats struct {
	Nodes      int64
	Kept       int64
	Dropped    int64
	Redirected int64
}

// EachAdjacency calls fn with every record of an adjacency file,
// stopping at the first error.
func EachAdjacency(path string, fn func(AdjacencyRecord) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open adjacency")
	}
	defer f.Close()

	ar := NewAdjacencyReader(f)
	for {
		rec, err := ar.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "reading %v", path)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}

// PruneDangling rewrites the adjacency file so links to redirects
// point at the redirect target, and links to titles that aren't in
// the graph are gone.
//
// This keeps every node title and every resolved redirect in memory.
func PruneDangling(adjacencyPath, redirectPath, outPath string, bufSize int) (PruneStats, error) {
	var stats PruneStats

	nodes := map[string]struct{}{}
	err := EachAdjacency(adjacencyPath, func(rec AdjacencyRecord) error {
		nodes[rec.Title] = struct{}{}
		return nil
	})
	if err != nil {
		return stats, err
	}
	stats.Nodes = int64(len(nodes))

	redirects := map[string]string{}
	err = eachRedirect(redirectPath, func(rec RedirectRecord) {
		redirects[rec.Title] = rec.Target
	})
	if err != nil {
		return stats, err
	}

	aw, err := CreateAdjacency(outPath, bufSize)
	if err != nil {
		return stats, err
	}
	err = EachAdjacency(adjacencyPath, func(rec AdjacencyRecord) error {
		links := rec.Links[:0]
		for _, l := range rec.Links {
			if t, ok := redirects[l]; ok {
				l = t
				stats.Redirected++
			}
			if _, ok := nodes[l]; !ok {
				stats.Dropped++
				continue
			}
			links = append(links, l)
			stats.Kept++
		}
		rec.Links = links
		return aw.Write(rec)
	})
	if err != nil {
		aw.Close()
		return stats, err
	}
	return stats, aw.Close()
}
