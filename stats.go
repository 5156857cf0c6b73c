package wikigraph

import (
	"bufio"
	"encoding/json"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// Statistics describe the shape of a link graph.
type Statistics struct {
	NumberOfNodes         int      `json:"numberOfNodes"`
	NumberOfEdges         int      `json:"numberOfEdges"`
	NodesOfMaxOutDegree   []string `json:"nodesOfMaxOutDegree"`
	MaxOutDegree          int      `json:"maxOutDegree"`
	NodesOfMaxInDegree    []string `json:"nodesOfMaxInDegree"`
	MaxInDegree           int      `json:"maxInDegree"`
	OutDegreeDistribution []int    `json:"outDegreeDistribution"`
	InDegreeDistribution  []int    `json:"inDegreeDistribution"`
}

// LoadNetwork reads a whole adjacency file into memory.  A title
// listed twice keeps its last links.
func LoadNetwork(path string) (map[string][]string, error) {
	rv := map[string][]string{}
	err := EachAdjacency(path, func(rec AdjacencyRecord) error {
		rv[rec.Title] = rec.Links
		return nil
	})
	return rv, err
}

func maxDegree(degrees map[string]int) ([]string, int) {
	var nodes []string
	max := 0
	for n, d := range degrees {
		switch {
		case d > max:
			max = d
			nodes = append(nodes[:0], n)
		case d == max:
			nodes = append(nodes, n)
		}
	}
	sort.Strings(nodes)
	return nodes, max
}

func histogram(degrees map[string]int, max int) []int {
	rv := make([]int, max+1)
	for _, d := range degrees {
		rv[d]++
	}
	return rv
}

// GatherStatistics computes the statistics of a graph.  Every edge
// counts toward its target's in-degree, node or not.
func GatherStatistics(network map[string][]string) Statistics {
	out := make(map[string]int, len(network))
	in := map[string]int{}
	edges := 0
	for n, links := range network {
		out[n] = len(links)
		edges += len(links)
		if _, ok := in[n]; !ok {
			in[n] = 0
		}
		for _, l := range links {
			in[l]++
		}
	}

	s := Statistics{NumberOfNodes: len(network), NumberOfEdges: edges}
	s.NodesOfMaxOutDegree, s.MaxOutDegree = maxDegree(out)
	s.NodesOfMaxInDegree, s.MaxInDegree = maxDegree(in)
	s.OutDegreeDistribution = histogram(out, s.MaxOutDegree)
	s.InDegreeDistribution = histogram(in, s.MaxInDegree)
	return s
}

// Analyze writes the statistics of the adjacency file at networkPath
// as JSON to statsPath.
func Analyze(networkPath, statsPath string) (Statistics, error) {
	network, err := LoadNetwork(networkPath)
	if err != nil {
		return Statistics{}, err
	}
	s := GatherStatistics(network)

	f, err := os.Create(statsPath)
	if err != nil {
		return s, errors.Wrap(err, "creating statistics")
	}
	w := bufio.NewWriter(f)
	if err := json.NewEncoder(w).Encode(s); err != nil {
		f.Close()
		return s, errors.Wrap(err, "encoding statistics")
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return s, errors.Wrap(err, "writing statistics")
	}
	return s, errors.Wrap(f.Close(), "closing statistics")
}
