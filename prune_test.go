package wikigraph

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestPruneDangling(t *testing.T) {
	adj := writeTestFile(t, "network.tsv",
		line("A", "B", "R", "Gone", "A")+"\n"+
			line("B")+"\n"+
			line("C", "R2")+"\n")
	red := writeTestFile(t, "redirects.tsv",
		line("R", "B")+"\n"+
			line("R2", "Nowhere")+"\n")
	out := filepath.Join(t.TempDir(), "pruned.tsv")

	stats, err := PruneDangling(adj, red, out, 0)
	if err != nil {
		t.Fatalf("Error pruning: %v", err)
	}
	exp := []string{line("A", "B", "B", "A"), "B", "C"}
	if got := sortedLines(t, out); !reflect.DeepEqual(exp, got) {
		t.Errorf("Expected %v, got %v", exp, got)
	}
	expStats := PruneStats{Nodes: 3, Kept: 3, Dropped: 2, Redirected: 2}
	if stats != expStats {
		t.Errorf("Expected %+v, got %+v", expStats, stats)
	}
}

func TestPruneDanglingMissingRedirects(t *testing.T) {
	adj := writeTestFile(t, "network.tsv", line("A", "B")+"\n")
	_, err := PruneDangling(adj, filepath.Join(t.TempDir(), "nope.tsv"),
		filepath.Join(t.TempDir(), "out.tsv"), 0)
	if err == nil {
		t.Fatalf("Expected an error without redirects")
	}
}

func TestEachAdjacencyStops(t *testing.T) {
	adj := writeTestFile(t, "network.tsv", "A\nB\nC\n")
	stop := errors.New("stop")
	n := 0
	err := EachAdjacency(adj, func(AdjacencyRecord) error {
		n++
		if n == 2 {
			return stop
		}
		return nil
	})
	if err != stop {
		t.Fatalf("Expected the callback's error, got %v", err)
	}
	if n != 2 {
		t.Fatalf("Expected to stop after 2 records, got %v", n)
	}
}
