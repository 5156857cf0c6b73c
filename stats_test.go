package wikigraph

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherStatistics(t *testing.T) {
	s := GatherStatistics(map[string][]string{
		"A": {"B", "C"},
		"B": {"A", "C"},
		"C": {},
		"D": {"C", "X"},
	})
	assert.Equal(t, Statistics{
		NumberOfNodes:         4,
		NumberOfEdges:         6,
		NodesOfMaxOutDegree:   []string{"A", "B", "D"},
		MaxOutDegree:          2,
		NodesOfMaxInDegree:    []string{"C"},
		MaxInDegree:           3,
		OutDegreeDistribution: []int{1, 0, 3},
		// D has no links in, X counts though it isn't a node.
		InDegreeDistribution: []int{1, 3, 0, 1},
	}, s)
}

func TestGatherStatisticsEmpty(t *testing.T) {
	s := GatherStatistics(map[string][]string{})
	assert.Equal(t, 0, s.NumberOfNodes)
	assert.Equal(t, []int{0}, s.OutDegreeDistribution)
	assert.Empty(t, s.NodesOfMaxOutDegree)
}

func TestAnalyze(t *testing.T) {
	network := writeTestFile(t, "network.tsv",
		line("A", "B")+"\n"+line("B", "A")+"\n")
	statsPath := filepath.Join(t.TempDir(), "stats.json")

	s, err := Analyze(network, statsPath)
	require.NoError(t, err)
	assert.Equal(t, 2, s.NumberOfEdges)

	b, err := os.ReadFile(statsPath)
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &fields))
	assert.EqualValues(t, 2, fields["numberOfNodes"])
	assert.EqualValues(t, 1, fields["maxInDegree"])
	assert.Equal(t, []interface{}{"A", "B"}, fields["nodesOfMaxOutDegree"])
}
