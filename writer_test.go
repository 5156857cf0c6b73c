package wikigraph

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanField(t *testing.T) {
	assert.Equal(t, "plain", cleanField("plain"))
	assert.Equal(t, "a b c d", cleanField("a\tb\nc\rd"))
}

func TestAdjacencyRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adj.tsv")
	aw, err := CreateAdjacency(path, 16)
	require.NoError(t, err)
	recs := []AdjacencyRecord{
		{"A", []string{"B", "C", "B"}},
		{"Lonely", nil},
		{"Odd\ttitle", []string{"Multi\nline"}},
	}
	for _, r := range recs {
		require.NoError(t, aw.Write(r))
	}
	assert.EqualValues(t, 3, aw.Count())
	require.NoError(t, aw.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A\tB\tC\tB\nLonely\nOdd title\tMulti line\n", string(b))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	ar := NewAdjacencyReader(f)
	var got []AdjacencyRecord
	for {
		rec, err := ar.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, rec)
	}
	assert.Equal(t, []AdjacencyRecord{
		{"A", []string{"B", "C", "B"}},
		{"Lonely", []string{}},
		{"Odd title", []string{"Multi line"}},
	}, got)
}

func TestRedirectReader(t *testing.T) {
	rr := NewRedirectReader(strings.NewReader("A\tB\nC\tD\tE\nbroken\n"))

	rec, err := rr.Next()
	require.NoError(t, err)
	assert.Equal(t, RedirectRecord{"A", "B"}, rec)

	rec, err = rr.Next()
	require.NoError(t, err)
	assert.Equal(t, RedirectRecord{"C", "D\tE"}, rec)

	_, err = rr.Next()
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, "broken", pe.Text)

	_, err = rr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestDrainRedirects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.tsv")
	ch := make(chan RedirectRecord, 2)
	ch <- RedirectRecord{"A", "B"}
	ch <- RedirectRecord{"C", "D"}
	close(ch)

	n, err := DrainRedirects(path, 0, ch)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Equal(t, []string{line("A", "B"), line("C", "D")}, sortedLines(t, path))
}

func TestDrainAdjacencyBadPath(t *testing.T) {
	ch := make(chan AdjacencyRecord)
	close(ch)
	_, err := DrainAdjacency(filepath.Join(t.TempDir(), "no", "such", "dir"), 0, ch)
	assert.Error(t, err)
}
