package wikigraph

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Separator separates the fields of an artifact line.
const Separator = "\t"

// An AdjacencyRecord is a page and the pages it links to, in the
// order the links appear.
type AdjacencyRecord struct {
	Title string
	Links []string
}

// A RedirectRecord is a redirect page and where it points.
type RedirectRecord struct {
	Title  string
	Target string
}

// Link bodies may span lines, which would break the line format.
var fieldCleaner = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

func cleanField(s string) string {
	if strings.ContainsAny(s, "\t\n\r") {
		return fieldCleaner.Replace(s)
	}
	return s
}

type artifactWriter struct {
	f *os.File
	w *bufio.Writer
	n int64
}

func createArtifact(path string, bufSize int) (*artifactWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating artifact")
	}
	return &artifactWriter{f: f, w: bufio.NewWriterSize(f, bufSize)}, nil
}

// Count is the number of records written so far.
func (a *artifactWriter) Count() int64 { return a.n }

// Close flushes and closes the file.
func (a *artifactWriter) Close() error {
	err := a.w.Flush()
	if cerr := a.f.Close(); err == nil {
		err = cerr
	}
	return errors.Wrapf(err, "closing %v", a.f.Name())
}

// An AdjacencyWriter writes the adjacency file, one line per page:
//
//	TITLE<tab>TARGET1<tab>TARGET2...
type AdjacencyWriter struct {
	*artifactWriter
}

// CreateAdjacency creates (or truncates) an adjacency file.
func CreateAdjacency(path string, bufSize int) (*AdjacencyWriter, error) {
	a, err := createArtifact(path, bufSize)
	if err != nil {
		return nil, err
	}
	return &AdjacencyWriter{a}, nil
}

// Write appends one record.
func (aw *AdjacencyWriter) Write(rec AdjacencyRecord) error {
	aw.w.WriteString(cleanField(rec.Title))
	for _, l := range rec.Links {
		aw.w.WriteString(Separator)
		aw.w.WriteString(cleanField(l))
	}
	if err := aw.w.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "writing adjacency")
	}
	aw.n++
	return nil
}

// A RedirectWriter writes the redirect file, one line per redirect:
//
//	TITLE<tab>TARGET
type RedirectWriter struct {
	*artifactWriter
}

// CreateRedirects creates (or truncates) a redirect file.
func CreateRedirects(path string, bufSize int) (*RedirectWriter, error) {
	a, err := createArtifact(path, bufSize)
	if err != nil {
		return nil, err
	}
	return &RedirectWriter{a}, nil
}

// Write appends one record.
func (rw *RedirectWriter) Write(rec RedirectRecord) error {
	rw.w.WriteString(cleanField(rec.Title))
	rw.w.WriteString(Separator)
	rw.w.WriteString(cleanField(rec.Target))
	if err := rw.w.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "writing redirect")
	}
	rw.n++
	return nil
}

// DrainAdjacency writes every record from ch to a new adjacency file
// at path until ch is closed.  It must be the only writer of path.
func DrainAdjacency(path string, bufSize int, ch <-chan AdjacencyRecord) (int64, error) {
	aw, err := CreateAdjacency(path, bufSize)
	if err != nil {
		return 0, err
	}
	for rec := range ch {
		if err := aw.Write(rec); err != nil {
			aw.Close()
			return aw.Count(), err
		}
	}
	return aw.Count(), aw.Close()
}

// DrainRedirects writes every record from ch to a new redirect file
// at path until ch is closed.  It must be the only writer of path.
func DrainRedirects(path string, bufSize int, ch <-chan RedirectRecord) (int64, error) {
	rw, err := CreateRedirects(path, bufSize)
	if err != nil {
		return 0, err
	}
	for rec := range ch {
		if err := rw.Write(rec); err != nil {
			rw.Close()
			return rw.Count(), err
		}
	}
	return rw.Count(), rw.Close()
}
