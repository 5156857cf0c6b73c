package wikigraph

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const maxLineSize = 64 << 20

func newLineScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineSize)
	return s
}

// An AdjacencyReader reads back an adjacency file.
type AdjacencyReader struct {
	s    *bufio.Scanner
	line int
}

// NewAdjacencyReader gets an AdjacencyReader.
func NewAdjacencyReader(r io.Reader) *AdjacencyReader {
	return &AdjacencyReader{s: newLineScanner(r)}
}

// Next gets the next record, or io.EOF.
func (ar *AdjacencyReader) Next() (AdjacencyRecord, error) {
	if !ar.s.Scan() {
		return AdjacencyRecord{}, scanErr(ar.s)
	}
	ar.line++
	fields := strings.Split(ar.s.Text(), Separator)
	return AdjacencyRecord{Title: fields[0], Links: fields[1:]}, nil
}

// A RedirectReader reads back a redirect file.
type RedirectReader struct {
	s    *bufio.Scanner
	line int
}

// NewRedirectReader gets a RedirectReader.
func NewRedirectReader(r io.Reader) *RedirectReader {
	return &RedirectReader{s: newLineScanner(r)}
}

// Next gets the next record, or io.EOF.  A line without a target is
// a *ParseError.
func (rr *RedirectReader) Next() (RedirectRecord, error) {
	if !rr.s.Scan() {
		return RedirectRecord{}, scanErr(rr.s)
	}
	rr.line++
	text := rr.s.Text()
	parts := strings.SplitN(text, Separator, 2)
	if len(parts) != 2 {
		return RedirectRecord{}, &ParseError{rr.line, text, errMissingField}
	}
	return RedirectRecord{Title: parts[0], Target: parts[1]}, nil
}

func scanErr(s *bufio.Scanner) error {
	if err := s.Err(); err != nil {
		return errors.Wrap(err, "scanning artifact")
	}
	return io.EOF
}
