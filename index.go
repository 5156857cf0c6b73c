package wikigraph

import (
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// An IndexEntry is an individual article from the index.
type IndexEntry struct {
	StreamOffset uint64
	PageID       uint64
	Title        string
}

func (i IndexEntry) String() string {
	return fmt.Sprintf("%v:%v:%v", i.StreamOffset, i.PageID, i.Title)
}

// A ParseError reports a line that could not be decoded.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

var errMissingField = errors.New("missing field")

// An IndexReader is a wikipedia multistream index reader.
type IndexReader struct {
	r    *bufio.Scanner
	line int
}

// NewIndexReader gets a wikipedia index reader.
func NewIndexReader(r io.Reader) *IndexReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	return &IndexReader{r: s}
}

// Next gets the next entry from the index stream.
//
// Titles may contain colons, so only the first two separate fields.
func (ir *IndexReader) Next() (IndexEntry, error) {
	if !ir.r.Scan() {
		err := ir.r.Err()
		if err == nil {
			err = io.EOF
		}
		return IndexEntry{}, err
	}
	ir.line++
	text := ir.r.Text()
	parts := strings.SplitN(text, ":", 3)
	if len(parts) != 3 {
		return IndexEntry{}, &ParseError{ir.line, text, errMissingField}
	}
	offset, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return IndexEntry{}, &ParseError{ir.line, text, err}
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return IndexEntry{}, &ParseError{ir.line, text, err}
	}

	return IndexEntry{StreamOffset: offset, PageID: id, Title: parts[2]}, nil
}

type indexFile struct {
	io.Reader
	f *os.File
}

func (i indexFile) Close() error { return i.f.Close() }

// OpenIndex opens an index file, decompressing it if the name ends in
// .bz2.
func OpenIndex(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open index")
	}
	if strings.HasSuffix(path, ".bz2") {
		return indexFile{bzip2.NewReader(bufio.NewReader(f)), f}, nil
	}
	return f, nil
}

// ReadIndex reads every entry of the index at path.
//
// Any malformed line fails the whole read.
func ReadIndex(path string) ([]IndexEntry, error) {
	r, err := OpenIndex(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var rv []IndexEntry
	ir := NewIndexReader(r)
	for {
		e, err := ir.Next()
		if err == io.EOF {
			return rv, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %v", path)
		}
		rv = append(rv, e)
	}
}

// FindEntries finds all the index entries with exactly the given title.
func FindEntries(path, title string) ([]IndexEntry, error) {
	r, err := OpenIndex(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var rv []IndexEntry
	ir := NewIndexReader(r)
	for {
		e, err := ir.Next()
		if err == io.EOF {
			return rv, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %v", path)
		}
		if e.Title == title {
			rv = append(rv, e)
		}
	}
}
