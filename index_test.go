package wikigraph

import (
	"errors"
	"io"
	"strings"
	"testing"
)

const testData = `499:10:AccessibleComputing
499:12:Anarchism
499:13:AfghanistanHistory
499:14:AfghanistanGeography
499:15:AfghanistanPeople
499:18:AfghanistanCommunications
499:19:AfghanistanTransportations
499:20:AfghanistanMilitary
499:21:AfghanistanTransnationalIssues
499:23:AssistiveTechnology
2147418907:2638569:William Earl Brown
2147418907:2638570:Lebuhraya Persekutuan
2147418907:2638571:St Francis of Paola
2147418907:2638573:Francesco di Paula
2147418907:2638575:Arapahoe Community College
2147418907:2638583:Francesco Borgia
4294967296:2638585:Philadelphia Bulletin
4294967296:2638588:Zrínyi Miklós
4294967296:2638602:Privatize
4294967296:2638604:Wikipedia:Island of Montréal
`

const lastChunk = 4294967296

func TestIndexReader(t *testing.T) {
	ir := NewIndexReader(strings.NewReader(testData))

	e, err := ir.Next()
	if err != nil {
		t.Fatalf("Error parsing first entry: %v", err)
	}
	if e.String() != "499:10:AccessibleComputing" {
		t.Errorf("Error stringing first entry, got %v", e)
	}

	n := 1
	for {
		var tmp IndexEntry
		tmp, err = ir.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Error reading stream:  %v", err)
		}
		e = tmp
		n++
	}
	if n != 20 {
		t.Errorf("Expected 20 entries, got %v", n)
	}
	if e.StreamOffset != lastChunk {
		t.Fatalf("Expected %v, got %v for the last chunk offset",
			uint64(lastChunk), e.StreamOffset)
	}
	if e.PageID != 2638604 {
		t.Errorf("Expected page id 2638604, got %v", e.PageID)
	}
	if e.Title != "Wikipedia:Island of Montréal" {
		t.Errorf("Expected the title to keep its colon, got %q", e.Title)
	}
}

func TestIndexReaderBadLines(t *testing.T) {
	tests := []string{
		"499:10",
		"499",
		"-499:10:Negative",
		"499:x:Bad id",
		"four:10:Bad offset",
		"18446744073709551616:10:Too big",
	}

	for _, test := range tests {
		ir := NewIndexReader(strings.NewReader("499:1:Fine\n" + test + "\n"))
		if _, err := ir.Next(); err != nil {
			t.Fatalf("Error on the good line before %q: %v", test, err)
		}
		_, err := ir.Next()
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Expected a ParseError for %q, got %v", test, err)
		}
		if pe.Line != 2 || pe.Text != test {
			t.Errorf("Expected line 2 %q, got %v %q", test, pe.Line, pe.Text)
		}
	}
}

func TestReadIndex(t *testing.T) {
	entries, err := ReadIndex("testdata/chains-index.txt.bz2")
	if err != nil {
		t.Fatalf("Error reading index: %v", err)
	}
	if len(entries) != 11 {
		t.Fatalf("Expected 11 entries, got %v", len(entries))
	}
	exp := IndexEntry{488, 20, "Cherry"}
	if entries[3] != exp {
		t.Errorf("Expected %v, got %v", exp, entries[3])
	}
}

func TestReadIndexFailsOnBadLine(t *testing.T) {
	path := writeTestFile(t, "index.txt", "10:1:A\n10:B\n20:3:C\n")
	_, err := ReadIndex(path)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected a ParseError, got %v", err)
	}
	if pe.Line != 2 {
		t.Errorf("Expected the error on line 2, got %v", pe.Line)
	}
}

func TestReadIndexMissing(t *testing.T) {
	if _, err := ReadIndex("testdata/nope.txt.bz2"); err == nil {
		t.Fatalf("Expected an error reading a missing index")
	}
}

func TestFindEntries(t *testing.T) {
	entries, err := FindEntries("testdata/chains-index.txt.bz2", "Talk:Apple")
	if err != nil {
		t.Fatalf("Error finding entries: %v", err)
	}
	if len(entries) != 1 || entries[0].StreamOffset != 248 || entries[0].PageID != 12 {
		t.Fatalf("Expected one entry at 248, got %v", entries)
	}

	entries, err = FindEntries("testdata/chains-index.txt.bz2", "talk:Apple")
	if err != nil {
		t.Fatalf("Error finding entries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("Lookups should be exact, got %v", entries)
	}
}
