package wikigraph

import (
	"io"

	"github.com/pkg/errors"
)

// A ByteRange is a half open [Start, End) span of the compressed dump.
type ByteRange struct {
	Start uint64
	End   uint64
}

// Len is the number of compressed bytes in the range.
func (b ByteRange) Len() uint64 { return b.End - b.Start }

// BlockStarts collapses consecutive entries sharing a stream offset,
// leaving the start of every bzip2 stream in index order.
func BlockStarts(entries []IndexEntry) []uint64 {
	var rv []uint64
	for i, e := range entries {
		if i > 0 && e.StreamOffset == entries[i-1].StreamOffset {
			continue
		}
		rv = append(rv, e.StreamOffset)
	}
	return rv
}

// IndexSummaryReader reports each stream of an index once, with
// its offset and how many articles it holds.
//
// Every stream, the last one included, comes back with a nil error.
// After that Next returns io.EOF (or the index's read error) on
// every call.
type IndexSummaryReader struct {
	index   *IndexReader
	pending bool
	offset  uint64
	count   int
	err     error
}

// NewIndexSummaryReader gets a new IndexSummaryReader from the given
// stream of index lines.
func NewIndexSummaryReader(r io.Reader) *IndexSummaryReader {
	return &IndexSummaryReader{index: NewIndexReader(r)}
}

// Next gets the next stream offset and the number of articles in
// that stream.  io.EOF is returned once every stream was reported.
func (isr *IndexSummaryReader) Next() (offset uint64, count int, err error) {
	if isr.err != nil {
		return 0, 0, isr.err
	}
	for {
		e, err := isr.index.Next()
		if err != nil {
			isr.err = err
			if isr.pending && err == io.EOF {
				isr.pending = false
				return isr.offset, isr.count, nil
			}
			return 0, 0, err
		}

		if !isr.pending {
			isr.pending = true
			isr.offset, isr.count = e.StreamOffset, 1
			continue
		}
		if e.StreamOffset != isr.offset {
			offset, count = isr.offset, isr.count
			isr.offset, isr.count = e.StreamOffset, 1
			return offset, count, nil
		}
		isr.count++
	}
}

// ReadBlockStarts reads the stream offsets of the index at path
// without keeping the individual entries around.
func ReadBlockStarts(path string) ([]uint64, error) {
	r, err := OpenIndex(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var rv []uint64
	isr := NewIndexSummaryReader(r)
	for {
		offset, _, err := isr.Next()
		if err == io.EOF {
			return rv, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %v", path)
		}
		rv = append(rv, offset)
	}
}

// Partition picks boundaries splitting the dump into at most
// threads ranges.  Every boundary is a stream start, so each range
// can be decoded on its own.  The first boundary is 0 and the last is
// fileSize+1.
func Partition(blockStarts []uint64, fileSize uint64, threads int) []uint64 {
	if threads < 1 {
		threads = 1
	}
	stride := (len(blockStarts) + threads - 1) / threads

	rv := make([]uint64, 0, threads+1)
	rv = append(rv, 0)
	for i := 1; i < threads && stride > 0; i++ {
		idx := i * stride
		if idx >= len(blockStarts) {
			break
		}
		b := blockStarts[idx]
		if b <= rv[len(rv)-1] || b >= fileSize {
			continue
		}
		rv = append(rv, b)
	}
	return append(rv, fileSize+1)
}

// Ranges pairs up consecutive partition boundaries.
func Ranges(boundaries []uint64) []ByteRange {
	var rv []ByteRange
	for i := 0; i+1 < len(boundaries); i++ {
		rv = append(rv, ByteRange{boundaries[i], boundaries[i+1]})
	}
	return rv
}
