package wikigraph

import (
	"bufio"
	"compress/bzip2"
	"context"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type rangeReader struct {
	io.Reader
	f *os.File
}

func (r rangeReader) Close() error { return r.f.Close() }

// OpenRange opens the bzip2 streams of the dump in the given byte
// range and returns the decompressed xml.  rng.Start must be the
// start of a stream; the stdlib decoder carries on through every
// concatenated stream up to rng.End.
func OpenRange(path string, rng ByteRange, bufSize int) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dump")
	}
	if _, err := f.Seek(int64(rng.Start), io.SeekStart); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "seeking to %v", rng.Start)
	}
	if bufSize <= 0 {
		bufSize = DefaultConfig.ReadBufferSize
	}
	limited := io.LimitReader(f, int64(rng.Len()))
	bz := bzip2.NewReader(bufio.NewReaderSize(limited, bufSize))
	return rangeReader{bufio.NewReaderSize(bz, 1<<20), f}, nil
}

// An Extractor turns one range of the dump into graph records.
//
// Each worker gets its own Extractor; nothing in it is shared.
type Extractor struct {
	DumpPath string
	Range    ByteRange
	Config   Config
	Log      logrus.FieldLogger
	Metrics  *Metrics

	canon *Canonicalizer
}

type pageOutcome int

const (
	pageSkipped pageOutcome = iota
	pageNoText
	pageLinks
	pageRedirect
)

// extractPage decides what a page contributes to the graph.
func extractPage(p *Page, canon *Canonicalizer) (AdjacencyRecord, RedirectRecord, pageOutcome) {
	if p.Namespace != 0 {
		return AdjacencyRecord{}, RedirectRecord{}, pageSkipped
	}
	if !p.HasText {
		return AdjacencyRecord{}, RedirectRecord{}, pageNoText
	}

	tokens := ParseWikiText(p.Text)
	if target, ok := tokens.RedirectTarget(); ok {
		target, ok = canon.Canonicalize(target)
		if !ok {
			return AdjacencyRecord{}, RedirectRecord{}, pageSkipped
		}
		return AdjacencyRecord{}, RedirectRecord{p.Title, target}, pageRedirect
	}

	raw := tokens.Links()
	links := make([]string, 0, len(raw))
	for _, l := range raw {
		if c, ok := canon.Canonicalize(l); ok {
			links = append(links, c)
		}
	}
	return AdjacencyRecord{p.Title, links}, RedirectRecord{}, pageLinks
}

// Run reads the whole range, sending a record per content page to
// adj or red.  It stops early if ctx is done.
func (e *Extractor) Run(ctx context.Context, adj chan<- AdjacencyRecord, red chan<- RedirectRecord) error {
	cfg := e.Config.WithDefaults()
	m := metricsOrDiscard(e.Metrics)
	log := e.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithFields(logrus.Fields{"start": e.Range.Start, "end": e.Range.End})
	if e.canon == nil {
		e.canon = NewCanonicalizer()
	}

	r, err := OpenRange(e.DumpPath, e.Range, cfg.ReadBufferSize)
	if err != nil {
		return err
	}
	defer r.Close()

	pr := NewPageReader(r)
	pages := int64(0)
	start := time.Now()
	prev := start
	for {
		p, err := pr.Next()
		if err == io.EOF {
			break
		}
		if errors.Is(err, ErrIncompletePage) {
			m.Pages.WithLabelValues(outcomeIncomplete).Inc()
			log.Debug("Skipping page without title or namespace")
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "range %v-%v", e.Range.Start, e.Range.End)
		}

		a, rd, outcome := extractPage(p, e.canon)
		switch outcome {
		case pageLinks:
			m.Pages.WithLabelValues(outcomeLink).Inc()
			m.Links.Add(float64(len(a.Links)))
			select {
			case adj <- a:
			case <-ctx.Done():
				return ctx.Err()
			}
		case pageRedirect:
			m.Pages.WithLabelValues(outcomeRedirect).Inc()
			select {
			case red <- rd:
			case <-ctx.Done():
				return ctx.Err()
			}
		case pageNoText:
			m.Pages.WithLabelValues(outcomeEmpty).Inc()
		default:
			m.Pages.WithLabelValues(outcomeSkipped).Inc()
		}

		pages++
		if pages%cfg.ReportFrequency == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Infof("Processed %s pages total (%.2f/s)",
				humanize.Comma(pages), float64(cfg.ReportFrequency)/d.Seconds())
			prev = now
		}
	}

	d := time.Since(start)
	log.Infof("Range done after %v: %s pages (%.2f p/s)",
		d, humanize.Comma(pages), float64(pages)/d.Seconds())
	return nil
}
