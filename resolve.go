package wikigraph

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/willf/bloom"
)

// ResolveStats summarizes a redirect resolution.
type ResolveStats struct {
	Read    int64
	Emitted int64
	Cycles  int64
	Rounds  int
	Scans   int
}

// A Resolver closes redirect chains so every redirect points at a
// page that doesn't redirect any further.  Redirects that loop are
// dropped.
//
// Only a batch of redirects is held in memory.  Each round looks up
// one more hop for every redirect in the batch with a scan of the
// unmodified redirect file, trading I/O for memory.
type Resolver struct {
	Config  Config
	Log     logrus.FieldLogger
	Metrics *Metrics
}

type redirectState int

const (
	redirectActive redirectState = iota
	redirectResolved
	redirectCycle
)

// inflight is a redirect being resolved.  path holds every title the
// chain has visited, starting with the redirect's own title.
type inflight struct {
	RedirectRecord
	state redirectState
	path  []string
}

func newInflight(rec RedirectRecord) *inflight {
	return &inflight{RedirectRecord: rec, path: []string{rec.Title, rec.Target}}
}

func (in *inflight) visited(title string) bool {
	for _, p := range in.path {
		if p == title {
			return true
		}
	}
	return false
}

// advance follows one hop.  A missing or unchanged next target means
// the current target is terminal.
func (in *inflight) advance(next string, found bool) {
	switch {
	case !found || next == in.Target:
		in.state = redirectResolved
	case in.visited(next):
		in.state = redirectCycle
		in.path = nil
	default:
		in.path = append(in.path, next)
		in.Target = next
	}
}

func openRedirects(path string) (*os.File, *RedirectReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open redirects")
	}
	return f, NewRedirectReader(f), nil
}

// eachRedirect calls fn with every record of the redirect file.
func eachRedirect(path string, fn func(RedirectRecord)) error {
	f, rr, err := openRedirects(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for {
		rec, err := rr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "reading %v", path)
		}
		fn(rec)
	}
}

// keyFilter builds a bloom filter over all the redirect titles.  It
// takes two passes, one to size the filter and one to fill it, so no
// titles are held in memory.
func keyFilter(path string, fpRate float64) (*bloom.BloomFilter, int64, error) {
	var n int64
	if err := eachRedirect(path, func(RedirectRecord) { n++ }); err != nil {
		return nil, 0, err
	}
	bf := bloom.NewWithEstimates(uint(n+1), fpRate)
	err := eachRedirect(path, func(rec RedirectRecord) { bf.AddString(rec.Title) })
	return bf, n, err
}

// lookup scans the redirect file once and finds where each of the
// wanted titles redirects to.
func lookup(path string, wanted map[string]struct{}) (map[string]string, error) {
	rv := make(map[string]string, len(wanted))
	err := eachRedirect(path, func(rec RedirectRecord) {
		if _, ok := wanted[rec.Title]; !ok {
			return
		}
		if _, seen := rv[rec.Title]; !seen {
			rv[rec.Title] = rec.Target
		}
	})
	return rv, err
}

// Resolve reads the redirect file at inPath and writes the closed
// redirects to outPath.
func (r *Resolver) Resolve(ctx context.Context, inPath, outPath string) (ResolveStats, error) {
	cfg := r.Config.WithDefaults()
	m := metricsOrDiscard(r.Metrics)
	log := r.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	var stats ResolveStats
	start := time.Now()
	if inPath == outPath {
		return stats, errors.Errorf("resolving %v onto itself", inPath)
	}

	keys, total, err := keyFilter(inPath, cfg.BloomFalsePositiveRate)
	if err != nil {
		return stats, err
	}
	log.Infof("Resolving %s redirects in batches of %s",
		humanize.Comma(total), humanize.Comma(int64(cfg.BatchSize)))

	f, input, err := openRedirects(inPath)
	if err != nil {
		return stats, err
	}
	defer f.Close()

	out, err := CreateRedirects(outPath, cfg.WriteBufferSize)
	if err != nil {
		return stats, err
	}

	batch := make([]*inflight, 0, cfg.BatchSize)
	exhausted := false
	for {
		if err := ctx.Err(); err != nil {
			out.Close()
			return stats, err
		}

		for !exhausted && len(batch) < cfg.BatchSize {
			rec, err := input.Next()
			if err == io.EOF {
				exhausted = true
				break
			}
			if err != nil {
				out.Close()
				return stats, errors.Wrapf(err, "reading %v", inPath)
			}
			stats.Read++
			batch = append(batch, newInflight(rec))
		}
		if len(batch) == 0 {
			break
		}

		wanted := map[string]struct{}{}
		for _, in := range batch {
			if keys.TestString(in.Target) {
				wanted[in.Target] = struct{}{}
			}
		}
		hops := map[string]string{}
		if len(wanted) > 0 {
			hops, err = lookup(inPath, wanted)
			if err != nil {
				out.Close()
				return stats, err
			}
			stats.Scans++
			m.ResolverScans.Inc()
		}

		carried := batch[:0]
		for _, in := range batch {
			next, found := hops[in.Target]
			in.advance(next, found)
			switch in.state {
			case redirectActive:
				carried = append(carried, in)
			case redirectResolved:
				if err := out.Write(in.RedirectRecord); err != nil {
					out.Close()
					return stats, err
				}
				stats.Emitted++
			case redirectCycle:
				stats.Cycles++
				m.Cycles.Inc()
				log.WithField("title", in.Title).Info("Dropping redirect cycle")
			}
		}
		// Clear the tail so dropped entries can be collected.
		for i := len(carried); i < len(batch); i++ {
			batch[i] = nil
		}
		batch = carried

		stats.Rounds++
		m.ResolverRounds.Inc()
		log.Debugf("Round %d: %s in flight, %s emitted", stats.Rounds,
			humanize.Comma(int64(len(batch))), humanize.Comma(stats.Emitted))
	}

	m.RecordsWritten.WithLabelValues("resolved_redirects").Add(float64(stats.Emitted))
	log.Infof("Resolved %s redirects, dropped %s in cycles, %d rounds, %d scans, in %v",
		humanize.Comma(stats.Emitted), humanize.Comma(stats.Cycles),
		stats.Rounds, stats.Scans, time.Since(start))
	return stats, out.Close()
}
