package wikigraph

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// NetworkPaths names the files a graph build produces.
type NetworkPaths struct {
	Adjacency string
	Redirects string
	// ResolvedRedirects receives the closed redirect map.  Empty
	// skips resolving.
	ResolvedRedirects string
	// Pruned receives the adjacency with redirects followed and
	// dangling links removed.  Empty skips pruning; it needs
	// ResolvedRedirects.
	Pruned string
}

// NetworkStats summarizes a graph build.
type NetworkStats struct {
	Site      SiteInfo
	Ranges    int
	Pages     int64
	Redirects int64
	Resolve   ResolveStats
	Prune     PruneStats
}

// A Builder builds the link graph of a dump.
type Builder struct {
	Config  Config
	Log     logrus.FieldLogger
	Metrics *Metrics
}

// BuildNetwork extracts the graph from the dump using its index,
// then closes the redirects and prunes the graph if asked to.
func (b *Builder) BuildNetwork(ctx context.Context, dumpPath, indexPath string,
	out NetworkPaths) (NetworkStats, error) {

	cfg := b.Config.WithDefaults()
	log := b.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	m := metricsOrDiscard(b.Metrics)

	var stats NetworkStats
	start := time.Now()

	starts, err := ReadBlockStarts(indexPath)
	if err != nil {
		return stats, err
	}
	st, err := os.Stat(dumpPath)
	if err != nil {
		return stats, errors.Wrap(err, "stat dump")
	}
	if len(starts) > 0 && starts[0] > 0 {
		stats.Site, err = ReadSiteInfo(dumpPath, starts[0])
		if err != nil {
			log.WithError(err).Warn("Could not read the dump header")
		} else {
			log.WithField("base", stats.Site.Base).Infof("Reading %v dump", stats.Site.SiteName)
		}
	}

	ranges := Ranges(Partition(starts, uint64(st.Size()), cfg.Threads))
	stats.Ranges = len(ranges)
	log.WithFields(logrus.Fields{
		"streams": len(starts),
		"ranges":  len(ranges),
	}).Infof("Partitioned %s of dump", humanize.Bytes(uint64(st.Size())))

	if err := b.extract(ctx, cfg, log, m, dumpPath, ranges, out, &stats); err != nil {
		return stats, err
	}
	log.Infof("Extracted %s pages and %s redirects in %v",
		humanize.Comma(stats.Pages), humanize.Comma(stats.Redirects), time.Since(start))

	if out.ResolvedRedirects == "" {
		return stats, nil
	}
	r := Resolver{Config: cfg, Log: log, Metrics: m}
	stats.Resolve, err = r.Resolve(ctx, out.Redirects, out.ResolvedRedirects)
	if err != nil {
		return stats, err
	}

	if out.Pruned == "" {
		return stats, nil
	}
	stats.Prune, err = PruneDangling(out.Adjacency, out.ResolvedRedirects, out.Pruned, cfg.WriteBufferSize)
	if err != nil {
		return stats, err
	}
	log.Infof("Pruned graph: kept %s of %s links",
		humanize.Comma(stats.Prune.Kept), humanize.Comma(stats.Prune.Kept+stats.Prune.Dropped))
	return stats, nil
}

// extract runs one extractor per range and one writer per artifact.
// The first failure cancels everything else.
func (b *Builder) extract(ctx context.Context, cfg Config, log logrus.FieldLogger, m *Metrics,
	dumpPath string, ranges []ByteRange, out NetworkPaths, stats *NetworkStats) error {

	g, ctx := errgroup.WithContext(ctx)
	adj := make(chan AdjacencyRecord, cfg.QueueSize)
	red := make(chan RedirectRecord, cfg.QueueSize)

	var producers sync.WaitGroup
	for _, rng := range ranges {
		e := &Extractor{
			DumpPath: dumpPath,
			Range:    rng,
			Config:   cfg,
			Log:      log,
			Metrics:  m,
		}
		producers.Add(1)
		g.Go(func() error {
			defer producers.Done()
			return e.Run(ctx, adj, red)
		})
	}
	go func() {
		producers.Wait()
		close(adj)
		close(red)
	}()

	g.Go(func() error {
		n, err := DrainAdjacency(out.Adjacency, cfg.WriteBufferSize, adj)
		m.RecordsWritten.WithLabelValues("adjacency").Add(float64(n))
		stats.Pages = n
		return err
	})
	g.Go(func() error {
		n, err := DrainRedirects(out.Redirects, cfg.WriteBufferSize, red)
		m.RecordsWritten.WithLabelValues("redirects").Add(float64(n))
		stats.Redirects = n
		return err
	})

	return g.Wait()
}
