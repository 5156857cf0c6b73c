package wikigraph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Page outcomes counted by Metrics.Pages.
const (
	outcomeLink       = "link"
	outcomeRedirect   = "redirect"
	outcomeSkipped    = "skipped"
	outcomeEmpty      = "no_text"
	outcomeIncomplete = "incomplete"
)

// Metrics are the prometheus metrics of a graph build.
type Metrics struct {
	Pages          *prometheus.CounterVec
	Links          prometheus.Counter
	RecordsWritten *prometheus.CounterVec
	Cycles         prometheus.Counter
	ResolverRounds prometheus.Counter
	ResolverScans  prometheus.Counter
}

// NewMetrics creates the metrics and registers them with r.  With a
// nil r they're created but not registered anywhere.
func NewMetrics(r prometheus.Registerer) *Metrics {
	f := promauto.With(r)
	return &Metrics{
		Pages: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wikigraph_pages_total",
			Help: "Pages read from the dump, by outcome",
		}, []string{"outcome"}),
		Links: f.NewCounter(prometheus.CounterOpts{
			Name: "wikigraph_links_total",
			Help: "Canonical links extracted from content pages",
		}),
		RecordsWritten: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wikigraph_records_written_total",
			Help: "Lines written, by artifact",
		}, []string{"artifact"}),
		Cycles: f.NewCounter(prometheus.CounterOpts{
			Name: "wikigraph_redirect_cycles_total",
			Help: "Redirects dropped because their chain loops",
		}),
		ResolverRounds: f.NewCounter(prometheus.CounterOpts{
			Name: "wikigraph_resolver_rounds_total",
			Help: "Batch rounds run by the redirect resolver",
		}),
		ResolverScans: f.NewCounter(prometheus.CounterOpts{
			Name: "wikigraph_resolver_scans_total",
			Help: "Lookup scans over the redirect file",
		}),
	}
}

func metricsOrDiscard(m *Metrics) *Metrics {
	if m == nil {
		return NewMetrics(nil)
	}
	return m
}
