// Build and inspect the article link graph of a wikipedia dump.
package main

import (
	"net/http"
	"os"

	"github.com/dustin/go-wikigraph"
	flags "github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var opts struct {
	Config        string `long:"config" description:"YAML file with build settings"`
	Threads       int    `short:"t" long:"threads" description:"Number of dump ranges decoded in parallel"`
	Verbose       bool   `short:"v" long:"verbose" description:"Log debug messages"`
	MetricsListen string `long:"metrics-listen" description:"Serve prometheus metrics on this address, e.g. :9090"`
}

var parser = flags.NewParser(&opts, flags.Default)

var log = logrus.New()

// config merges the config file with the command line.
func config() (wikigraph.Config, error) {
	cfg := wikigraph.DefaultConfig
	if opts.Config != "" {
		var err error
		cfg, err = wikigraph.LoadConfig(opts.Config)
		if err != nil {
			return cfg, err
		}
	}
	if opts.Threads > 0 {
		cfg.Threads = opts.Threads
	}
	return cfg, nil
}

// setup applies global options and gets the metrics to record to.
func setup() *wikigraph.Metrics {
	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if opts.MetricsListen == "" {
		return wikigraph.NewMetrics(nil)
	}

	reg := prometheus.NewRegistry()
	m := wikigraph.NewMetrics(reg)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(opts.MetricsListen, mux); err != nil {
			log.WithError(err).Error("Metrics server stopped")
		}
	}()
	log.Infof("Serving metrics on %v", opts.MetricsListen)
	return m
}

func main() {
	log.SetOutput(os.Stderr)
	addCommands()

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			os.Exit(1)
		}
	}
}
