package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikigraph"
)

type networkCommand struct {
	Redirects string `long:"redirects" default:"redirects.tsv" description:"Where to write the raw redirects"`
	Resolved  string `long:"resolved" default:"redirects.resolved.tsv" description:"Where to write the closed redirects"`
	Pruned    string `long:"pruned" description:"Also write the graph without dangling links here"`
	Args      struct {
		Dump  string `positional-arg-name:"DUMP" description:"pages-articles-multistream.xml.bz2"`
		Index string `positional-arg-name:"INDEX" description:"pages-articles-multistream-index.txt.bz2"`
		Out   string `positional-arg-name:"OUT" description:"Adjacency file to write"`
	} `positional-args:"yes" required:"yes"`
}

func (c *networkCommand) Execute([]string) error {
	m := setup()
	cfg, err := config()
	if err != nil {
		return err
	}
	b := wikigraph.Builder{Config: cfg, Log: log, Metrics: m}
	stats, err := b.BuildNetwork(context.Background(), c.Args.Dump, c.Args.Index,
		wikigraph.NetworkPaths{
			Adjacency:         c.Args.Out,
			Redirects:         c.Redirects,
			ResolvedRedirects: c.Resolved,
			Pruned:            c.Pruned,
		})
	if err != nil {
		return err
	}
	log.Infof("Wrote %s pages and %s resolved redirects from %d ranges",
		humanize.Comma(stats.Pages), humanize.Comma(stats.Resolve.Emitted), stats.Ranges)
	return nil
}

type closeCommand struct {
	Args struct {
		Redirects string `positional-arg-name:"REDIRECTS"`
		Out       string `positional-arg-name:"OUT"`
	} `positional-args:"yes" required:"yes"`
}

func (c *closeCommand) Execute([]string) error {
	m := setup()
	cfg, err := config()
	if err != nil {
		return err
	}
	r := wikigraph.Resolver{Config: cfg, Log: log, Metrics: m}
	_, err = r.Resolve(context.Background(), c.Args.Redirects, c.Args.Out)
	return err
}

type pruneCommand struct {
	Args struct {
		Network   string `positional-arg-name:"NETWORK"`
		Redirects string `positional-arg-name:"RESOLVED-REDIRECTS"`
		Out       string `positional-arg-name:"OUT"`
	} `positional-args:"yes" required:"yes"`
}

func (c *pruneCommand) Execute([]string) error {
	setup()
	cfg, err := config()
	if err != nil {
		return err
	}
	stats, err := wikigraph.PruneDangling(c.Args.Network, c.Args.Redirects, c.Args.Out, cfg.WriteBufferSize)
	if err != nil {
		return err
	}
	log.Infof("Kept %s links of %s nodes, dropped %s, followed %s redirects",
		humanize.Comma(stats.Kept), humanize.Comma(stats.Nodes),
		humanize.Comma(stats.Dropped), humanize.Comma(stats.Redirected))
	return nil
}

type analyzeCommand struct {
	Args struct {
		Network string `positional-arg-name:"NETWORK"`
		Stats   string `positional-arg-name:"STATS"`
	} `positional-args:"yes" required:"yes"`
}

func (c *analyzeCommand) Execute([]string) error {
	setup()
	s, err := wikigraph.Analyze(c.Args.Network, c.Args.Stats)
	if err != nil {
		return err
	}
	log.Infof("%s nodes, %s edges, max out-degree %d, max in-degree %d",
		humanize.Comma(int64(s.NumberOfNodes)), humanize.Comma(int64(s.NumberOfEdges)),
		s.MaxOutDegree, s.MaxInDegree)
	return nil
}

type findCommand struct {
	Args struct {
		Index string `positional-arg-name:"INDEX"`
		Title string `positional-arg-name:"TITLE"`
	} `positional-args:"yes" required:"yes"`
}

func (c *findCommand) Execute([]string) error {
	setup()
	entries, err := wikigraph.FindEntries(c.Args.Index, c.Args.Title)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Println(e.String())
	}
	return nil
}

type pageArgs struct {
	Dump  string `positional-arg-name:"DUMP"`
	Index string `positional-arg-name:"INDEX"`
	Title string `positional-arg-name:"TITLE"`
}

type wikitextCommand struct {
	Args pageArgs `positional-args:"yes" required:"yes"`
}

func (c *wikitextCommand) Execute([]string) error {
	setup()
	text, ok, err := wikigraph.PageText(c.Args.Dump, c.Args.Index, c.Args.Title)
	if err == wikigraph.ErrNoSuchPage {
		fmt.Printf("No article with title %s found!\n", c.Args.Title)
		return nil
	}
	if err != nil {
		return err
	}
	if !ok {
		text = "No wikitext!"
	}
	fmt.Println(text)
	return nil
}

type resolveCommand struct {
	Args pageArgs `positional-args:"yes" required:"yes"`
}

func (c *resolveCommand) Execute([]string) error {
	setup()
	targets, err := wikigraph.RedirectTargets(c.Args.Dump, c.Args.Index, c.Args.Title)
	if err != nil {
		return err
	}
	for _, t := range targets {
		fmt.Println(t)
	}
	return nil
}

type siteinfoCommand struct {
	Args struct {
		Dump  string `positional-arg-name:"DUMP"`
		Index string `positional-arg-name:"INDEX"`
	} `positional-args:"yes" required:"yes"`
}

func (c *siteinfoCommand) Execute([]string) error {
	setup()
	starts, err := wikigraph.ReadBlockStarts(c.Args.Index)
	if err != nil {
		return err
	}
	if len(starts) == 0 || starts[0] == 0 {
		return fmt.Errorf("%v has no header stream", c.Args.Dump)
	}
	si, err := wikigraph.ReadSiteInfo(c.Args.Dump, starts[0])
	if err != nil {
		return err
	}
	fmt.Printf("%v (%v)\n", si.SiteName, si.Base)
	for _, ns := range si.Namespaces {
		fmt.Printf("%6d\t%v\t%v\n", ns.Key, ns.Case, ns.Value)
	}
	return nil
}

func addCommands() {
	commands := []struct {
		name, short, long string
		data              interface{}
	}{
		{"network", "Build the link graph",
			"Extract the link graph and redirects from a multistream dump, then close the redirects.",
			&networkCommand{}},
		{"close", "Close redirect chains",
			"Resolve a redirect file so every redirect points at a page that doesn't redirect.",
			&closeCommand{}},
		{"prune", "Remove dangling links",
			"Follow redirects in a graph and drop links to pages that aren't in it.",
			&pruneCommand{}},
		{"analyze", "Write graph statistics",
			"Compute node and edge counts and degree distributions as JSON.",
			&analyzeCommand{}},
		{"find", "Look up a title in the index",
			"Print every index entry with the given title.",
			&findCommand{}},
		{"wikitext", "Print the wiki text of a page",
			"Print the raw wiki text of the page with the given title.",
			&wikitextCommand{}},
		{"resolve", "Print redirect targets of a page",
			"Print every redirect target written on the page with the given title.",
			&resolveCommand{}},
		{"siteinfo", "Print the dump header",
			"Print the site name and namespaces declared by the dump.",
			&siteinfoCommand{}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			log.Fatalf("Error adding %v command: %v", c.name, err)
		}
	}
}
