package wikigraph

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// ErrNoSuchPage is returned when a title isn't in the dump.
var ErrNoSuchPage = errors.New("no such page")

// PageAt finds the page with the given title in the stream starting
// at offset.
func PageAt(dumpPath string, offset uint64, title string) (*Page, error) {
	st, err := os.Stat(dumpPath)
	if err != nil {
		return nil, errors.Wrap(err, "stat dump")
	}
	r, err := OpenRange(dumpPath, ByteRange{offset, uint64(st.Size()) + 1}, 0)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	pr := NewPageReader(r)
	for {
		p, err := pr.Next()
		switch {
		case err == io.EOF:
			return nil, ErrNoSuchPage
		case errors.Is(err, ErrIncompletePage):
			continue
		case err != nil:
			return nil, err
		case p.Title == title:
			return p, nil
		}
	}
}

// FindPage looks up a title in the index and reads its page.
func FindPage(dumpPath, indexPath, title string) (*Page, error) {
	entries, err := FindEntries(indexPath, title)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		p, err := PageAt(dumpPath, e.StreamOffset, title)
		if err == ErrNoSuchPage {
			continue
		}
		return p, err
	}
	return nil, ErrNoSuchPage
}

// PageText gets the raw wiki text of a page.  ok is false if the
// page has no text.
func PageText(dumpPath, indexPath, title string) (text string, ok bool, err error) {
	p, err := FindPage(dumpPath, indexPath, title)
	if err != nil {
		return "", false, err
	}
	return p.Text, p.HasText, nil
}

// RedirectTargets gets every redirect target written on a page, in
// order.  Only the first one counts for the graph.
func RedirectTargets(dumpPath, indexPath, title string) ([]string, error) {
	p, err := FindPage(dumpPath, indexPath, title)
	if err != nil {
		return nil, err
	}
	var rv []string
	for _, t := range ParseWikiText(p.Text) {
		if t.Kind == RedirectToken {
			rv = append(rv, t.Target)
		}
	}
	return rv, nil
}
