package wikigraph

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// ErrIncompletePage is returned for a page without a title or a
// namespace.  It's safe to keep reading after it.
var ErrIncompletePage = errors.New("page is missing title or namespace")

// A wiki page.
type Page struct {
	Title     string
	Namespace int16
	// Text is the wiki text of the page, if HasText.
	Text    string
	HasText bool
}

// A PageReader pulls pages out of a stream of dump xml.
//
// The stream doesn't need to be a whole document.  A range of bzip2
// streams from the middle of a dump starts with a bare <page> and
// ends without closing <mediawiki>, so elements aren't matched up,
// only page, title, ns and text are tracked.
type PageReader struct {
	x *xml.Decoder
}

// NewPageReader gets a PageReader reading xml from r.
func NewPageReader(r io.Reader) *PageReader {
	return &PageReader{x: xml.NewDecoder(r)}
}

type pageField int

const (
	noField pageField = iota
	titleField
	nsField
	textField
)

// Next gets the next page.  It returns io.EOF at the end of the
// stream and ErrIncompletePage for pages that can't be used.
func (pr *PageReader) Next() (*Page, error) {
	var (
		inPage   bool
		field    pageField
		buf      []byte
		page     Page
		hasTitle bool
		hasNS    bool
	)

	for {
		tok, err := pr.x.RawToken()
		if err == io.EOF {
			if inPage {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, errors.Wrap(err, "decoding xml")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "page" {
				inPage, hasTitle, hasNS = true, false, false
				page = Page{}
				continue
			}
			if !inPage {
				continue
			}
			switch t.Name.Local {
			case "title":
				field = titleField
			case "ns":
				field = nsField
			case "text":
				field = textField
			default:
				continue
			}
			buf = buf[:0]
		case xml.CharData:
			if field != noField {
				buf = append(buf, t...)
			}
		case xml.EndElement:
			if !inPage {
				continue
			}
			switch t.Name.Local {
			case "title":
				page.Title, hasTitle = string(buf), true
			case "ns":
				ns, err := strconv.ParseInt(string(buf), 10, 16)
				if err == nil {
					page.Namespace, hasNS = int16(ns), true
				}
			case "text":
				page.Text, page.HasText = string(buf), true
			case "page":
				if !hasTitle || !hasNS || page.Title == "" {
					return nil, ErrIncompletePage
				}
				return &page, nil
			}
			field = noField
		}
	}
}
