package wikigraph

import (
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
)

// Namespace is a namespace declared by the dump.
type Namespace struct {
	Key   int16  `xml:"key,attr"`
	Case  string `xml:"case,attr"`
	Value string `xml:",chardata"`
}

// SiteInfo is the header of a dump.
type SiteInfo struct {
	SiteName   string      `xml:"sitename"`
	Base       string      `xml:"base"`
	Generator  string      `xml:"generator"`
	Case       string      `xml:"case"`
	Namespaces []Namespace `xml:"namespaces>namespace"`
}

// Namespace finds the name of the namespace with the given key.
// The main namespace has an empty name.
func (s SiteInfo) Namespace(key int16) (string, bool) {
	for _, ns := range s.Namespaces {
		if ns.Key == key {
			return ns.Value, true
		}
	}
	return "", false
}

// ReadSiteInfo decodes the siteinfo header of the dump.  It lives in
// the first stream, which ends at the first block start in the index.
func ReadSiteInfo(dumpPath string, end uint64) (SiteInfo, error) {
	var si SiteInfo
	r, err := OpenRange(dumpPath, ByteRange{0, end}, 0)
	if err != nil {
		return si, err
	}
	defer r.Close()

	d := xml.NewDecoder(r)
	for {
		t, err := d.Token()
		if err == io.EOF {
			return si, errors.New("no siteinfo in dump header")
		}
		if err != nil {
			return si, errors.Wrap(err, "reading dump header")
		}
		if se, ok := t.(xml.StartElement); ok && se.Name.Local == "siteinfo" {
			err = d.DecodeElement(&si, &se)
			return si, errors.Wrap(err, "decoding siteinfo")
		}
	}
}
