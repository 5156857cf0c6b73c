package wikigraph

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A Canonicalizer brings link targets to the title case convention
// of the wiki, where only the first character is case insensitive.
//
// A Canonicalizer is not safe for concurrent use.
type Canonicalizer struct {
	upper cases.Caser
}

// NewCanonicalizer gets a Canonicalizer.
func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{upper: cases.Upper(language.Und)}
}

// Canonicalize uppercases the first character of title and leaves
// the rest alone.  The mapping is the full unicode one, so the first
// character may change its length (ß becomes SS).
//
// There is no canonical form of the empty title.
func (c *Canonicalizer) Canonicalize(title string) (string, bool) {
	if title == "" {
		return "", false
	}
	r, size := utf8.DecodeRuneInString(title)
	switch {
	case r >= 'a' && r <= 'z':
		return string(r-'a'+'A') + title[1:], true
	case r < utf8.RuneSelf, r == utf8.RuneError && size == 1:
		return title, true
	}
	return c.upper.String(title[:size]) + title[size:], true
}
