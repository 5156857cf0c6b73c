package wikigraph

import (
	"strings"
	"unicode/utf8"
)

// TokenKind tells links and redirects apart.
type TokenKind int

const (
	// LinkToken is a plain [[target]] or [[target|label]] link.
	LinkToken TokenKind = iota
	// RedirectToken is the link following a #REDIRECT keyword.
	RedirectToken
)

func (k TokenKind) String() string {
	if k == RedirectToken {
		return "Redirect"
	}
	return "Link"
}

// A Token is a link or redirect target found in wiki text.
type Token struct {
	Kind   TokenKind
	Target string
}

// Link makes a LinkToken.
func Link(target string) Token { return Token{LinkToken, target} }

// Redirect makes a RedirectToken.
func Redirect(target string) Token { return Token{RedirectToken, target} }

// Tokens is the ordered token stream of one page.
type Tokens []Token

// IsRedirect is true if there's at least one redirect token.
func (ts Tokens) IsRedirect() bool {
	_, ok := ts.RedirectTarget()
	return ok
}

// RedirectTarget is the target of the first redirect token.  Any
// later redirects are ignored.
func (ts Tokens) RedirectTarget() (string, bool) {
	for _, t := range ts {
		if t.Kind == RedirectToken {
			return t.Target, true
		}
	}
	return "", false
}

// Links gets the link targets in order of appearance.
func (ts Tokens) Links() []string {
	rv := make([]string, 0, len(ts))
	for _, t := range ts {
		if t.Kind == LinkToken {
			rv = append(rv, t.Target)
		}
	}
	return rv
}

const (
	linkOpen      = "[["
	linkClose     = "]]"
	redirectUpper = "#REDIRECT"
	redirectLower = "#redirect"
)

// ParseWikiText finds all the links and redirects in an article body.
//
// This is a bracket scanner, not a markup parser.  It doesn't know
// about templates, comments or nowiki, and for nested links such as
// [[File:x.jpg|[[Inner]]]] only the outer target is found.  That's
// all it takes to build the graph and it's a lot faster.
func ParseWikiText(text string) Tokens {
	var rv Tokens
	i := 0
	for i < len(text) {
		j := strings.IndexAny(text[i:], "[#")
		if j < 0 {
			break
		}
		i += j

		switch {
		// A [[ ending the text starts nothing; a link needs one more byte.
		case strings.HasPrefix(text[i:], linkOpen) && len(text) > i+len(linkOpen):
			target, next := readLink(text, i+len(linkOpen))
			rv = append(rv, Link(target))
			i = next
		case isRedirectAt(text, i):
			k := i + len(redirectUpper)
			for k < len(text) && isSpace(text[k]) {
				k++
			}
			if !strings.HasPrefix(text[k:], linkOpen) || len(text) <= k+len(linkOpen) {
				i += len(redirectUpper)
				continue
			}
			target, next := readLink(text, k+len(linkOpen))
			rv = append(rv, Redirect(target))
			i = next
		default:
			i++
		}
	}
	return rv
}

func isRedirectAt(text string, i int) bool {
	rest := text[i:]
	return (strings.HasPrefix(rest, redirectUpper) || strings.HasPrefix(rest, redirectLower)) &&
		len(rest) > len(redirectUpper)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// readLink reads a link body starting at start (just past the [[).
// It returns the target and where scanning continues.
//
// An unclosed link runs to the end of the text, minus its final
// character, the same as a scan that needs room for a closing ]].
func readLink(text string, start int) (string, int) {
	var body string
	next := len(text)
	if end := strings.Index(text[start:], linkClose); end >= 0 {
		body = text[start : start+end]
		next = start + end + len(linkClose)
	} else {
		_, size := utf8.DecodeLastRuneInString(text[start:])
		body = text[start : len(text)-size]
	}
	if bar := strings.IndexByte(body, '|'); bar >= 0 {
		body = body[:bar]
	}
	return body, next
}
