// Package locate implements strict-mode section location: finding the
// element that introduces a section and collecting what follows it.
//
// Both steps are deterministic walks over a shared [dom.Document]. The
// locator returns the first match in document order, never the best one;
// the collector walks forward from that match under a fixed element budget.
package locate

import (
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/tsawler/reqdoc/catalog"
	"github.com/tsawler/reqdoc/dom"
	"github.com/tsawler/reqdoc/textnorm"
)

// Config holds header locator configuration.
type Config struct {
	// MaxHeaderLength is the exclusive upper bound, in runes, on the text of
	// a non-heading element accepted as a section header.
	MaxHeaderLength int
}

// DefaultConfig returns default locator configuration.
func DefaultConfig() Config {
	return Config{
		MaxHeaderLength: 150,
	}
}

// Header is a located section header.
type Header struct {
	Node *html.Node

	// Term is the normalized search term that matched.
	Term string

	// Heading reports whether Node is an h1-h6 element.
	Heading bool
}

// Locator finds section headers.
type Locator struct {
	config Config
}

// NewLocator creates a locator with default configuration.
func NewLocator() *Locator {
	return NewLocatorWithConfig(DefaultConfig())
}

// NewLocatorWithConfig creates a locator with custom configuration.
func NewLocatorWithConfig(config Config) *Locator {
	return &Locator{config: config}
}

// Find returns the first heading whose normalized text contains one of the
// section's search terms. When no heading matches, short block-like
// elements that hold no table are tried in document order. Candidates
// containing an exclusion term are skipped in both passes.
func (l *Locator) Find(d *dom.Document, s *catalog.Section) (*Header, bool) {
	for _, n := range d.Headings() {
		if term, ok := l.match(d, n, s); ok {
			return &Header{Node: n, Term: term, Heading: true}, true
		}
	}

	for _, n := range d.Elements() {
		if !dom.IsHeaderLike(n) || d.ContainsTable(n) {
			continue
		}
		if utf8.RuneCountInString(d.Text(n)) >= l.config.MaxHeaderLength {
			continue
		}
		if term, ok := l.match(d, n, s); ok {
			return &Header{Node: n, Term: term}, true
		}
	}
	return nil, false
}

func (l *Locator) match(d *dom.Document, n *html.Node, s *catalog.Section) (string, bool) {
	text := d.Normalized(n)
	if text == "" {
		return "", false
	}
	term, ok := textnorm.MatchAny(text, s.SearchTerms)
	if !ok {
		return "", false
	}
	if _, excluded := textnorm.MatchAny(text, s.ExclusionTerms); excluded {
		return "", false
	}
	return term, true
}
