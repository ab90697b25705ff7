// Package htmldoc prepares HTML input for section extraction: it decodes
// the page's character set (Word's "Save as HTML" output is often
// windows-1254) and removes navigation and page chrome.
package htmldoc

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// Reader holds a parsed HTML document.
type Reader struct {
	doc      *html.Node
	mode     NavigationExclusionMode
	messages []string
}

// OpenBytes parses an HTML document held in memory. Valid UTF-8 is taken
// as is; anything else goes through charset sniffing.
func OpenBytes(data []byte) (*Reader, error) {
	contentType := ""
	if utf8.Valid(data) {
		contentType = "text/html; charset=utf-8"
	}
	decoded, err := charset.NewReader(bytes.NewReader(data), contentType)
	if err != nil {
		return nil, fmt.Errorf("decoding charset: %w", err)
	}
	doc, err := html.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Reader{doc: doc, mode: NavigationExclusionStandard}, nil
}

// SetNavigationExclusion sets how page chrome is removed by HTML.
func (r *Reader) SetNavigationExclusion(mode NavigationExclusionMode) {
	r.mode = mode
}

// Messages returns the notes gathered by HTML.
func (r *Reader) Messages() []string {
	return r.messages
}

// HTML removes boilerplate and renders the document as UTF-8 HTML.
func (r *Reader) HTML() (string, error) {
	body := findElement(r.doc, atom.Body)
	if body == nil {
		body = r.doc
	}

	if removed := newBoilerplateFilter(r.mode, body).strip(body); removed > 0 {
		r.messages = append(r.messages, fmt.Sprintf("%d navigation or page chrome elements were removed", removed))
	}

	var sb strings.Builder
	if err := html.Render(&sb, r.doc); err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return sb.String(), nil
}

// Convert cleans HTML bytes, removing page chrome according to mode, and
// returns the messages.
func Convert(data []byte, mode NavigationExclusionMode) (string, []string, error) {
	r, err := OpenBytes(data)
	if err != nil {
		return "", nil, err
	}
	r.SetNavigationExclusion(mode)

	out, err := r.HTML()
	if err != nil {
		return "", r.Messages(), err
	}
	return out, r.Messages(), nil
}

// findElement finds the first element with the given atom.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
