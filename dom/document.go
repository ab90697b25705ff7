// Package dom provides the read-only document tree the extraction engine
// walks.
//
// A Document is parsed once from the HTML rendering of an uploaded file and
// then shared by every section extraction. Element order, element text and
// table grids are computed during Parse, so a Document is never written to
// afterwards and can be read from many goroutines without locking.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/reqdoc/textnorm"
)

// Document is a parsed HTML document with precomputed lookups.
type Document struct {
	root *html.Node
	body *html.Node

	elements []*html.Node
	position map[*html.Node]int
	text     map[*html.Node]string
	norm     map[*html.Node]string

	headings      []*html.Node
	tables        []*html.Node
	grids         map[*html.Node][][]string
	containsTable map[*html.Node]bool
}

// Parse sanitizes and parses HTML from r.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading HTML: %w", err)
	}
	return parse(Sanitize(string(data)))
}

// ParseString sanitizes and parses an HTML string.
func ParseString(s string) (*Document, error) {
	return parse(Sanitize(s))
}

func parse(s string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	d := &Document{
		root:          root,
		position:      make(map[*html.Node]int),
		text:          make(map[*html.Node]string),
		norm:          make(map[*html.Node]string),
		grids:         make(map[*html.Node][][]string),
		containsTable: make(map[*html.Node]bool),
	}

	d.body = findElement(root, "body")
	if d.body == nil {
		d.body = root
	}

	d.index(d.body)
	for _, t := range d.tables {
		d.grids[t] = d.buildGrid(t)
	}
	return d, nil
}

// index records every element under body in document order and caches
// its text. It returns whether n is or contains a table.
func (d *Document) index(n *html.Node) bool {
	hasTable := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}

		d.position[c] = len(d.elements)
		d.elements = append(d.elements, c)

		raw := textnorm.CollapseSpace(textContent(c))
		d.text[c] = raw
		d.norm[c] = textnorm.Normalize(raw)

		if HeadingLevel(c) > 0 {
			d.headings = append(d.headings, c)
		}
		if c.Data == "table" {
			d.tables = append(d.tables, c)
		}

		if d.index(c) || c.Data == "table" {
			d.containsTable[c] = true
			hasTable = true
		}
	}
	return hasTable
}

// Root returns the document root node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the body element, or the root when the input had none.
func (d *Document) Body() *html.Node {
	return d.body
}

// Elements returns every element under body in document order.
func (d *Document) Elements() []*html.Node {
	return d.elements
}

// Headings returns the h1-h6 elements in document order.
func (d *Document) Headings() []*html.Node {
	return d.headings
}

// Tables returns every table, nested ones included, in document order.
func (d *Document) Tables() []*html.Node {
	return d.tables
}

// Position returns the document-order index of n, or -1 if n is not an
// element of this document.
func (d *Document) Position(n *html.Node) int {
	if p, ok := d.position[n]; ok {
		return p
	}
	return -1
}

// Text returns the whitespace-collapsed text content of n.
func (d *Document) Text(n *html.Node) string {
	if t, ok := d.text[n]; ok {
		return t
	}
	return textnorm.CollapseSpace(textContent(n))
}

// Normalized returns the normalized text content of n.
func (d *Document) Normalized(n *html.Node) string {
	if t, ok := d.norm[n]; ok {
		return t
	}
	return textnorm.Normalize(d.Text(n))
}

// ContainsTable reports whether n is a table or has a table descendant.
func (d *Document) ContainsTable(n *html.Node) bool {
	return d.containsTable[n]
}

// Next returns the element following n in document order, skipping n's
// own descendants. It never leaves body and returns nil at the end.
func (d *Document) Next(n *html.Node) *html.Node {
	for cur := n; cur != nil && cur != d.body; cur = cur.Parent {
		for s := cur.NextSibling; s != nil; s = s.NextSibling {
			if s.Type == html.ElementNode {
				return s
			}
		}
	}
	return nil
}

// HTML renders the document back to HTML.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.String(), nil
}

// HeadingLevel returns 1-6 for h1-h6 elements and 0 otherwise.
func HeadingLevel(n *html.Node) int {
	if n == nil || n.Type != html.ElementNode || len(n.Data) != 2 || n.Data[0] != 'h' {
		return 0
	}
	if l := int(n.Data[1] - '0'); l >= 1 && l <= 6 {
		return l
	}
	return 0
}

// IsTable reports whether n is a table element.
func IsTable(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == "table"
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}
