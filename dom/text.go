package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// headerLike is the set of elements the header locator may fall back to.
var headerLike = map[string]bool{
	"p": true, "div": true, "span": true, "td": true, "th": true,
}

// paragraphLike is the set of elements scan mode scores when they are leaves.
var paragraphLike = map[string]bool{
	"p": true, "li": true, "blockquote": true, "td": true, "th": true,
	"div": true, "dd": true, "dt": true, "pre": true,
}

// structural elements end a paragraph-like leaf.
var structural = map[string]bool{
	"p": true, "li": true, "blockquote": true, "td": true, "th": true,
	"div": true, "dd": true, "dt": true, "pre": true,
	"ul": true, "ol": true, "dl": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true,
}

// IsHeaderLike reports whether n is a block-like element (paragraph, div,
// span or table cell) eligible as a fallback section header.
func IsHeaderLike(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && headerLike[n.Data]
}

// ParagraphLeaves returns the paragraph-like elements that hold no other
// structural element, in document order. Headings are never included. A span
// counts only when it is not already inside a paragraph-like element.
func (d *Document) ParagraphLeaves() []*html.Node {
	var out []*html.Node
	for _, n := range d.elements {
		switch {
		case paragraphLike[n.Data]:
			if !hasStructuralDescendant(n) {
				out = append(out, n)
			}
		case n.Data == "span":
			if !hasStructuralDescendant(n) && !insideParagraph(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

func insideParagraph(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && paragraphLike[p.Data] {
			return true
		}
	}
	return false
}

func hasStructuralDescendant(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if structural[c.Data] || hasStructuralDescendant(c) {
			return true
		}
	}
	return false
}

// textContent extracts all text content from a node and its descendants,
// separating block elements with spaces.
func textContent(n *html.Node) string {
	var sb strings.Builder
	textContentRecursive(n, &sb)
	return sb.String()
}

func textContentRecursive(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "br" {
			sb.WriteString("\n")
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContentRecursive(c, sb)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "td", "th", "tr", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre":
			sb.WriteString(" ")
		}
	}
}
