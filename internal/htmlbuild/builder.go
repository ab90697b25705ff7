// Package htmlbuild assembles the HTML documents the office converters emit.
//
// Converters build an html.Node tree instead of concatenating strings, so
// escaping and nesting are handled by golang.org/x/net/html when the tree is
// rendered.
package htmlbuild

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is an HTML document under construction.
type Document struct {
	root *html.Node
	body *html.Node
}

// New creates an empty document with a title.
func New(title string) *Document {
	root := &html.Node{Type: html.DocumentNode}
	htmlEl := Element("html")
	head := Element("head")
	meta := Element("meta", html.Attribute{Key: "charset", Val: "utf-8"})
	head.AppendChild(meta)
	if title != "" {
		t := Element("title")
		t.AppendChild(Text(title))
		head.AppendChild(t)
	}
	body := Element("body")
	htmlEl.AppendChild(head)
	htmlEl.AppendChild(body)
	root.AppendChild(htmlEl)
	return &Document{root: root, body: body}
}

// Body returns the body element.
func (d *Document) Body() *html.Node {
	return d.body
}

// Append adds nodes to the end of the body.
func (d *Document) Append(nodes ...*html.Node) {
	for _, n := range nodes {
		if n != nil {
			d.body.AppendChild(n)
		}
	}
}

// Render serializes the document.
func (d *Document) Render() (string, error) {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n")
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("rendering HTML: %w", err)
		}
	}
	return buf.String(), nil
}

// Element creates an element node.
func Element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// Text creates a text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// AppendText appends s to n, turning newlines into br elements.
func AppendText(n *html.Node, s string) {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if i > 0 {
			n.AppendChild(Element("br"))
		}
		if line != "" {
			n.AppendChild(Text(line))
		}
	}
}

// Heading creates an h1-h6 element. Levels outside 1-6 are clamped.
func Heading(level int, text string) *html.Node {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	h := Element("h" + strconv.Itoa(level))
	AppendText(h, text)
	return h
}

// Paragraph creates a p element holding text.
func Paragraph(text string) *html.Node {
	p := Element("p")
	AppendText(p, text)
	return p
}

// Cell creates a td or th element with the given column span. A span of
// one or less adds no attribute.
func Cell(header bool, colspan int) *html.Node {
	tag := "td"
	if header {
		tag = "th"
	}
	if colspan > 1 {
		return Element(tag, html.Attribute{Key: "colspan", Val: strconv.Itoa(colspan)})
	}
	return Element(tag)
}
