package odt

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/reqdoc/internal/htmlbuild"
)

// blockWriter turns body elements into HTML nodes.
type blockWriter struct {
	styles   *StyleResolver
	drawings int
}

// writeBlocks converts elements in order.
func (w *blockWriter) writeBlocks(elems []bodyElement) []*html.Node {
	var out []*html.Node
	for _, e := range elems {
		switch {
		case e.Table != nil:
			out = append(out, newTableParser(w).ParseTable(e.Table))
		case e.List != nil:
			if list := w.writeList(e.List, "", 1); list != nil {
				out = append(out, list)
			}
		case e.Paragraph != nil:
			if n := w.writeParagraph(e.Paragraph); n != nil {
				out = append(out, n)
			}
		}
	}
	return out
}

// writeParagraph renders a paragraph or heading, or nil when it holds no
// text.
func (w *blockWriter) writeParagraph(p *paragraphXML) *html.Node {
	w.drawings += p.Drawings
	if strings.TrimSpace(p.Text) == "" {
		return nil
	}
	if level := w.headingLevel(p); level > 0 {
		return htmlbuild.Heading(level, strings.TrimSpace(p.Text))
	}
	return htmlbuild.Paragraph(p.Text)
}

// headingLevel returns the heading level of a paragraph, 0 for body text.
// text:h elements are headings even without an outline level.
func (w *blockWriter) headingLevel(p *paragraphXML) int {
	if p.Heading {
		if level := parseOutlineLevel(p.OutlineLevel); level > 0 {
			return level
		}
	}
	if p.StyleName != "" {
		if resolved := w.styles.Resolve(p.StyleName); resolved.IsHeading {
			return resolved.HeadingLevel
		}
	}
	if p.Heading {
		return 1
	}
	return 0
}

// writeList renders a list. Nested lists without a style of their own
// inherit the enclosing one.
func (w *blockWriter) writeList(l *listXML, inherited string, level int) *html.Node {
	style := l.StyleName
	if style == "" {
		style = inherited
	}

	list := htmlbuild.Element(w.styles.ResolveListType(style, level).Tag())
	items := append(append([]blocksXML(nil), l.Header...), l.Items...)
	for _, item := range items {
		li := htmlbuild.Element("li")
		w.writeItem(li, item.Elements, style, level)
		if li.FirstChild != nil {
			list.AppendChild(li)
		}
	}
	if list.FirstChild == nil {
		return nil
	}
	return list
}

// writeItem fills a list item. A single paragraph becomes the item's text.
func (w *blockWriter) writeItem(li *html.Node, elems []bodyElement, style string, level int) {
	if len(elems) == 1 && elems[0].Paragraph != nil {
		w.drawings += elems[0].Paragraph.Drawings
		if text := elems[0].Paragraph.Text; strings.TrimSpace(text) != "" {
			htmlbuild.AppendText(li, text)
		}
		return
	}
	for _, e := range elems {
		var n *html.Node
		switch {
		case e.List != nil:
			n = w.writeList(e.List, style, level+1)
		case e.Table != nil:
			n = newTableParser(w).ParseTable(e.Table)
		case e.Paragraph != nil:
			n = w.writeParagraph(e.Paragraph)
		}
		if n != nil {
			li.AppendChild(n)
		}
	}
}
