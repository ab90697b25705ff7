package docx

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/reqdoc/internal/htmlbuild"
)

// blockWriter turns body elements into HTML nodes.
type blockWriter struct {
	styles    *StyleResolver
	numbering *NumberingResolver
	drawings  int
}

// writeBlocks converts elements in order. Consecutive list paragraphs of
// the same list type are grouped into one ul or ol.
func (w *blockWriter) writeBlocks(elems []bodyElement) []*html.Node {
	var out []*html.Node
	var list *html.Node
	listType := ListTypeUnordered

	for _, e := range elems {
		if e.Table != nil {
			list = nil
			out = append(out, newTableParser(w).ParseTable(e.Table))
			continue
		}

		p := e.Paragraph
		w.countDrawings(p)
		if strings.TrimSpace(p.Text) == "" {
			continue
		}

		if level := w.headingLevel(p); level > 0 {
			list = nil
			out = append(out, htmlbuild.Heading(level, p.Text))
			continue
		}

		if IsListParagraph(p.Properties) {
			t := w.numbering.ResolveType(p.Properties.NumPr.NumID.Val, listLevel(p.Properties))
			if list == nil || t != listType {
				list = htmlbuild.Element(t.Tag())
				listType = t
				out = append(out, list)
			}
			li := htmlbuild.Element("li")
			htmlbuild.AppendText(li, p.Text)
			list.AppendChild(li)
			continue
		}

		list = nil
		out = append(out, htmlbuild.Paragraph(p.Text))
	}
	return out
}

// headingLevel returns the paragraph's heading level from its style, or
// from its own outline level, and 0 for body text.
func (w *blockWriter) headingLevel(p *paragraphXML) int {
	if style := p.Properties.Style.Val; style != "" {
		if resolved := w.styles.Resolve(style); resolved.IsHeading {
			return resolved.HeadingLevel
		}
	}
	if level := parseOutlineLevel(p.Properties.OutlineLvl.Val); level >= 0 {
		return level + 1
	}
	return 0
}

func (w *blockWriter) countDrawings(p *paragraphXML) {
	w.drawings += p.Drawings
}
