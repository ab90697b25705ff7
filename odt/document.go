package odt

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// maxRepeat caps number-columns-repeated and number-rows-repeated. Office
// suites pad tables with huge runs of empty repeated cells.
const maxRepeat = 64

// documentXML represents the structure of content.xml
type documentXML struct {
	XMLName    xml.Name          `xml:"document-content"`
	AutoStyles *contentStylesXML `xml:"automatic-styles"`
	Body       bodyXML           `xml:"body"`
}

// bodyXML represents the office:body element.
type bodyXML struct {
	Text blocksXML `xml:"text"`
}

// blocksXML holds block elements in document order.
type blocksXML struct {
	Elements []bodyElement
}

// bodyElement represents an element in the document body. Exactly one
// field is set.
type bodyElement struct {
	Paragraph *paragraphXML // text:p or text:h
	List      *listXML
	Table     *tableXML
}

// skippedBlocks are body children that never hold document text.
var skippedBlocks = map[string]bool{
	"table-of-content":    true,
	"alphabetical-index":  true,
	"illustration-index":  true,
	"tracked-changes":     true,
	"sequence-decls":      true,
	"variable-decls":      true,
	"user-field-decls":    true,
	"forms":               true,
	"bibliography":        true,
	"object-index":        true,
	"user-index":          true,
	"table-index":         true,
	"dde-connection-decl": true,
}

// UnmarshalXML decodes block children until the closing element.
func (b *blocksXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := b.decodeBlock(d, t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// decodeBlock decodes one child element. Sections are transparent.
func (b *blocksXML) decodeBlock(d *xml.Decoder, t xml.StartElement) error {
	switch t.Name.Local {
	case "p", "h":
		p := &paragraphXML{}
		if err := d.DecodeElement(p, &t); err != nil {
			return err
		}
		b.Elements = append(b.Elements, bodyElement{Paragraph: p})
	case "list":
		l := &listXML{}
		if err := d.DecodeElement(l, &t); err != nil {
			return err
		}
		b.Elements = append(b.Elements, bodyElement{List: l})
	case "table":
		tbl := &tableXML{}
		if err := d.DecodeElement(tbl, &t); err != nil {
			return err
		}
		b.Elements = append(b.Elements, bodyElement{Table: tbl})
	case "section":
		return b.UnmarshalXML(d, t)
	default:
		return d.Skip()
	}
	return nil
}

// paragraphXML represents a paragraph (<text:p>) or heading (<text:h>).
type paragraphXML struct {
	Heading      bool
	StyleName    string
	OutlineLevel string
	Text         string
	Drawings     int
}

// UnmarshalXML collects the paragraph text from nested spans, links and
// fields. Notes, annotations and frames are left out.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	p.Heading = start.Name.Local == "h"
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "style-name":
			p.StyleName = attr.Value
		case "outline-level":
			p.OutlineLevel = attr.Value
		}
	}

	var sb strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "s":
				sb.WriteString(strings.Repeat(" ", spaceCount(t)))
				if err := d.Skip(); err != nil {
					return err
				}
			case "tab":
				sb.WriteByte('\t')
				if err := d.Skip(); err != nil {
					return err
				}
			case "line-break":
				sb.WriteByte('\n')
				if err := d.Skip(); err != nil {
					return err
				}
			case "frame", "custom-shape", "image":
				p.Drawings++
				if err := d.Skip(); err != nil {
					return err
				}
			case "note", "annotation", "annotation-end", "tracked-changes":
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				depth++
			}
		case xml.EndElement:
			if depth == 0 {
				p.Text = sb.String()
				return nil
			}
			depth--
		case xml.CharData:
			sb.WriteString(collapseWhitespace(string(t)))
		}
	}
}

// spaceCount returns the c attribute of text:s, 1 when absent.
func spaceCount(t xml.StartElement) int {
	for _, attr := range t.Attr {
		if attr.Name.Local == "c" {
			if n, err := strconv.Atoi(attr.Value); err == nil && n > 0 {
				return min(n, maxRepeat)
			}
		}
	}
	return 1
}

// collapseWhitespace applies the ODF rule for character data: runs of
// space, tab, CR and LF become one space.
func collapseWhitespace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inSpace := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\r', '\n':
			if !inSpace {
				sb.WriteByte(' ')
			}
			inSpace = true
		default:
			sb.WriteRune(r)
			inSpace = false
		}
	}
	return sb.String()
}

// listXML represents a list (<text:list>).
type listXML struct {
	StyleName string      `xml:"style-name,attr"`
	Items     []blocksXML `xml:"list-item"`
	Header    []blocksXML `xml:"list-header"`
}

// tableXML represents a table (<table:table>).
type tableXML struct {
	Rows []tableRowXML
}

// UnmarshalXML collects rows, including those inside header-rows and
// row groups.
func (t *tableXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return t.decodeRows(d, false)
}

func (t *tableXML) decodeRows(d *xml.Decoder, header bool) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "table-row":
				row := tableRowXML{Header: header}
				if err := d.DecodeElement(&row, &el); err != nil {
					return err
				}
				for i := 0; i < repeatCount(el, "number-rows-repeated"); i++ {
					t.Rows = append(t.Rows, row)
				}
			case "table-header-rows":
				if err := t.decodeRows(d, true); err != nil {
					return err
				}
			case "table-rows", "table-row-group":
				if err := t.decodeRows(d, header); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// tableRowXML represents a table row (<table:table-row>).
type tableRowXML struct {
	Header bool
	Cells  []tableCellXML
}

// UnmarshalXML decodes cells and covered cells in order.
func (r *tableRowXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			var cell tableCellXML
			switch el.Name.Local {
			case "table-cell":
				if err := d.DecodeElement(&cell, &el); err != nil {
					return err
				}
			case "covered-table-cell":
				cell.Covered = true
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			for i := 0; i < repeatCount(el, "number-columns-repeated"); i++ {
				r.Cells = append(r.Cells, cell)
			}
		case xml.EndElement:
			return nil
		}
	}
}

// tableCellXML represents a table cell (<table:table-cell>) or a covered
// cell hidden by a span.
type tableCellXML struct {
	ColumnsSpanned int
	Covered        bool
	Content        blocksXML
}

// UnmarshalXML reads the span attribute then the cell's blocks.
func (c *tableCellXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	c.ColumnsSpanned = 1
	for _, attr := range start.Attr {
		if attr.Name.Local == "number-columns-spanned" {
			if n, err := strconv.Atoi(attr.Value); err == nil && n > 1 {
				c.ColumnsSpanned = n
			}
		}
	}
	return c.Content.UnmarshalXML(d, start)
}

// repeatCount reads a repetition attribute, at least 1 and at most
// maxRepeat.
func repeatCount(t xml.StartElement, name string) int {
	for _, attr := range t.Attr {
		if attr.Name.Local == name {
			if n, err := strconv.Atoi(attr.Value); err == nil && n > 1 {
				return min(n, maxRepeat)
			}
		}
	}
	return 1
}
