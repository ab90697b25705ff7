package docx

import (
	"encoding/xml"
	"strings"
)

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    bodyXML  `xml:"body"`
}

// bodyXML holds the block-level content of the body or of a table cell.
// Paragraphs and tables are kept in document order, which xml.Unmarshal
// into separate slices would lose.
type bodyXML struct {
	Elements []bodyElement
}

// bodyElement represents an element in the document body (paragraph or table).
type bodyElement struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

// UnmarshalXML collects paragraphs and tables in order, looking through
// content controls and other transparent wrappers.
func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
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

// decodeBlock decodes one block-level child element into b.
func (b *bodyXML) decodeBlock(d *xml.Decoder, t xml.StartElement) error {
	switch t.Name.Local {
	case "p":
		var p paragraphXML
		if err := d.DecodeElement(&p, &t); err != nil {
			return err
		}
		b.Elements = append(b.Elements, bodyElement{Paragraph: &p})
	case "tbl":
		var tbl tableXML
		if err := d.DecodeElement(&tbl, &t); err != nil {
			return err
		}
		b.Elements = append(b.Elements, bodyElement{Table: &tbl})
	case "sdt", "sdtContent", "customXml", "ins", "smartTag":
		var inner bodyXML
		if err := d.DecodeElement(&inner, &t); err != nil {
			return err
		}
		b.Elements = append(b.Elements, inner.Elements...)
	default:
		return d.Skip()
	}
	return nil
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	Properties paragraphPropsXML

	// Text is the paragraph's visible text. Tabs and line breaks are kept
	// as "\t" and "\n".
	Text string

	// Drawings counts embedded images and text boxes, which are not converted.
	Drawings int
}

// UnmarshalXML reads paragraph properties and the text of every run,
// including runs inside hyperlinks, insertions and fields. Deleted text,
// field instructions and drawings are skipped.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	inText := false

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if err := d.DecodeElement(&p.Properties, &t); err != nil {
					return err
				}
			case "t":
				inText = true
			case "tab", "ptab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			case "noBreakHyphen":
				sb.WriteByte('-')
			case "sym":
				sb.WriteString(symbolText(t.Attr))
			case "drawing", "pict", "object":
				p.Drawings++
				if err := d.Skip(); err != nil {
					return err
				}
			case "delText", "instrText", "Choice", "rPr", "fldData":
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
				continue
			}
			if t.Name == start.Name {
				p.Text = sb.String()
				return nil
			}
		}
	}
}

// symbolText decodes a <w:sym w:char="F0FC"/> reference. Private-use
// symbol font code points have no text meaning and are dropped.
func symbolText(attrs []xml.Attr) string {
	for _, a := range attrs {
		if a.Name.Local != "char" {
			continue
		}
		var r rune
		for _, c := range a.Value {
			switch {
			case c >= '0' && c <= '9':
				r = r*16 + (c - '0')
			case c >= 'a' && c <= 'f':
				r = r*16 + (c - 'a' + 10)
			case c >= 'A' && c <= 'F':
				r = r*16 + (c - 'A' + 10)
			default:
				return ""
			}
		}
		if r >= 0xE000 && r <= 0xF8FF {
			return ""
		}
		return string(r)
	}
	return ""
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style      styleRefXML       `xml:"pStyle"`
	NumPr      numberingPropsXML `xml:"numPr"`
	OutlineLvl outlineLvlXML     `xml:"outlineLvl"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// numberingPropsXML represents numbering properties for lists.
type numberingPropsXML struct {
	ILvl  valXML `xml:"ilvl"`
	NumID valXML `xml:"numId"`
}

// valXML is any element carrying a single w:val attribute.
type valXML struct {
	Val string `xml:"val,attr"`
}

// outlineLvlXML represents outline level.
type outlineLvlXML struct {
	Val string `xml:"val,attr"`
}

// runPropsXML represents run properties (<w:rPr>) as they appear in styles.
type runPropsXML struct {
	Bold     boolXML `xml:"b"`
	FontSize valXML  `xml:"sz"`
}

// boolXML represents a boolean attribute.
type boolXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	XMLName xml.Name      `xml:"tbl"`
	Rows    []tableRowXML `xml:"tr"`
}

// tableRowXML represents a table row (<w:tr>).
type tableRowXML struct {
	XMLName    xml.Name       `xml:"tr"`
	Properties rowPropsXML    `xml:"trPr"`
	Cells      []tableCellXML `xml:"tc"`
}

// rowPropsXML represents row properties.
type rowPropsXML struct {
	Header boolXML `xml:"tblHeader"` // Is this a header row?
}

// tableCellXML represents a table cell (<w:tc>).
type tableCellXML struct {
	Properties cellPropsXML
	Content    bodyXML
}

// UnmarshalXML reads the cell properties and its block content in order,
// nested tables included.
func (c *tableCellXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tcPr" {
				if err := d.DecodeElement(&c.Properties, &t); err != nil {
					return err
				}
				continue
			}
			if err := c.Content.decodeBlock(d, t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// cellPropsXML represents cell properties.
type cellPropsXML struct {
	GridSpan valXML    `xml:"gridSpan"`
	VMerge   vMergeXML `xml:"vMerge"`
}

// vMergeXML represents vertical merge.
type vMergeXML struct {
	XMLName xml.Name `xml:"vMerge"`
	Val     string   `xml:"val,attr"` // "restart" or empty (continue)
}
