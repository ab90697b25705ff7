package odt

import (
	"golang.org/x/net/html"

	"github.com/tsawler/reqdoc/internal/htmlbuild"
)

// TableParser converts ODT tables to HTML tables.
type TableParser struct {
	blocks *blockWriter
}

func newTableParser(w *blockWriter) *TableParser {
	return &TableParser{blocks: w}
}

// ParseTable converts a table element. Spanning cells get a colspan and
// the cells they cover are dropped; covered cells of a row span become
// empty cells.
func (tp *TableParser) ParseTable(tbl *tableXML) *html.Node {
	table := htmlbuild.Element("table")
	for i := range tbl.Rows {
		table.AppendChild(tp.parseRow(&tbl.Rows[i]))
	}
	return table
}

// parseRow converts a table row.
func (tp *TableParser) parseRow(row *tableRowXML) *html.Node {
	tr := htmlbuild.Element("tr")
	skip := 0
	for i := range row.Cells {
		cell := &row.Cells[i]
		if skip > 0 && cell.Covered {
			skip--
			continue
		}
		skip = 0
		tr.AppendChild(tp.parseCell(cell, row.Header))
		if !cell.Covered {
			skip = cell.ColumnsSpanned - 1
		}
	}
	return tr
}

// parseCell converts a table cell.
func (tp *TableParser) parseCell(cell *tableCellXML, header bool) *html.Node {
	if cell.Covered {
		return htmlbuild.Cell(header, 1)
	}

	td := htmlbuild.Cell(header, cell.ColumnsSpanned)
	elems := cell.Content.Elements
	if len(elems) == 1 && elems[0].Paragraph != nil {
		tp.blocks.drawings += elems[0].Paragraph.Drawings
		htmlbuild.AppendText(td, elems[0].Paragraph.Text)
		return td
	}
	for _, n := range tp.blocks.writeBlocks(elems) {
		td.AppendChild(n)
	}
	return td
}
