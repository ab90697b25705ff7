package docx

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/tsawler/reqdoc/internal/htmlbuild"
)

// TableParser converts DOCX tables to HTML tables.
type TableParser struct {
	blocks *blockWriter
}

// NewTableParser creates a new table parser that renders cell content
// with w.
func newTableParser(w *blockWriter) *TableParser {
	return &TableParser{blocks: w}
}

// ParseTable converts a table element. Horizontally merged cells get a
// colspan; cells continuing a vertical merge become empty cells so that
// every row keeps its column positions.
func (tp *TableParser) ParseTable(tbl *tableXML) *html.Node {
	table := htmlbuild.Element("table")
	for _, row := range tbl.Rows {
		table.AppendChild(tp.parseRow(row))
	}
	return table
}

// parseRow converts a table row.
func (tp *TableParser) parseRow(row tableRowXML) *html.Node {
	tr := htmlbuild.Element("tr")
	header := row.Properties.Header.XMLName.Local != "" &&
		row.Properties.Header.Val != "false" && row.Properties.Header.Val != "0"

	for i := range row.Cells {
		tr.AppendChild(tp.parseCell(&row.Cells[i], header))
	}
	return tr
}

// parseCell converts a table cell. A cell holding a single paragraph gets
// the paragraph text directly; richer cells keep their block structure.
func (tp *TableParser) parseCell(cell *tableCellXML, header bool) *html.Node {
	td := htmlbuild.Cell(header, gridSpan(cell.Properties))

	if isMergedContinuation(cell.Properties) {
		return td
	}

	elems := cell.Content.Elements
	if len(elems) == 1 && elems[0].Paragraph != nil {
		tp.blocks.countDrawings(elems[0].Paragraph)
		htmlbuild.AppendText(td, elems[0].Paragraph.Text)
		return td
	}
	for _, n := range tp.blocks.writeBlocks(elems) {
		td.AppendChild(n)
	}
	return td
}

// gridSpan returns the cell's column span, at least 1.
func gridSpan(props cellPropsXML) int {
	if span, err := strconv.Atoi(props.GridSpan.Val); err == nil && span > 0 {
		return span
	}
	return 1
}

// isMergedContinuation reports whether a cell continues a vertical merge
// (a vMerge element without val="restart").
func isMergedContinuation(props cellPropsXML) bool {
	return props.VMerge.XMLName.Local == "vMerge" && props.VMerge.Val != "restart"
}
