package dom

import (
	"golang.org/x/net/html"
)

// TableRows returns the cell texts of a table's own rows, header row first.
// Rows of nested tables are not included. Cells are physical cells: a cell
// spanning several columns still occupies one index.
func (d *Document) TableRows(t *html.Node) [][]string {
	if g, ok := d.grids[t]; ok {
		return g
	}
	return d.buildGrid(t)
}

func (d *Document) buildGrid(t *html.Node) [][]string {
	var rows [][]string
	for _, tr := range tableRowNodes(t) {
		var row []string
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
				row = append(row, d.Text(c))
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// tableRowNodes returns the tr elements owned by t, looking through
// thead, tbody and tfoot but not into nested tables.
func tableRowNodes(t *html.Node) []*html.Node {
	var rows []*html.Node
	for c := t.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "tr":
			rows = append(rows, c)
		case "thead", "tbody", "tfoot":
			for r := c.FirstChild; r != nil; r = r.NextSibling {
				if r.Type == html.ElementNode && r.Data == "tr" {
					rows = append(rows, r)
				}
			}
		}
	}
	return rows
}
