package tables

import (
	"strings"
	"unicode/utf8"

	"github.com/tsawler/reqdoc/catalog"
	"github.com/tsawler/reqdoc/textnorm"
)

// RowClassifier recognises tables laid out as one record per row under a
// header row.
type RowClassifier struct {
	config Config
}

// NewRowClassifier creates a row classifier with default configuration.
func NewRowClassifier() *RowClassifier {
	return NewRowClassifierWithConfig(DefaultConfig())
}

// NewRowClassifierWithConfig creates a row classifier with custom configuration.
func NewRowClassifierWithConfig(config Config) *RowClassifier {
	return &RowClassifier{config: config}
}

// Name returns catalog.LayoutRows.
func (c *RowClassifier) Name() catalog.Layout {
	return catalog.LayoutRows
}

// Classify maps the header row of grid against the section's column rules.
// The table is accepted when at least s.MinLabelMatches header cells map to
// a field; its data rows are extracted on acceptance.
func (c *RowClassifier) Classify(grid [][]string, s *catalog.Section) (*Table, bool) {
	if len(grid) == 0 {
		return nil, false
	}

	t := c.MapHeader(grid[0], s.Columns)
	if len(t.Columns) < s.MinLabelMatches {
		return nil, false
	}
	t.Rows = ExtractRows(s.ID, grid, t.Columns)
	return t, true
}

// MapHeader maps header cells to fields. Rules are tried in order and the
// first match wins; a field is claimed by the first cell that maps to it.
func (c *RowClassifier) MapHeader(header []string, rules []catalog.ColumnRule) *Table {
	t := &Table{Layout: catalog.LayoutRows}
	if len(header) == 0 {
		return t
	}

	if c.isOffsetCell(header[0]) {
		t.Offset = 1
	}

	claimed := make(map[string]bool)
	for i := t.Offset; i < len(header); i++ {
		field, ok := matchLabel(textnorm.Normalize(header[i]), rules, c.config.MinReverseMatch)
		if !ok || claimed[field] {
			continue
		}
		claimed[field] = true
		label := textnorm.CollapseSpace(header[i])
		t.Columns = append(t.Columns, Column{Index: i, Field: field, Label: label})
		t.MatchedLabels = append(t.MatchedLabels, label)
	}
	return t
}

// isOffsetCell reports whether a first header cell is a row-number column.
func (c *RowClassifier) isOffsetCell(cell string) bool {
	raw := strings.TrimSpace(cell)
	if raw == "" || raw == "#" {
		return true
	}
	n := textnorm.Normalize(raw)
	if n == "" {
		return true
	}
	for _, m := range c.config.OffsetMarkers {
		if strings.Contains(n, m) {
			return true
		}
	}
	return false
}

// matchLabel returns the field of the first rule whose label contains cell,
// or is contained in it.
func matchLabel(cell string, rules []catalog.ColumnRule, minReverse int) (string, bool) {
	if cell == "" {
		return "", false
	}
	reverse := utf8.RuneCountInString(cell) >= minReverse
	for _, r := range rules {
		if strings.Contains(cell, r.Label) || (reverse && strings.Contains(r.Label, cell)) {
			return r.Field, true
		}
	}
	return "", false
}

// ExtractRows builds one row per data row of grid from the mapped columns.
// Rows whose mapped cells are all blank are skipped, and row ids count
// emitted rows only.
func ExtractRows(sectionID string, grid [][]string, columns []Column) []Row {
	rows := []Row{}
	if len(grid) < 2 || len(columns) == 0 {
		return rows
	}

	for _, raw := range grid[1:] {
		row := Row{Cells: make([]Cell, 0, len(columns))}
		for _, col := range columns {
			value := ""
			if col.Index < len(raw) {
				value = textnorm.CollapseSpace(raw[col.Index])
			}
			row.Cells = append(row.Cells, Cell{Field: col.Field, Value: value})
		}
		if row.blank() {
			continue
		}
		row.ID = rowID(sectionID, len(rows))
		rows = append(rows, row)
	}
	return rows
}
