package tables

import (
	"github.com/tsawler/reqdoc/catalog"
	"github.com/tsawler/reqdoc/textnorm"
)

// VerticalClassifier recognises key/value tables where each row is a
// (label, value) pair and a recurring primary label starts a new record.
type VerticalClassifier struct {
	config Config
}

// NewVerticalClassifier creates a vertical classifier with default configuration.
func NewVerticalClassifier() *VerticalClassifier {
	return NewVerticalClassifierWithConfig(DefaultConfig())
}

// NewVerticalClassifierWithConfig creates a vertical classifier with custom configuration.
func NewVerticalClassifierWithConfig(config Config) *VerticalClassifier {
	return &VerticalClassifier{config: config}
}

// Name returns catalog.LayoutVertical.
func (c *VerticalClassifier) Name() catalog.Layout {
	return catalog.LayoutVertical
}

// Classify counts the distinct fields recognised in the label column and
// accepts the table when there are at least s.MinLabelMatches of them.
func (c *VerticalClassifier) Classify(grid [][]string, s *catalog.Section) (*Table, bool) {
	t := &Table{Layout: catalog.LayoutVertical}

	seen := make(map[string]bool)
	for _, raw := range grid {
		if len(raw) == 0 {
			continue
		}
		field, ok := matchLabel(textnorm.Normalize(raw[0]), s.Columns, c.config.MinReverseMatch)
		if !ok || seen[field] {
			continue
		}
		seen[field] = true
		label := textnorm.CollapseSpace(raw[0])
		t.Columns = append(t.Columns, Column{Index: 0, Field: field, Label: label})
		t.MatchedLabels = append(t.MatchedLabels, label)
	}
	if len(t.Columns) < s.MinLabelMatches {
		return nil, false
	}

	t.Rows = c.extract(s, grid)
	return t, true
}

// extract walks the (label, value) rows. A non-empty value on the primary
// field closes the open record and opens a new one; other recognised labels
// fill the open record, opening one if needed. A field keeps its first
// non-empty value.
func (c *VerticalClassifier) extract(s *catalog.Section, grid [][]string) []Row {
	fields := s.Fields()
	rows := []Row{}

	var open map[string]string
	closeRecord := func() {
		if open == nil {
			return
		}
		row := Row{Cells: make([]Cell, 0, len(open))}
		for _, f := range fields {
			if v, ok := open[f]; ok {
				row.Cells = append(row.Cells, Cell{Field: f, Value: v})
			}
		}
		open = nil
		if row.blank() {
			return
		}
		row.ID = rowID(s.ID, len(rows))
		rows = append(rows, row)
	}

	for _, raw := range grid {
		if len(raw) == 0 {
			continue
		}
		field, ok := matchLabel(textnorm.Normalize(raw[0]), s.Columns, c.config.MinReverseMatch)
		if !ok {
			continue
		}
		value := ""
		if len(raw) > 1 {
			value = textnorm.CollapseSpace(raw[1])
		}

		if field == s.PrimaryField && value != "" {
			closeRecord()
			open = map[string]string{field: value}
			continue
		}
		if open == nil {
			open = make(map[string]string)
		}
		if open[field] == "" {
			open[field] = value
		}
	}
	closeRecord()
	return rows
}
