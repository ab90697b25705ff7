package tables

import (
	"github.com/tsawler/reqdoc/catalog"
)

// Classifier is the interface for table layout recognisers.
type Classifier interface {
	// Classify decides whether grid is the section's table and, if so,
	// extracts its rows.
	Classify(grid [][]string, s *catalog.Section) (*Table, bool)

	// Name returns the layout the classifier handles.
	Name() catalog.Layout
}

// Config holds classifier configuration.
type Config struct {
	// OffsetMarkers are normalized words that mark a leading row-number
	// header cell. An empty cell or "#" always marks one.
	OffsetMarkers []string

	// MinReverseMatch is the minimum normalized length of a cell for a
	// column label to match by containing the cell text. Shorter cells
	// ("a", "no") only match by containing a label.
	MinReverseMatch int
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		OffsetMarkers:   []string{"sira", "numara"},
		MinReverseMatch: 3,
	}
}

// Table is a classified table.
type Table struct {
	Layout catalog.Layout

	// Offset is 1 when the header starts with a row-number column.
	Offset int

	// Columns lists the mapped header cells in column order.
	Columns []Column

	// MatchedLabels holds the document text of every recognised label.
	MatchedLabels []string

	Rows []Row
}

// Fields returns the mapped field keys in column order.
func (t *Table) Fields() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Field
	}
	return out
}

// Column is one mapped header cell.
type Column struct {
	Index int
	Field string
	Label string
}

// ClassifierRegistry holds registered classifiers.
type ClassifierRegistry struct {
	classifiers map[catalog.Layout]Classifier
}

// NewRegistry creates a new classifier registry.
func NewRegistry() *ClassifierRegistry {
	return &ClassifierRegistry{
		classifiers: make(map[catalog.Layout]Classifier),
	}
}

// NewRegistryWithConfig creates a registry holding the built-in classifiers,
// each configured with config.
func NewRegistryWithConfig(config Config) *ClassifierRegistry {
	r := NewRegistry()
	r.Register(NewRowClassifierWithConfig(config))
	r.Register(NewVerticalClassifierWithConfig(config))
	return r
}

// Register registers a classifier under its layout name.
func (r *ClassifierRegistry) Register(c Classifier) {
	r.classifiers[c.Name()] = c
}

// Get retrieves a classifier by layout.
func (r *ClassifierRegistry) Get(layout catalog.Layout) Classifier {
	return r.classifiers[layout]
}

// Extract classifies grid with the classifier registered for the section's
// layout. It returns false for free-text sections and unknown layouts.
func (r *ClassifierRegistry) Extract(grid [][]string, s *catalog.Section) (*Table, bool) {
	if !s.IsTable() {
		return nil, false
	}
	c := r.Get(s.Layout)
	if c == nil {
		return nil, false
	}
	return c.Classify(grid, s)
}
