// Package tables recognises a section's table among the tables of a document
// and turns it into rows.
//
// # Classifiers
//
// Recognition is performed by types implementing the [Classifier] interface,
// one per table layout:
//
//   - [RowClassifier] - one record per row under a header row
//   - [VerticalClassifier] - repeating (label, value) rows
//
// A [ClassifierRegistry] holds one classifier per layout, all sharing one
// [Config]:
//
//	r := tables.NewRegistryWithConfig(tables.DefaultConfig())
//	t, ok := r.Extract(grid, section)
//
// [ClassifierRegistry.Extract] picks the classifier for the section's layout
// and is what the extraction engine calls.
//
// # Header Mapping
//
// The first row of a rows-layout table is its header. A leading row-number
// column ("#", "Sıra No", an empty cell) is skipped. Every other header cell
// is compared with the section's column rules in declaration order, by
// containment in either direction, and the first matching rule decides the
// field. A field belongs to the first header cell that maps to it. The table
// is accepted when at least MinLabelMatches cells are mapped, so raising the
// threshold can only reject more tables.
//
// # Rows
//
// Data rows keep the mapped cells only, whitespace collapsed, and rows whose
// mapped cells are all blank are dropped before a [Row] is built.
package tables
