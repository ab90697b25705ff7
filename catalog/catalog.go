// Package catalog holds the declarative section specs that drive extraction.
//
// A catalog is a versioned YAML document listing every semantic section the
// engine can look for: how its header is worded, which words belong to other
// sections, how its table columns are labelled, and how scan mode scores
// free text. The default catalog is embedded; custom catalogs are validated
// against the embedded JSON Schema before use.
//
// Every phrase is normalized with textnorm at load time, so the rest of the
// engine compares normalized strings only. Catalogs are immutable once built
// and safe to share between goroutines.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSection is returned when a section id is not in the catalog.
var ErrUnknownSection = errors.New("unknown section")

// Kind is the content kind a section extracts.
type Kind string

const (
	// KindFreeText sections extract paragraphs of prose.
	KindFreeText Kind = "freeText"
	// KindTable sections extract rows from a table.
	KindTable Kind = "table"
)

// Layout describes how a table section's records are laid out.
type Layout string

const (
	// LayoutRows is one record per table row under a header row.
	LayoutRows Layout = "rows"
	// LayoutVertical is repeating (label, value) rows, one field per row.
	LayoutVertical Layout = "vertical"
)

// Scan-mode defaults applied when a section leaves them unset.
const (
	DefaultMaxCandidates   = 5
	DefaultMinLength       = 20
	DefaultMinLabelMatches = 2
)

// ColumnRule maps one normalized label to a field key. Rules are evaluated
// in declaration order and the first match wins.
type ColumnRule struct {
	Label string
	Field string
}

// Band is a scan-mode weight tier: every occurrence of one of Terms in a
// candidate adds Weight to its score.
type Band struct {
	Weight float64
	Terms  []string
}

// Scan holds the scan-mode scoring parameters of a section.
type Scan struct {
	Threshold     float64
	MaxCandidates int
	MinLength     int
	Bands         []Band

	// Blacklist contains the section's own blacklist followed by the
	// catalog's shared blacklist.
	Blacklist []string
}

// Section is the immutable definition of one target section.
type Section struct {
	ID    string
	Title string
	Kind  Kind

	// Layout and PrimaryField only apply to table sections.
	Layout       Layout
	PrimaryField string

	SearchTerms    []string
	ExclusionTerms []string

	Columns         []ColumnRule
	MinLabelMatches int

	Scan Scan
}

// IsTable reports whether the section extracts a table.
func (s *Section) IsTable() bool {
	return s.Kind == KindTable
}

// IsVertical reports whether the section's table is a vertical form.
func (s *Section) IsVertical() bool {
	return s.Kind == KindTable && s.Layout == LayoutVertical
}

// Fields returns the distinct field keys of the column rules in declaration order.
func (s *Section) Fields() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range s.Columns {
		if !seen[c.Field] {
			seen[c.Field] = true
			out = append(out, c.Field)
		}
	}
	return out
}

// Catalog is an ordered, immutable set of sections.
type Catalog struct {
	Version         int
	SharedBlacklist []string

	sections []*Section
	byID     map[string]*Section
}

// Sections returns all sections in declaration order.
func (c *Catalog) Sections() []*Section {
	out := make([]*Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// IDs returns all section ids in declaration order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.sections))
	for i, s := range c.sections {
		ids[i] = s.ID
	}
	return ids
}

// Len returns the number of sections.
func (c *Catalog) Len() int {
	return len(c.sections)
}

// Lookup returns the section with the given id.
func (c *Catalog) Lookup(id string) (*Section, error) {
	s, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	return s, nil
}

// Select returns the sections named by ids in the given order, or every
// section when ids is empty.
func (c *Catalog) Select(ids ...string) ([]*Section, error) {
	if len(ids) == 0 {
		return c.Sections(), nil
	}
	out := make([]*Section, 0, len(ids))
	var unknown []string
	for _, id := range ids {
		s, ok := c.byID[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		out = append(out, s)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, strings.Join(unknown, ", "))
	}
	return out, nil
}
