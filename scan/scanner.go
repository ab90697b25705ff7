// Package scan implements the scan-mode fallback: scoring the whole
// document for a section when no header was found.
package scan

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/tsawler/reqdoc/catalog"
	"github.com/tsawler/reqdoc/dom"
	"github.com/tsawler/reqdoc/tables"
	"github.com/tsawler/reqdoc/textnorm"
)

// Config holds scanner configuration.
type Config struct {
	// LengthBonusDivisor and MaxLengthBonus shape the length bonus:
	// min(runes/LengthBonusDivisor, MaxLengthBonus).
	LengthBonusDivisor float64
	MaxLengthBonus     float64

	// Separator joins the selected candidates.
	Separator string
}

// DefaultConfig returns default scanner configuration.
func DefaultConfig() Config {
	return Config{
		LengthBonusDivisor: 20,
		MaxLengthBonus:     20,
		Separator:          "\n\n",
	}
}

// Candidate is a scored paragraph.
type Candidate struct {
	Node  *html.Node
	Score float64
	Text  string

	// Order is the candidate's position among the scored paragraphs.
	Order int

	// Keywords lists the distinct keywords found, in band order.
	Keywords []string
}

// TextResult is the outcome of a free-text scan.
type TextResult struct {
	Selected []Candidate
	Content  string

	// Keywords lists the distinct keywords of the selected candidates.
	Keywords []string
}

// TableResult is the outcome of a table scan.
type TableResult struct {
	Node  *html.Node
	Table *tables.Table

	// Passing counts the tables that classified with at least one row.
	Passing int
}

// Ambiguous reports whether more than one table qualified.
func (r *TableResult) Ambiguous() bool {
	return r.Passing > 1
}

// Scanner scores a document for one section at a time.
type Scanner struct {
	config   Config
	registry *tables.ClassifierRegistry
}

// NewScanner creates a scanner with default configuration.
func NewScanner() *Scanner {
	return NewScannerWithConfig(DefaultConfig(), tables.NewRegistryWithConfig(tables.DefaultConfig()))
}

// NewScannerWithConfig creates a scanner with custom configuration and
// table classifiers.
func NewScannerWithConfig(config Config, registry *tables.ClassifierRegistry) *Scanner {
	return &Scanner{config: config, registry: registry}
}

// Text scores every paragraph-like leaf of d against the section's keyword
// bands and returns the best MaxCandidates, best first. Ties keep document
// order. It returns false when no paragraph qualifies.
func (s *Scanner) Text(d *dom.Document, sec *catalog.Section) (*TextResult, bool) {
	candidates := s.Candidates(d, sec)
	if len(candidates) == 0 {
		return nil, false
	}

	if n := sec.Scan.MaxCandidates; n > 0 && len(candidates) > n {
		candidates = candidates[:n]
	}

	res := &TextResult{Selected: candidates}
	texts := make([]string, len(candidates))
	seen := make(map[string]bool)
	for i, c := range candidates {
		texts[i] = c.Text
		for _, k := range c.Keywords {
			if !seen[k] {
				seen[k] = true
				res.Keywords = append(res.Keywords, k)
			}
		}
	}
	res.Content = strings.Join(texts, s.config.Separator)
	return res, true
}

// Candidates returns every qualifying paragraph, sorted by score
// descending with document order breaking ties.
func (s *Scanner) Candidates(d *dom.Document, sec *catalog.Section) []Candidate {
	var out []Candidate
	seen := make(map[string]bool)

	for _, n := range d.ParagraphLeaves() {
		text := d.Text(n)
		if seen[text] {
			continue
		}
		seen[text] = true

		c, ok := s.score(text, d.Normalized(n), sec)
		if !ok {
			continue
		}
		c.Node = n
		c.Order = len(out)
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// score computes a paragraph's score, or false if it is disqualified.
func (s *Scanner) score(text, normalized string, sec *catalog.Section) (Candidate, bool) {
	length := utf8.RuneCountInString(text)
	if length < sec.Scan.MinLength || !textnorm.HasLetter(text) {
		return Candidate{}, false
	}
	if _, hit := textnorm.MatchAny(normalized, sec.Scan.Blacklist); hit {
		return Candidate{}, false
	}

	c := Candidate{Text: text}
	for _, band := range sec.Scan.Bands {
		for _, term := range band.Terms {
			if n := textnorm.Count(normalized, term); n > 0 {
				c.Score += float64(n) * band.Weight
				c.Keywords = append(c.Keywords, term)
			}
		}
	}
	if len(c.Keywords) == 0 {
		return Candidate{}, false
	}

	bonus := float64(length) / s.config.LengthBonusDivisor
	if bonus > s.config.MaxLengthBonus {
		bonus = s.config.MaxLengthBonus
	}
	c.Score += bonus

	if c.Score < sec.Scan.Threshold {
		return Candidate{}, false
	}
	return c, true
}

// Table classifies every table of d for the section and returns the one
// yielding the most rows. Ties go to the earlier table. A table that
// classifies without data rows is still a candidate.
func (s *Scanner) Table(d *dom.Document, sec *catalog.Section) (*TableResult, bool) {
	var best *TableResult
	passing := 0

	for _, n := range d.Tables() {
		t, ok := s.registry.Extract(d.TableRows(n), sec)
		if !ok {
			continue
		}
		passing++
		if best == nil || len(t.Rows) > len(best.Table.Rows) {
			best = &TableResult{Node: n, Table: t}
		}
	}
	if best == nil {
		return nil, false
	}
	best.Passing = passing
	return best, true
}
