package locate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/tsawler/reqdoc/dom"
)

// CollectorConfig holds content collector configuration.
type CollectorConfig struct {
	// MaxElements bounds the forward walk from the header.
	MaxElements int

	// MaxParagraphs stops collection once this many paragraphs are gathered.
	MaxParagraphs int

	// MinTextLength is the rune length below which an element is skipped.
	MinTextLength int

	// MinHeadingLength is the rune length a heading must exceed to end the
	// section. Shorter headings ("1.", "A") are walked past.
	MinHeadingLength int

	// TitleMinLength and TitleMaxLength bound, exclusively, the rune length
	// of an all-uppercase line treated as the next section's title.
	TitleMinLength int
	TitleMaxLength int

	// Separator joins collected paragraphs.
	Separator string
}

// DefaultCollectorConfig returns default collector configuration.
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{
		MaxElements:      20,
		MaxParagraphs:    3,
		MinTextLength:    3,
		MinHeadingLength: 3,
		TitleMinLength:   5,
		TitleMaxLength:   50,
		Separator:        "\n\n",
	}
}

// Collected is the free text gathered after a header.
type Collected struct {
	Paragraphs []string
	Content    string
}

// Collector gathers what follows a located header.
type Collector struct {
	config CollectorConfig
}

// NewCollector creates a collector with default configuration.
func NewCollector() *Collector {
	return NewCollectorWithConfig(DefaultCollectorConfig())
}

// NewCollectorWithConfig creates a collector with custom configuration.
func NewCollectorWithConfig(config CollectorConfig) *Collector {
	return &Collector{config: config}
}

// Collect walks forward from header and gathers paragraph text until the
// next heading, a title-looking line, the paragraph cap or the element
// budget. Tables and elements holding tables are never collected.
func (c *Collector) Collect(d *dom.Document, header *html.Node) Collected {
	var paragraphs []string

	cur := header
	for i := 0; i < c.config.MaxElements; i++ {
		cur = d.Next(cur)
		if cur == nil {
			break
		}
		text := d.Text(cur)
		length := utf8.RuneCountInString(text)

		if dom.HeadingLevel(cur) > 0 && length > c.config.MinHeadingLength {
			break
		}
		if d.ContainsTable(cur) {
			continue
		}
		if c.looksLikeTitle(text, length) {
			break
		}
		if length < c.config.MinTextLength {
			continue
		}

		paragraphs = append(paragraphs, text)
		if len(paragraphs) >= c.config.MaxParagraphs {
			break
		}
	}

	return Collected{
		Paragraphs: paragraphs,
		Content:    strings.Join(paragraphs, c.config.Separator),
	}
}

// FindTable walks forward from header and returns the first table at or
// inside a following element. The walk stops at the next heading or when
// the element budget runs out.
func (c *Collector) FindTable(d *dom.Document, header *html.Node) *html.Node {
	cur := header
	for i := 0; i < c.config.MaxElements; i++ {
		cur = d.Next(cur)
		if cur == nil {
			return nil
		}
		if dom.HeadingLevel(cur) > 0 && utf8.RuneCountInString(d.Text(cur)) > c.config.MinHeadingLength {
			return nil
		}
		if dom.IsTable(cur) {
			return cur
		}
		if d.ContainsTable(cur) {
			return firstTable(cur)
		}
	}
	return nil
}

// looksLikeTitle reports whether text is a short all-uppercase line that is
// not a sentence.
func (c *Collector) looksLikeTitle(text string, length int) bool {
	if length <= c.config.TitleMinLength || length >= c.config.TitleMaxLength {
		return false
	}
	if strings.HasSuffix(text, ".") || strings.HasSuffix(text, "!") ||
		strings.HasSuffix(text, "?") || strings.HasSuffix(text, ":") {
		return false
	}

	upper := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			upper = true
		}
	}
	return upper
}

func firstTable(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsTable(c) {
			return c
		}
		if t := firstTable(c); t != nil {
			return t
		}
	}
	return nil
}
