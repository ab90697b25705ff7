// Package export writes extraction results as JSON, YAML, Markdown or an
// Excel workbook.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/reqdoc/extract"
	"github.com/tsawler/reqdoc/format"
)

// Format defines the available export formats
type Format int

const (
	// FormatJSON exports a single JSON document
	FormatJSON Format = iota
	// FormatYAML exports a YAML document with rows as ordered mappings
	FormatYAML
	// FormatMarkdown exports a human-readable report
	FormatMarkdown
	// FormatXLSX exports an Excel workbook with one sheet per table section
	FormatXLSX
)

// String returns the name of the export format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatMarkdown:
		return "markdown"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (f Format) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	case FormatMarkdown:
		return ".md"
	case FormatXLSX:
		return ".xlsx"
	default:
		return ".txt"
	}
}

// ParseFormat parses a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return FormatJSON, fmt.Errorf("unsupported export format %q", s)
}

// Config holds configuration options for export
type Config struct {
	// Format specifies the export format
	Format Format

	// PrettyPrint indents JSON output
	PrettyPrint bool

	// FoundOnly leaves out sections that were not found
	FoundOnly bool
}

// DefaultConfig returns default export configuration
func DefaultConfig() Config {
	return Config{
		Format:      FormatJSON,
		PrettyPrint: true,
	}
}

// Document is one extracted document as exported.
type Document struct {
	Name     string           `json:"document" yaml:"document"`
	Format   format.Format    `json:"format" yaml:"format"`
	Sections []extract.Result `json:"sections" yaml:"sections"`
}

// Exporter writes documents in one format.
type Exporter struct {
	config Config
}

// NewExporter creates a new exporter with default configuration
func NewExporter() *Exporter {
	return &Exporter{config: DefaultConfig()}
}

// NewExporterWithConfig creates an exporter with custom configuration
func NewExporterWithConfig(config Config) *Exporter {
	return &Exporter{config: config}
}

// Config returns the exporter's configuration.
func (e *Exporter) Config() Config {
	return e.config
}

// Export writes doc to w
func (e *Exporter) Export(doc Document, w io.Writer) error {
	doc = e.filter(doc)
	switch e.config.Format {
	case FormatJSON:
		return e.exportJSON(doc, w)
	case FormatYAML:
		return exportYAML(doc, w)
	case FormatMarkdown:
		return exportMarkdown(doc, w)
	case FormatXLSX:
		return exportXLSX(doc, w)
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// ExportToFile exports doc to a file
func (e *Exporter) ExportToFile(doc Document, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := e.Export(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportToBytes exports doc to a byte slice
func (e *Exporter) ExportToBytes(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Export(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Exporter) filter(doc Document) Document {
	if !e.config.FoundOnly {
		return doc
	}
	kept := make([]extract.Result, 0, len(doc.Sections))
	for _, r := range doc.Sections {
		if r.Found {
			kept = append(kept, r)
		}
	}
	doc.Sections = kept
	return doc
}

func (e *Exporter) exportJSON(doc Document, w io.Writer) error {
	if doc.Sections == nil {
		doc.Sections = []extract.Result{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if e.config.PrettyPrint {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
