package reqdoc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tsawler/reqdoc/catalog"
	"github.com/tsawler/reqdoc/convert"
	"github.com/tsawler/reqdoc/dom"
	"github.com/tsawler/reqdoc/export"
	"github.com/tsawler/reqdoc/extract"
	"github.com/tsawler/reqdoc/format"
	"github.com/tsawler/reqdoc/htmldoc"
)

// Extractor provides a fluent interface for extracting sections from
// DOCX, ODT and HTML documents. Each configuration method returns a new
// Extractor instance, making it safe for concurrent use and allowing
// method chaining.
type Extractor struct {
	// Source
	filename string
	name     string
	data     []byte
	loaded   bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		name:     e.name,
		data:     e.data,
		loaded:   e.loaded,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// load reads the source file if it has not been read yet.
func (e *Extractor) load() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.loaded {
		return e.data, nil
	}
	if e.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	data, err := os.ReadFile(e.filename)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return data, nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Sections restricts extraction to the given section ids, in that order.
// Multiple calls are cumulative.
//
// Example:
//
//	results, err := reqdoc.Open("analiz.docx").Sections("scope", "integrations").Results(ctx)
func (e *Extractor) Sections(ids ...string) *Extractor {
	newExt := e.clone()
	newExt.options.sections = append(newExt.options.sections, ids...)
	return newExt
}

// Catalog replaces the embedded default section catalog.
func (e *Extractor) Catalog(c *catalog.Catalog) *Extractor {
	newExt := e.clone()
	newExt.options.catalog = c
	return newExt
}

// CatalogFile loads and validates a catalog file. A load error is
// reported by the terminal operation.
//
// Example:
//
//	results, err := reqdoc.Open("analiz.docx").CatalogFile("sections.yaml").Results(ctx)
func (e *Extractor) CatalogFile(path string) *Extractor {
	newExt := e.clone()
	if newExt.err != nil {
		return newExt
	}
	c, err := catalog.LoadFile(path)
	if err != nil {
		newExt.err = err
		return newExt
	}
	newExt.options.catalog = c
	return newExt
}

// Logger sets the structured logger used during extraction.
func (e *Extractor) Logger(l *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = l
	return newExt
}

// Concurrency bounds the number of sections extracted at once.
func (e *Extractor) Concurrency(n int) *Extractor {
	newExt := e.clone()
	newExt.options.config.Concurrency = n
	return newExt
}

// Config replaces the engine tuning. The concurrency set by Concurrency
// is overridden.
func (e *Extractor) Config(config extract.Config) *Extractor {
	newExt := e.clone()
	newExt.options.config = config
	return newExt
}

// HTMLNavigation sets how navigation and page chrome are removed from HTML
// input. It has no effect once Converter is set.
//
// Example:
//
//	results, err := reqdoc.Open("analiz.html").HTMLNavigation(htmldoc.NavigationExclusionAggressive).Results(ctx)
func (e *Extractor) HTMLNavigation(mode htmldoc.NavigationExclusionMode) *Extractor {
	newExt := e.clone()
	newExt.options.convertConfig.HTMLNavigation = mode
	return newExt
}

// ConvertConfig replaces the converter options.
func (e *Extractor) ConvertConfig(config convert.Config) *Extractor {
	newExt := e.clone()
	newExt.options.convertConfig = config
	return newExt
}

// Converter replaces the document to HTML conversion.
func (e *Extractor) Converter(fn extract.ConvertFunc) *Extractor {
	newExt := e.clone()
	newExt.options.convert = fn
	return newExt
}

// engine builds the extraction engine for the current options.
func (e *Extractor) engine() *extract.Engine {
	return extract.NewWithConfig(e.options.catalog, e.options.logger, e.options.config).
		WithConverter(e.convertFunc())
}

func (e *Extractor) convertFunc() extract.ConvertFunc {
	if e.options.convert != nil {
		return e.options.convert
	}
	return convert.NewRegistryWithConfig(e.options.convertConfig).Convert
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Results converts the document once and extracts the selected sections.
// Results follow the selection order, or catalog order when no sections
// were selected.
//
// The error is reserved for setup problems: an unreadable file, a bad
// catalog or an unknown section id. A document that cannot be converted,
// and sections that are not found, are reported inside the results.
//
// Example:
//
//	results, err := reqdoc.Open("analiz.docx").Results(ctx)
//	for _, r := range results {
//	    fmt.Println(r.Section, r.Found, r.Outcome)
//	}
func (e *Extractor) Results(ctx context.Context) ([]extract.Result, error) {
	data, err := e.load()
	if err != nil {
		return nil, err
	}
	return e.engine().ExtractBytes(ctx, data, e.name, e.options.sections...)
}

// Document extracts the selected sections and wraps them for export.
func (e *Extractor) Document(ctx context.Context) (export.Document, error) {
	data, err := e.load()
	if err != nil {
		return export.Document{}, err
	}
	results, err := e.engine().ExtractBytes(ctx, data, e.name, e.options.sections...)
	if err != nil {
		return export.Document{}, err
	}
	return export.Document{
		Name:     e.name,
		Format:   format.DetectBytes(data, e.name),
		Sections: results,
	}, nil
}

// Export extracts the selected sections and writes them to w in the
// given export format.
//
// Example:
//
//	err := reqdoc.Open("analiz.docx").Export(ctx, os.Stdout, export.FormatYAML)
func (e *Extractor) Export(ctx context.Context, w io.Writer, f export.Format) error {
	doc, err := e.Document(ctx)
	if err != nil {
		return err
	}
	config := export.DefaultConfig()
	config.Format = f
	return export.NewExporterWithConfig(config).Export(doc, w)
}

// HTML returns the document converted to HTML together with the
// converter's messages.
func (e *Extractor) HTML(ctx context.Context) (string, []string, error) {
	data, err := e.load()
	if err != nil {
		return "", nil, err
	}
	out, err := e.convertFunc()(ctx, data, e.name)
	if err != nil {
		return "", nil, err
	}
	return out.HTML, out.Messages, nil
}

// ToMarkdown returns the converted document as Markdown, which is handy
// for checking what the extraction engine sees.
func (e *Extractor) ToMarkdown(ctx context.Context) (string, []string, error) {
	h, messages, err := e.HTML(ctx)
	if err != nil {
		return "", nil, err
	}
	d, err := dom.ParseString(h)
	if err != nil {
		return "", messages, err
	}
	md, err := d.Markdown()
	if err != nil {
		return "", messages, err
	}
	return md, messages, nil
}
