// Package extract is the section extraction engine. For every requested
// section it first looks for the section's header (strict mode) and falls
// back to scoring the whole document (scan mode) when no header, or no
// valid table after it, is found.
//
// A document is converted and parsed once; its sections are then extracted
// concurrently from the shared, read-only [dom.Document]. Extraction never
// returns a Go error for document problems: conversion failures, missing
// sections and recovered panics are all reported inside [Result].
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/reqdoc/catalog"
	"github.com/tsawler/reqdoc/convert"
	"github.com/tsawler/reqdoc/dom"
	"github.com/tsawler/reqdoc/locate"
	"github.com/tsawler/reqdoc/scan"
	"github.com/tsawler/reqdoc/tables"
)

// Config holds engine configuration.
type Config struct {
	Locate  locate.Config
	Collect locate.CollectorConfig
	Tables  tables.Config
	Scan    scan.Config

	// Concurrency bounds the sections extracted at once. Values below 1
	// mean one.
	Concurrency int
}

// DefaultConfig returns default engine configuration.
func DefaultConfig() Config {
	return Config{
		Locate:      locate.DefaultConfig(),
		Collect:     locate.DefaultCollectorConfig(),
		Tables:      tables.DefaultConfig(),
		Scan:        scan.DefaultConfig(),
		Concurrency: runtime.GOMAXPROCS(0),
	}
}

// ConvertFunc converts a document to HTML.
type ConvertFunc func(ctx context.Context, data []byte, name string) (*convert.Output, error)

// Engine extracts catalog sections from documents. It is safe for
// concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
	config  Config

	locator   *locate.Locator
	collector *locate.Collector
	registry  *tables.ClassifierRegistry
	scanner   *scan.Scanner
	convert   ConvertFunc
}

// New creates an engine with default configuration. A nil catalog means
// the embedded default catalog and a nil logger means slog.Default().
func New(cat *catalog.Catalog, logger *slog.Logger) *Engine {
	return NewWithConfig(cat, logger, DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(cat *catalog.Catalog, logger *slog.Logger, config Config) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}

	registry := tables.NewRegistryWithConfig(config.Tables)
	return &Engine{
		catalog:   cat,
		logger:    logger,
		config:    config,
		locator:   locate.NewLocatorWithConfig(config.Locate),
		collector: locate.NewCollectorWithConfig(config.Collect),
		registry:  registry,
		scanner:   scan.NewScannerWithConfig(config.Scan, registry),
		convert:   convert.Convert,
	}
}

// WithConverter returns a copy of the engine that converts documents with
// fn instead of the default converter registry.
func (e *Engine) WithConverter(fn ConvertFunc) *Engine {
	c := *e
	c.convert = fn
	return &c
}

// Catalog returns the engine's section catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// ExtractBytes converts a document once and extracts the sections named
// by ids, or every catalog section when ids is empty. Results follow the
// order of ids. Unknown ids are the only Go error; a document that cannot
// be converted yields a failed result for every section.
func (e *Engine) ExtractBytes(ctx context.Context, data []byte, name string, ids ...string) ([]Result, error) {
	sections, err := e.catalog.Select(ids...)
	if err != nil {
		return nil, err
	}
	logger := e.runLogger(name)

	out, err := e.convert(ctx, data, name)
	if err != nil {
		logger.Error("document conversion failed", "error", err)
		return failAll(sections, fmt.Sprintf(msgConversion, err)), nil
	}
	for _, m := range out.Messages {
		logger.Warn("converter message", "format", out.Format.String(), "message", m)
	}

	d, err := dom.ParseString(out.HTML)
	if err != nil {
		logger.Error("document parse failed", "error", err)
		return failAll(sections, fmt.Sprintf(msgParse, err)), nil
	}
	return e.extractAll(ctx, logger, d, sections), nil
}

// ExtractHTML extracts sections from an HTML document.
func (e *Engine) ExtractHTML(ctx context.Context, src string, ids ...string) ([]Result, error) {
	sections, err := e.catalog.Select(ids...)
	if err != nil {
		return nil, err
	}
	logger := e.runLogger("")

	d, err := dom.ParseString(src)
	if err != nil {
		logger.Error("document parse failed", "error", err)
		return failAll(sections, fmt.Sprintf(msgParse, err)), nil
	}
	return e.extractAll(ctx, logger, d, sections), nil
}

// ExtractDocument extracts sections from a parsed document.
func (e *Engine) ExtractDocument(ctx context.Context, d *dom.Document, ids ...string) ([]Result, error) {
	sections, err := e.catalog.Select(ids...)
	if err != nil {
		return nil, err
	}
	return e.extractAll(ctx, e.runLogger(""), d, sections), nil
}

// ExtractSections extracts the given sections from d concurrently.
func (e *Engine) ExtractSections(ctx context.Context, d *dom.Document, sections []*catalog.Section) []Result {
	return e.extractAll(ctx, e.runLogger(""), d, sections)
}

// Extract extracts one section from d.
func (e *Engine) Extract(ctx context.Context, d *dom.Document, s *catalog.Section) Result {
	return e.extractSection(ctx, e.runLogger(""), d, s)
}

// runLogger tags the logs of one document run with a fresh id.
func (e *Engine) runLogger(name string) *slog.Logger {
	l := e.logger.With("run", uuid.NewString())
	if name != "" {
		l = l.With("document", name)
	}
	return l
}

// extractAll runs the sections with bounded concurrency. Sections not yet
// started when ctx is cancelled get a failed result.
func (e *Engine) extractAll(ctx context.Context, logger *slog.Logger, d *dom.Document, sections []*catalog.Section) []Result {
	results := make([]Result, len(sections))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Concurrency)
	for i, s := range sections {
		if err := gctx.Err(); err != nil {
			results[i] = failedResult(s, fmt.Sprintf(msgCancelled, s.Title, err))
			continue
		}
		g.Go(func() error {
			results[i] = e.extractSection(gctx, logger, d, s)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// extractSection runs the strict then scan state machine for one section.
func (e *Engine) extractSection(ctx context.Context, logger *slog.Logger, d *dom.Document, s *catalog.Section) (res Result) {
	logger = logger.With("section", s.ID)
	start := time.Now()
	res = newResult(s)

	defer func() {
		if p := recover(); p != nil {
			logger.Error("extraction panicked", "mode", res.Mode, "panic", p)
			res.fail(OutcomeFailed, msgPanic, s.Title, p)
		}
		logger.Debug("section done",
			"mode", res.Mode,
			"outcome", res.Outcome,
			"found", res.Found,
			"rows", len(res.Rows),
			"elapsed", time.Since(start))
	}()

	if err := ctx.Err(); err != nil {
		res.fail(OutcomeFailed, msgCancelled, s.Title, err)
		return res
	}

	if e.strict(logger, d, s, &res) {
		res.Found = true
		res.Outcome = OutcomeStrict
		return res
	}

	res.Mode = ModeScan
	logger.Debug("strict search failed, scanning", "mode", ModeScan)
	if e.scan(d, s, &res) {
		res.Found = true
		res.Outcome = OutcomeScan
		res.Warnings = append([]string{fmt.Sprintf(msgScanUsed, s.Title)}, res.Warnings...)
		return res
	}

	res.fail(OutcomeNotFound, msgNotFound, s.Title)
	return res
}

// strict fills res from the section's header and what follows it. It
// reports false when scan mode should take over.
func (e *Engine) strict(logger *slog.Logger, d *dom.Document, s *catalog.Section, res *Result) bool {
	header, ok := e.locator.Find(d, s)
	if !ok {
		return false
	}
	logger.Debug("header found", "mode", ModeStrict, "term", header.Term, "heading", header.Heading)

	if !s.IsTable() {
		collected := e.collector.Collect(d, header.Node)
		res.Content = collected.Content
		res.MatchedLabels = []string{header.Term}
		if collected.Content == "" {
			res.warn(msgEmptyContent, s.Title)
		}
		return true
	}

	node := e.collector.FindTable(d, header.Node)
	if node == nil {
		logger.Debug("no table after header", "mode", ModeStrict)
		return false
	}
	t, ok := e.registry.Extract(d.TableRows(node), s)
	if !ok {
		logger.Debug("table after header not recognised", "mode", ModeStrict)
		return false
	}

	res.Rows = t.Rows
	res.MatchedLabels = nonNil(t.MatchedLabels)
	if len(t.Rows) == 0 {
		res.warn(msgEmptyTable, s.Title)
	}
	return true
}

// scan fills res from scan mode and reports whether anything qualified.
func (e *Engine) scan(d *dom.Document, s *catalog.Section, res *Result) bool {
	if !s.IsTable() {
		tr, ok := e.scanner.Text(d, s)
		if !ok {
			return false
		}
		res.Content = tr.Content
		res.MatchedLabels = nonNil(tr.Keywords)
		return true
	}

	tr, ok := e.scanner.Table(d, s)
	if !ok {
		return false
	}
	res.Rows = tr.Table.Rows
	res.MatchedLabels = nonNil(tr.Table.MatchedLabels)
	if tr.Ambiguous() {
		res.warn(msgAmbiguous, tr.Passing)
	}
	if len(tr.Table.Rows) == 0 {
		res.warn(msgEmptyTable, s.Title)
	}
	return true
}

func failAll(sections []*catalog.Section, msg string) []Result {
	results := make([]Result, len(sections))
	for i, s := range sections {
		results[i] = failedResult(s, msg)
	}
	return results
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
