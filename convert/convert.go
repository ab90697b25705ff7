// Package convert turns requirement documents into HTML, the input of
// section extraction. Formats are detected from the content and
// dispatched to a registered converter.
package convert

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/tsawler/reqdoc/docx"
	"github.com/tsawler/reqdoc/format"
	"github.com/tsawler/reqdoc/htmldoc"
	"github.com/tsawler/reqdoc/odt"
)

// ErrUnsupportedFormat is returned for input no converter accepts.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrEmptyInput is returned for zero-length input.
var ErrEmptyInput = errors.New("empty document")

// Output is the result of a conversion.
type Output struct {
	HTML     string
	Messages []string // non-fatal converter notes
	Format   format.Format
}

// Func converts one document to HTML and returns converter messages.
type Func func(data []byte) (string, []string, error)

// Registry maps formats to converters.
type Registry struct {
	mu         sync.RWMutex
	converters map[format.Format]Func
}

// Config holds converter options.
type Config struct {
	// HTMLNavigation controls how navigation and page chrome are removed
	// from HTML input.
	HTMLNavigation htmldoc.NavigationExclusionMode
}

// DefaultConfig returns the default converter options.
func DefaultConfig() Config {
	return Config{HTMLNavigation: htmldoc.NavigationExclusionStandard}
}

// NewRegistry creates a registry with the DOCX, ODT and HTML converters
// and the default options.
func NewRegistry() *Registry {
	return NewRegistryWithConfig(DefaultConfig())
}

// NewRegistryWithConfig creates a registry with the DOCX, ODT and HTML
// converters and the given options.
func NewRegistryWithConfig(config Config) *Registry {
	r := &Registry{converters: make(map[format.Format]Func)}
	r.Register(format.DOCX, docx.Convert)
	r.Register(format.ODT, odt.Convert)
	r.Register(format.HTML, func(data []byte) (string, []string, error) {
		return htmldoc.Convert(data, config.HTMLNavigation)
	})
	return r
}

// Register adds or replaces the converter for a format.
func (r *Registry) Register(f format.Format, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[f] = fn
}

// Get returns the converter for a format.
func (r *Registry) Get(f format.Format) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.converters[f]
	return fn, ok
}

// Formats returns the registered formats in order.
func (r *Registry) Formats() []format.Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	formats := make([]format.Format, 0, len(r.converters))
	for f := range r.converters {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Convert detects the format of data, falling back to the extension of
// name, and converts it. The converter runs in its own goroutine so a
// cancelled context returns promptly.
func (r *Registry) Convert(ctx context.Context, data []byte, name string) (*Output, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := format.DetectBytes(data, name)
	fn, ok := r.Get(f)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}

	type result struct {
		html string
		msgs []string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		var res result
		defer func() {
			if p := recover(); p != nil {
				res = result{err: fmt.Errorf("converter panic: %v", p)}
			}
			done <- res
		}()
		res.html, res.msgs, res.err = fn(data)
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("converting %s: %w", f, res.err)
		}
		msgs := res.msgs
		if msgs == nil {
			msgs = []string{}
		}
		return &Output{HTML: res.html, Messages: msgs, Format: f}, nil
	}
}

var defaultRegistry = NewRegistry()

// Convert converts data with the default registry.
func Convert(ctx context.Context, data []byte, name string) (*Output, error) {
	return defaultRegistry.Convert(ctx, data, name)
}
