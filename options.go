package reqdoc

import (
	"log/slog"

	"github.com/tsawler/reqdoc/catalog"
	"github.com/tsawler/reqdoc/convert"
	"github.com/tsawler/reqdoc/extract"
)

// ExtractOptions holds configuration for section extraction.
type ExtractOptions struct {
	// Section selection; nil means every catalog section
	sections []string

	catalog *catalog.Catalog
	logger  *slog.Logger

	// Engine tuning
	config extract.Config

	// Conversion; convert overrides convertConfig when set
	convertConfig convert.Config
	convert       extract.ConvertFunc
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		sections: nil,
		config:   extract.DefaultConfig(),

		convertConfig: convert.DefaultConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.sections != nil {
		newOpts.sections = make([]string, len(o.sections))
		copy(newOpts.sections, o.sections)
	}
	return newOpts
}
