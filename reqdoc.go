// Package reqdoc provides a fluent API for extracting named sections from
// requirement-analysis documents (DOCX, ODT and HTML).
//
// Basic usage:
//
//	results, err := reqdoc.Open("analiz.docx").Results(ctx)
//	if err != nil {
//	    // handle error
//	}
//	for _, r := range results {
//	    if !r.Found {
//	        log.Println(r.Title, r.Errors)
//	    }
//	}
//
// With options:
//
//	results, err := reqdoc.Open("analiz.docx").
//	    Sections("scope", "integrations").
//	    CatalogFile("sections.yaml").
//	    Concurrency(4).
//	    Results(ctx)
//
// For advanced use cases, the lower-level extract, convert and export
// packages are also available.
package reqdoc

import (
	"path/filepath"
)

// Open returns an Extractor for a document file. The file is read by the
// terminal operation.
//
// Example:
//
//	results, err := reqdoc.Open("analiz.docx").Results(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		name:     filepath.Base(filename),
		options:  defaultOptions(),
	}
}

// FromBytes returns an Extractor for a document held in memory. name is
// used for format detection when the content is ambiguous, and in logs.
//
// Example:
//
//	results, err := reqdoc.FromBytes(upload, "analiz.docx").Results(ctx)
func FromBytes(data []byte, name string) *Extractor {
	return &Extractor{
		name:    name,
		data:    data,
		loaded:  true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	results := reqdoc.Must(reqdoc.Open("analiz.docx").Results(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
