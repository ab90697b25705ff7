// Package format provides input format detection for requirement
// documents.
package format

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// ODT indicates an OpenDocument Text (.odt) document.
	ODT
	// HTML indicates an HTML document, typically one already converted.
	HTML
	// PDF is recognized so it can be reported; it is not converted.
	PDF
)

// odtMimeType is the mimetype entry of an OpenDocument text package.
const odtMimeType = "application/vnd.oasis.opendocument.text"

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case ODT:
		return "ODT"
	case HTML:
		return "HTML"
	case PDF:
		return "PDF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case ODT:
		return ".odt"
	case HTML:
		return ".html"
	case PDF:
		return ".pdf"
	default:
		return ""
	}
}

// MarshalText renders the format in lower case for JSON and YAML.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(f.String())), nil
}

// Parse returns the format named by s ("docx", ".odt", "HTML" ...).
func Parse(s string) (Format, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	switch name {
	case "docx":
		return DOCX, nil
	case "odt":
		return ODT, nil
	case "html", "htm":
		return HTML, nil
	case "pdf":
		return PDF, nil
	}
	return Unknown, fmt.Errorf("unknown format %q", s)
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return DOCX
	case ".odt":
		return ODT
	case ".html", ".htm", ".xhtml":
		return HTML
	case ".pdf":
		return PDF
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine format. ZIP archives
// return Unknown; use DetectBytes to tell DOCX and ODT apart.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}
	if isZIP(data) {
		return Unknown
	}
	if detectHTMLMagic(data) {
		return HTML
	}
	return Unknown
}

// DetectBytes inspects the content of a document held in memory, falling
// back to the name's extension when the content is inconclusive.
func DetectBytes(data []byte, name string) Format {
	if isZIP(data) {
		if f, err := DetectFromReader(bytes.NewReader(data), int64(len(data))); err == nil && f != Unknown {
			return f
		}
	} else if f := DetectFromMagic(data); f != Unknown {
		return f
	}
	return Detect(name)
}

func isZIP(data []byte) bool {
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return false
	}

	head := strings.ToUpper(string(data[:min(len(data), 512)]))
	if strings.HasPrefix(head, "<!DOCTYPE HTML") || strings.HasPrefix(head, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	if strings.HasPrefix(head, "<?XML") && strings.Contains(head, "<HTML") {
		return true
	}
	// Fragments produced by converters often start with a block element.
	for _, tag := range []string{"<BODY", "<H1", "<H2", "<H3", "<P>", "<P ", "<DIV", "<TABLE"} {
		if strings.HasPrefix(head, tag) {
			return true
		}
	}
	return false
}

// DetectFromReader inspects the content to determine format.
// This is more reliable than extension-based detection and can
// distinguish between ZIP-based formats.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if isZIP(magic) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// detectZIPFormat inspects a ZIP archive to determine if it's DOCX or ODT.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	// OpenDocument packages start with a mimetype entry.
	for _, f := range zr.File {
		if f.Name != "mimetype" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			break
		}
		data, _ := io.ReadAll(io.LimitReader(rc, 256))
		rc.Close()
		if strings.TrimSpace(string(data)) == odtMimeType {
			return ODT, nil
		}
		return Unknown, nil
	}

	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			return DOCX, nil
		}
	}
	return Unknown, nil
}
