// Package docx converts DOCX (Office Open XML) documents to HTML.
//
// The conversion keeps what section extraction relies on: paragraphs and
// tables in document order, heading levels resolved from paragraph styles
// (English and Turkish Word style names), list grouping, and table cell
// spans. Formatting, images and headers/footers are dropped.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/reqdoc/internal/htmlbuild"
)

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader *zip.Reader

	document  *documentXML
	styles    *StyleResolver
	numbering *NumberingResolver
	title     string

	messages []string
}

// OpenBytes reads a DOCX document held in memory.
func OpenBytes(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{zipReader: zr}

	if err := r.validate(); err != nil {
		return nil, err
	}
	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	// Styles and numbering are optional; without them headings fall back
	// to built-in style ids and lists to bullets.
	r.parseStyles()
	r.parseNumbering()
	r.parseCoreProperties()

	return r, nil
}

// Messages returns the conversion notes gathered so far, such as missing
// optional parts or skipped images.
func (r *Reader) Messages() []string {
	return r.messages
}

func (r *Reader) addMessage(format string, args ...any) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}
	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}
	return nil
}

// parseStyles parses the styles definition file.
func (r *Reader) parseStyles() {
	data, err := r.getFileContent("word/styles.xml")
	if err != nil {
		r.styles = NewStyleResolver(nil)
		r.addMessage("word/styles.xml not found; headings are detected from built-in style ids only")
		return
	}

	styles := &stylesXML{}
	if err := xml.Unmarshal(data, styles); err != nil {
		r.styles = NewStyleResolver(nil)
		r.addMessage("word/styles.xml is invalid: %v", err)
		return
	}
	r.styles = NewStyleResolver(styles)
}

// parseNumbering parses the numbering definitions file.
func (r *Reader) parseNumbering() {
	data, err := r.getFileContent("word/numbering.xml")
	if err != nil {
		r.numbering = NewNumberingResolver(nil)
		return
	}

	numbering := &numberingXML{}
	if err := xml.Unmarshal(data, numbering); err != nil {
		r.numbering = NewNumberingResolver(nil)
		r.addMessage("word/numbering.xml is invalid: %v", err)
		return
	}
	r.numbering = NewNumberingResolver(numbering)
}

// parseCoreProperties reads the document title.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent("docProps/core.xml")
	if err != nil {
		return
	}
	props := &corePropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.title = strings.TrimSpace(props.Title)
	}
}

// HTML renders the document body as an HTML document.
func (r *Reader) HTML() (string, error) {
	if r.document == nil {
		return "", fmt.Errorf("document not parsed")
	}

	w := &blockWriter{styles: r.styles, numbering: r.numbering}
	doc := htmlbuild.New(r.title)
	doc.Append(w.writeBlocks(r.document.Body.Elements)...)

	if w.drawings > 0 {
		r.addMessage("%d embedded images or text boxes were not converted", w.drawings)
	}
	return doc.Render()
}

// Convert converts DOCX bytes to HTML and returns the converter messages.
func Convert(data []byte) (string, []string, error) {
	r, err := OpenBytes(data)
	if err != nil {
		return "", nil, err
	}

	out, err := r.HTML()
	if err != nil {
		return "", r.Messages(), err
	}
	return out, r.Messages(), nil
}
