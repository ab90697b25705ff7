// Package odt converts ODT (OpenDocument Text) documents to HTML.
//
// Headings come from text:h elements and from paragraph styles with an
// outline level or a heading name. Lists become ul or ol according to
// their list style, and table spans are kept as colspan.
package odt

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/reqdoc/internal/htmlbuild"
)

// MimeType is the content of the mimetype entry of an ODT package.
const MimeType = "application/vnd.oasis.opendocument.text"

// Reader provides access to ODT document content.
type Reader struct {
	zipReader *zip.Reader

	content       *documentXML
	docStyles     *stylesXML
	styleResolver *StyleResolver
	title         string

	messages []string
}

// OpenBytes reads an ODT document held in memory.
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

	// styles.xml is optional but usually present.
	r.parseStyles()

	if err := r.parseContent(); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	r.styleResolver = NewStyleResolver(r.content.AutoStyles, r.docStyles)

	r.parseMetadata()
	return r, nil
}

// Messages returns the conversion notes gathered so far.
func (r *Reader) Messages() []string {
	return r.messages
}

func (r *Reader) addMessage(format string, args ...any) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

// validate checks that required ODT files exist and that the package is a
// text document when it declares a mimetype.
func (r *Reader) validate() error {
	if _, err := r.getFileContent("content.xml"); err != nil {
		return fmt.Errorf("missing required file: content.xml")
	}
	if mt, err := r.getFileContent("mimetype"); err == nil {
		if got := strings.TrimSpace(string(mt)); got != MimeType {
			return fmt.Errorf("unsupported OpenDocument type %q", got)
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

// parseStyles parses the styles.xml file.
func (r *Reader) parseStyles() {
	data, err := r.getFileContent("styles.xml")
	if err != nil {
		r.addMessage("styles.xml not found; headings are detected from text:h elements and style names only")
		return
	}
	styles := &stylesXML{}
	if err := xml.Unmarshal(data, styles); err != nil {
		r.addMessage("styles.xml is invalid: %v", err)
		return
	}
	r.docStyles = styles
}

// parseContent parses the content.xml file.
func (r *Reader) parseContent() error {
	data, err := r.getFileContent("content.xml")
	if err != nil {
		return err
	}
	r.content = &documentXML{}
	if err := xml.Unmarshal(data, r.content); err != nil {
		return fmt.Errorf("unmarshaling content.xml: %w", err)
	}
	return nil
}

// parseMetadata parses the meta.xml file.
func (r *Reader) parseMetadata() {
	data, err := r.getFileContent("meta.xml")
	if err != nil {
		return
	}
	meta := &metaXML{}
	if xml.Unmarshal(data, meta) == nil {
		r.title = strings.TrimSpace(meta.Meta.Title)
	}
}

// HTML renders the document body as an HTML document.
func (r *Reader) HTML() (string, error) {
	if r.content == nil {
		return "", fmt.Errorf("document not parsed")
	}

	w := &blockWriter{styles: r.styleResolver}
	doc := htmlbuild.New(r.title)
	doc.Append(w.writeBlocks(r.content.Body.Text.Elements)...)

	if w.drawings > 0 {
		r.addMessage("%d embedded images or frames were not converted", w.drawings)
	}
	return doc.Render()
}

// Convert converts ODT bytes to HTML and returns the converter messages.
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
