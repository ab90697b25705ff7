package export

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/reqdoc/catalog"
	"github.com/tsawler/reqdoc/dom"
	"github.com/tsawler/reqdoc/extract"
	"github.com/tsawler/reqdoc/internal/htmlbuild"
)

// Report labels.
const (
	mdTitle    = "Analiz Çıktısı"
	mdStatus   = "Durum: %s (%s)"
	mdWarning  = "Uyarı: "
	mdError    = "Hata: "
	mdNoRecord = "Kayıt yok."
)

// exportMarkdown renders the report as HTML and converts it, so escaping
// of table cells is left to the Markdown converter.
func exportMarkdown(doc Document, w io.Writer) error {
	h, err := reportHTML(doc)
	if err != nil {
		return err
	}
	md, err := dom.MarkdownFromHTML(h)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, md+"\n"); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}

func reportHTML(doc Document) (string, error) {
	title := doc.Name
	if title == "" {
		title = mdTitle
	}
	b := htmlbuild.New(title)
	b.Append(htmlbuild.Heading(1, title))
	for _, r := range doc.Sections {
		b.Append(sectionNodes(r)...)
	}
	return b.Render()
}

func sectionNodes(r extract.Result) []*html.Node {
	nodes := []*html.Node{
		htmlbuild.Heading(2, r.Title),
		htmlbuild.Paragraph(fmt.Sprintf(mdStatus, r.Outcome, r.Mode)),
	}

	if notes := notesList(r); notes != nil {
		nodes = append(nodes, notes)
	}
	if !r.Found {
		return nodes
	}

	if r.Kind != catalog.KindTable {
		for _, para := range strings.Split(r.Content, "\n") {
			if strings.TrimSpace(para) != "" {
				nodes = append(nodes, htmlbuild.Paragraph(para))
			}
		}
		return nodes
	}

	if len(r.Rows) == 0 {
		return append(nodes, htmlbuild.Paragraph(mdNoRecord))
	}
	return append(nodes, rowsTable(r))
}

func notesList(r extract.Result) *html.Node {
	if len(r.Warnings) == 0 && len(r.Errors) == 0 {
		return nil
	}
	ul := htmlbuild.Element("ul")
	add := func(prefix string, msgs []string) {
		for _, m := range msgs {
			li := htmlbuild.Element("li")
			htmlbuild.AppendText(li, prefix+m)
			ul.AppendChild(li)
		}
	}
	add(mdError, r.Errors)
	add(mdWarning, r.Warnings)
	return ul
}

// rowsTable renders rows with the fields in catalog order.
func rowsTable(r extract.Result) *html.Node {
	table := htmlbuild.Element("table")
	head := htmlbuild.Element("tr")
	for _, f := range append([]string{"id"}, r.Fields...) {
		th := htmlbuild.Cell(true, 1)
		th.AppendChild(htmlbuild.Text(f))
		head.AppendChild(th)
	}
	table.AppendChild(head)

	for _, row := range r.Rows {
		tr := htmlbuild.Element("tr")
		values := []string{row.ID}
		for _, f := range r.Fields {
			values = append(values, row.Get(f))
		}
		for _, v := range values {
			td := htmlbuild.Cell(false, 1)
			td.AppendChild(htmlbuild.Text(strings.ReplaceAll(v, "\n", " ")))
			tr.AppendChild(td)
		}
		table.AppendChild(tr)
	}
	return table
}
