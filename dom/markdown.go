package dom

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
}

// Markdown renders the document as Markdown, tables included. It is meant
// for inspecting what the converters produced.
func (d *Document) Markdown() (string, error) {
	h, err := d.HTML()
	if err != nil {
		return "", err
	}
	return MarkdownFromHTML(h)
}

// MarkdownFromHTML converts an HTML string to Markdown.
func MarkdownFromHTML(h string) (string, error) {
	md, err := newMarkdownConverter().ConvertString(h)
	if err != nil {
		return "", fmt.Errorf("converting to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}
