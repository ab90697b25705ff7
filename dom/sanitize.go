package dom

import (
	"github.com/microcosm-cc/bluemonday"
)

// policy keeps document structure (headings, paragraphs, lists, tables and
// inline emphasis) and drops everything else, including script and style
// bodies. Policies are safe for concurrent use once built.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "div", "span", "br", "hr", "blockquote", "pre", "code",
		"section", "article", "main", "header", "footer",
		"ul", "ol", "li", "dl", "dt", "dd",
		"table", "caption", "thead", "tbody", "tfoot", "tr", "td", "th",
		"b", "strong", "i", "em", "u", "s", "sub", "sup",
	)
	p.AllowAttrs("colspan", "rowspan").Matching(bluemonday.Integer).OnElements("td", "th")
	return p
}

// Sanitize strips markup the extraction engine never reads from an HTML
// string. Text content of removed wrapper elements is kept.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}
