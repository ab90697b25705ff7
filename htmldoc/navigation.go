package htmldoc

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// boilerplatePattern matches class and id values of navigation and page
// chrome, as whole words.
var boilerplatePattern = regexp.MustCompile(
	`(?i)(^|[^a-z])(nav|navbar|navigation|menu|topnav|sidenav|breadcrumb|breadcrumbs|` +
		`site-header|page-header|masthead|banner|` +
		`footer|site-footer|page-footer|colophon|` +
		`sidebar|widget-area|widget|aside|cookie-banner)([^a-z]|$)`)

// Link density above which a container counts as navigation, and the
// minimum number of links for the check to apply.
const (
	maxLinkDensity = 0.6
	minNavLinks    = 4
)

// boilerplateFilter decides which elements of a parsed page are removed.
type boilerplateFilter struct {
	mode    NavigationExclusionMode
	body    *html.Node
	wrapper *html.Node // single top-level div or main, if present
}

func newBoilerplateFilter(mode NavigationExclusionMode, body *html.Node) *boilerplateFilter {
	return &boilerplateFilter{
		mode:    mode,
		body:    body,
		wrapper: topLevelWrapper(body),
	}
}

// topLevelWrapper returns the only structural child of body, handling the
// common <body><div id="wrapper">...</div></body> layout.
func topLevelWrapper(body *html.Node) *html.Node {
	var wrapper *html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Div, atom.Main:
			if wrapper != nil {
				return nil
			}
			wrapper = c
		case atom.Script, atom.Style, atom.Noscript, atom.Template:
		default:
			return nil
		}
	}
	return wrapper
}

// strip removes excluded elements below n and returns how many were
// removed. Removed subtrees are not visited.
func (f *boilerplateFilter) strip(n *html.Node) int {
	removed := 0
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if f.excluded(c) {
			n.RemoveChild(c)
			removed++
		} else {
			removed += f.strip(c)
		}
		c = next
	}
	return removed
}

// excluded reports whether n is boilerplate under the filter's mode.
func (f *boilerplateFilter) excluded(n *html.Node) bool {
	if n.Type != html.ElementNode || f.mode == NavigationExclusionNone {
		return false
	}
	if f.explicit(n) {
		return true
	}
	if f.mode >= NavigationExclusionStandard && f.matchesPattern(n) {
		return true
	}
	return f.mode >= NavigationExclusionAggressive && linkHeavy(n)
}

// explicit checks semantic HTML5 elements and ARIA roles.
func (f *boilerplateFilter) explicit(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Nav, atom.Aside:
		return true
	case atom.Header, atom.Footer:
		return f.topLevel(n)
	}

	switch attr(n, "role") {
	case "navigation", "complementary":
		return true
	case "banner", "contentinfo":
		return f.topLevel(n)
	}
	return false
}

// topLevel reports whether n is a direct child of body or of the single
// top-level wrapper.
func (f *boilerplateFilter) topLevel(n *html.Node) bool {
	p := n.Parent
	return p != nil && (p == f.body || (f.wrapper != nil && p == f.wrapper))
}

func (f *boilerplateFilter) matchesPattern(n *html.Node) bool {
	for _, key := range []string{"class", "id"} {
		if v := attr(n, key); v != "" && boilerplatePattern.MatchString(v) {
			return true
		}
	}
	return false
}

// linkHeavy reports whether a block container's text is mostly links.
func linkHeavy(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Div, atom.Section, atom.Ul, atom.Ol:
	default:
		return false
	}

	total, linked, links := linkStats(n, false)
	if total == 0 || links < minNavLinks {
		return false
	}
	return float64(linked)/float64(total) > maxLinkDensity
}

// linkStats returns the trimmed text length below n, the part of it
// inside links, and the number of links.
func linkStats(n *html.Node, inLink bool) (total, linked, links int) {
	if n.Type == html.TextNode {
		l := len(strings.TrimSpace(n.Data))
		if inLink {
			return l, l, 0
		}
		return l, 0, 0
	}
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		links++
		inLink = true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		t, l, k := linkStats(c, inLink)
		total += t
		linked += l
		links += k
	}
	return total, linked, links
}

// attr returns the value of an attribute on a node, or empty string if not found.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
