package odt

import "strconv"

// ListType represents the type of list.
type ListType int

const (
	ListTypeUnordered ListType = iota // Bullet list
	ListTypeOrdered                   // Numbered list
)

// Tag returns the HTML list element for the type.
func (t ListType) Tag() string {
	if t == ListTypeOrdered {
		return "ol"
	}
	return "ul"
}

// ResolveListType returns the list type of a list style at a 1-based
// level. Unknown styles are bullet lists.
func (sr *StyleResolver) ResolveListType(styleName string, level int) ListType {
	ls, ok := sr.listStyles[styleName]
	if !ok {
		return ListTypeUnordered
	}
	want := strconv.Itoa(level)
	for _, lvl := range ls.NumberLevels {
		if lvl.Level == want && lvl.NumFormat != "" {
			return ListTypeOrdered
		}
	}
	return ListTypeUnordered
}
