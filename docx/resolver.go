package docx

import (
	"strconv"
	"strings"
	"unicode"
)

// ResolvedStyle holds what the converter needs to know about a paragraph style.
type ResolvedStyle struct {
	ID   string
	Name string

	IsHeading    bool
	HeadingLevel int // 1-9, 0 if not a heading

	Bold     bool
	FontSize float64 // points, 0 if unknown
}

// StyleResolver resolves paragraph styles with basedOn inheritance.
type StyleResolver struct {
	styles   map[string]*styleDefXML
	resolved map[string]*ResolvedStyle
}

// NewStyleResolver creates a new style resolver from parsed styles.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:   make(map[string]*styleDefXML),
		resolved: make(map[string]*ResolvedStyle),
	}
	if styles == nil {
		return sr
	}
	for i := range styles.Styles {
		style := &styles.Styles[i]
		sr.styles[style.StyleID] = style
	}
	return sr
}

// Resolve returns the resolved style for the given style ID. Unknown ids
// are still checked against the built-in heading ids.
func (sr *StyleResolver) Resolve(styleID string) *ResolvedStyle {
	if resolved, ok := sr.resolved[styleID]; ok {
		return resolved
	}

	resolved := &ResolvedStyle{ID: styleID}
	styleDef, ok := sr.styles[styleID]
	if !ok {
		resolved.IsHeading, resolved.HeadingLevel = detectBuiltInHeading(styleID)
		sr.resolved[styleID] = resolved
		return resolved
	}
	resolved.Name = styleDef.Name.Val

	outline := -1
	for _, sid := range sr.buildInheritanceChain(styleID) {
		def := sr.styles[sid]
		if def.RPr.Bold.XMLName.Local != "" {
			resolved.Bold = def.RPr.Bold.Val != "false" && def.RPr.Bold.Val != "0"
		}
		if size := parseHalfPoints(def.RPr.FontSize.Val); size > 0 {
			resolved.FontSize = size
		}
		if def.PPr.OutlineLvl.Val != "" {
			outline = parseOutlineLevel(def.PPr.OutlineLvl.Val)
		}
	}

	resolved.IsHeading, resolved.HeadingLevel = sr.detectHeading(styleDef, outline)
	sr.resolved[styleID] = resolved
	return resolved
}

// buildInheritanceChain returns style IDs from base to derived.
func (sr *StyleResolver) buildInheritanceChain(styleID string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		visited[current] = true
		def, ok := sr.styles[current]
		if !ok {
			break
		}
		chain = append([]string{current}, chain...)
		current = def.BasedOn.Val
	}
	return chain
}

// detectHeading determines if a style represents a heading, from its id,
// its display name, then its (possibly inherited) outline level.
func (sr *StyleResolver) detectHeading(def *styleDefXML, outline int) (bool, int) {
	if isHeading, level := detectBuiltInHeading(def.StyleID); isHeading {
		return true, level
	}
	if isHeading, level := detectHeadingName(def.Name.Val); isHeading {
		return true, level
	}
	if outline >= 0 && outline <= 8 {
		return true, outline + 1
	}
	return false, 0
}

// headingPrefixes are lowercased style id and name prefixes of heading
// styles. Turkish Word saves "Başlık 1" with the style id "Balk1".
var headingPrefixes = []string{"heading", "başlık", "baslik", "balk", "titre", "überschrift"}

// detectBuiltInHeading checks for Word's built-in heading style IDs.
func detectBuiltInHeading(styleID string) (bool, int) {
	id := strings.ToLower(styleID)
	switch id {
	case "title", "konubal", "konubaşlığı":
		return true, 1
	case "subtitle", "altkonubal":
		return true, 2
	}
	return headingWithLevel(id)
}

// detectHeadingName checks a style display name such as "heading 2" or
// "Başlık 2".
func detectHeadingName(name string) (bool, int) {
	n := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	if n == "title" || n == "konubaşlığı" {
		return true, 1
	}
	return headingWithLevel(n)
}

// headingWithLevel matches a known prefix followed only by a level number.
func headingWithLevel(s string) (bool, int) {
	for _, prefix := range headingPrefixes {
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		rest := s[len(prefix):]
		if rest == "" || strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
			continue
		}
		level, err := strconv.Atoi(rest)
		if err != nil || level < 1 || level > 9 {
			continue
		}
		return true, level
	}
	return false, 0
}

// parseOutlineLevel parses an outline level string to an integer.
// It returns -1 for anything outside 0-8.
func parseOutlineLevel(s string) int {
	level, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || level < 0 || level > 8 {
		return -1
	}
	return level
}

// parseHalfPoints parses a size in half-points to points.
// Word uses half-points for font sizes (e.g., "24" = 12pt).
func parseHalfPoints(s string) float64 {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val / 2
}
