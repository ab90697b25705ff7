package odt

import (
	"strconv"
	"strings"
)

// ResolvedStyle contains the resolved heading properties of a paragraph
// style.
type ResolvedStyle struct {
	Name         string
	IsHeading    bool
	HeadingLevel int // 1-9, 0 if not a heading
}

// StyleResolver resolves styles with inheritance support.
type StyleResolver struct {
	styles     map[string]*styleDefXML
	listStyles map[string]*listStyleXML
	resolved   map[string]*ResolvedStyle
}

// NewStyleResolver creates a new style resolver from parsed styles.
// Automatic styles from content.xml override those from styles.xml.
func NewStyleResolver(contentStyles *contentStylesXML, docStyles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:     make(map[string]*styleDefXML),
		listStyles: make(map[string]*listStyleXML),
		resolved:   make(map[string]*ResolvedStyle),
	}

	if docStyles != nil {
		sr.add(docStyles.Styles)
		sr.add(docStyles.AutoStyles)
	}
	if contentStyles != nil {
		sr.add(&officeStylesXML{Styles: contentStyles.Styles, ListStyles: contentStyles.ListStyles})
	}
	return sr
}

func (sr *StyleResolver) add(s *officeStylesXML) {
	if s == nil {
		return
	}
	for i := range s.Styles {
		sr.styles[s.Styles[i].Name] = &s.Styles[i]
	}
	for i := range s.ListStyles {
		sr.listStyles[s.ListStyles[i].Name] = &s.ListStyles[i]
	}
}

// Resolve returns the resolved style for the given style name. Unknown
// names are checked against the built-in heading names.
func (sr *StyleResolver) Resolve(styleName string) *ResolvedStyle {
	if resolved, ok := sr.resolved[styleName]; ok {
		return resolved
	}

	resolved := &ResolvedStyle{Name: styleName}
	sr.resolved[styleName] = resolved

	// Walk from the style to its ancestors; the nearest outline level or
	// heading name wins.
	visited := make(map[string]bool)
	for current := styleName; current != "" && !visited[current]; {
		visited[current] = true

		def, ok := sr.styles[current]
		if !ok {
			resolved.IsHeading, resolved.HeadingLevel = detectBuiltInHeading(current)
			break
		}
		if level := parseOutlineLevel(def.DefaultOutlineLevel); level > 0 {
			resolved.IsHeading, resolved.HeadingLevel = true, level
			break
		}
		if ok, level := detectBuiltInHeading(def.Name); ok {
			resolved.IsHeading, resolved.HeadingLevel = true, level
			break
		}
		if ok, level := detectBuiltInHeading(def.DisplayName); ok {
			resolved.IsHeading, resolved.HeadingLevel = true, level
			break
		}
		current = def.ParentStyleName
	}
	return resolved
}

// headingPrefixes are heading style names in the languages office suites
// localize them to.
var headingPrefixes = []string{"heading", "başlık", "başlik", "baslik", "titre", "überschrift"}

// detectBuiltInHeading checks for common heading style names such as
// "Heading_20_1" or "Başlık 2".
func detectBuiltInHeading(styleName string) (bool, int) {
	name := strings.ReplaceAll(styleName, "_20_", "")
	name = strings.ToLower(strings.ReplaceAll(name, " ", ""))

	switch name {
	case "title", "konubaşlığı", "konubasligi":
		return true, 1
	case "subtitle", "altkonubaşlığı", "altkonubasligi":
		return true, 2
	}

	for _, prefix := range headingPrefixes {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		if level, err := strconv.Atoi(rest); err == nil && level >= 1 && level <= 9 {
			return true, level
		}
	}
	return false, 0
}

// parseOutlineLevel parses an ODF outline level (1-10), returning 0 when
// absent or out of range.
func parseOutlineLevel(s string) int {
	level, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || level < 1 || level > 10 {
		return 0
	}
	return level
}
