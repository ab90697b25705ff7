package htmldoc

// NavigationExclusionMode controls how navigation, headers and footers of
// web pages are removed before section extraction.
type NavigationExclusionMode int

const (
	// NavigationExclusionNone keeps all content.
	NavigationExclusionNone NavigationExclusionMode = iota

	// NavigationExclusionExplicit removes <nav>, <aside> and the ARIA
	// navigation roles. <header> and <footer> are removed only when they
	// are direct children of <body> or of a single top-level wrapper.
	NavigationExclusionExplicit

	// NavigationExclusionStandard (default) adds class and id pattern
	// matching such as "navbar", "menu" or "site-footer".
	NavigationExclusionStandard

	// NavigationExclusionAggressive adds a link-density check: containers
	// whose text is mostly links are removed.
	NavigationExclusionAggressive
)

// String returns the mode name used in configuration.
func (m NavigationExclusionMode) String() string {
	switch m {
	case NavigationExclusionNone:
		return "none"
	case NavigationExclusionExplicit:
		return "explicit"
	case NavigationExclusionAggressive:
		return "aggressive"
	default:
		return "standard"
	}
}

// ParseNavigationExclusionMode parses a mode name; unknown names give the
// standard mode and false.
func ParseNavigationExclusionMode(s string) (NavigationExclusionMode, bool) {
	for _, m := range []NavigationExclusionMode{
		NavigationExclusionNone, NavigationExclusionExplicit,
		NavigationExclusionStandard, NavigationExclusionAggressive,
	} {
		if m.String() == s {
			return m, true
		}
	}
	return NavigationExclusionStandard, false
}
