package docx

import (
	"encoding/xml"
	"testing"
)

func TestNewStyleResolver_Nil(t *testing.T) {
	sr := NewStyleResolver(nil)
	if sr == nil {
		t.Fatal("NewStyleResolver(nil) returned nil")
	}

	style := sr.Resolve("")
	if style.IsHeading {
		t.Error("empty style id resolved as heading")
	}
}

func TestStyleResolver_ResolveBuiltInHeading(t *testing.T) {
	sr := NewStyleResolver(nil)

	tests := []struct {
		styleID       string
		wantIsHeading bool
		wantLevel     int
	}{
		{"Heading1", true, 1},
		{"Heading2", true, 2},
		{"heading1", true, 1}, // case insensitive
		{"Title", true, 1},
		{"Subtitle", true, 2},
		{"Balk1", true, 1}, // Turkish Word "Başlık 1"
		{"Balk3", true, 3},
		{"KonuBal", true, 1},
		{"Heading", false, 0},
		{"HeadingChar", false, 0},
		{"Heading10", false, 0},
		{"Normal", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.styleID, func(t *testing.T) {
			style := sr.Resolve(tt.styleID)
			if style.IsHeading != tt.wantIsHeading {
				t.Errorf("IsHeading = %v, want %v", style.IsHeading, tt.wantIsHeading)
			}
			if style.HeadingLevel != tt.wantLevel {
				t.Errorf("HeadingLevel = %v, want %v", style.HeadingLevel, tt.wantLevel)
			}
		})
	}
}

func TestStyleResolver_WithStyles(t *testing.T) {
	styles := &stylesXML{
		Styles: []styleDefXML{
			{
				StyleID: "CustomHeading",
				Type:    "paragraph",
				Name:    valXML{Val: "My Custom Heading"},
				PPr: paragraphPropsXML{
					OutlineLvl: outlineLvlXML{Val: "1"}, // Level 2 heading
				},
				RPr: runPropsXML{
					Bold:     boolXML{XMLName: xml.Name{Local: "b"}, Val: ""},
					FontSize: valXML{Val: "28"}, // 14pt
				},
			},
			{
				StyleID: "DerivedHeading",
				Type:    "paragraph",
				Name:    valXML{Val: "Derived"},
				BasedOn: valXML{Val: "CustomHeading"},
			},
			{
				StyleID: "TrHeading",
				Type:    "paragraph",
				Name:    valXML{Val: "Başlık 4"},
			},
			{
				StyleID: "Body",
				Type:    "paragraph",
				Name:    valXML{Val: "Body Text"},
				RPr: runPropsXML{
					Bold: boolXML{XMLName: xml.Name{Local: "b"}, Val: "0"},
				},
			},
		},
	}
	sr := NewStyleResolver(styles)

	tests := []struct {
		styleID   string
		heading   bool
		level     int
		bold      bool
		fontSize  float64
		styleName string
	}{
		{"CustomHeading", true, 2, true, 14, "My Custom Heading"},
		{"DerivedHeading", true, 2, true, 14, "Derived"},
		{"TrHeading", true, 4, false, 0, "Başlık 4"},
		{"Body", false, 0, false, 0, "Body Text"},
	}

	for _, tt := range tests {
		t.Run(tt.styleID, func(t *testing.T) {
			style := sr.Resolve(tt.styleID)
			if style.IsHeading != tt.heading || style.HeadingLevel != tt.level {
				t.Errorf("heading = %v/%d, want %v/%d", style.IsHeading, style.HeadingLevel, tt.heading, tt.level)
			}
			if style.Bold != tt.bold {
				t.Errorf("Bold = %v, want %v", style.Bold, tt.bold)
			}
			if style.FontSize != tt.fontSize {
				t.Errorf("FontSize = %v, want %v", style.FontSize, tt.fontSize)
			}
			if style.Name != tt.styleName {
				t.Errorf("Name = %q, want %q", style.Name, tt.styleName)
			}
		})
	}

	// Cached
	if sr.Resolve("CustomHeading") != sr.Resolve("CustomHeading") {
		t.Error("Resolve did not cache the resolved style")
	}
}

func TestStyleResolver_InheritanceCycle(t *testing.T) {
	sr := NewStyleResolver(&stylesXML{
		Styles: []styleDefXML{
			{StyleID: "A", BasedOn: valXML{Val: "B"}},
			{StyleID: "B", BasedOn: valXML{Val: "A"}},
		},
	})
	if chain := sr.buildInheritanceChain("A"); len(chain) != 2 {
		t.Errorf("chain = %v, want 2 entries", chain)
	}
}

func TestParseOutlineLevel(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"0", 0},
		{"8", 8},
		{"9", -1},
		{"", -1},
		{"x", -1},
		{" 2 ", 2},
	}
	for _, tt := range tests {
		if got := parseOutlineLevel(tt.input); got != tt.want {
			t.Errorf("parseOutlineLevel(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestNumberingResolver_ResolveType(t *testing.T) {
	nr := NewNumberingResolver(&numberingXML{
		AbstractNums: []abstractNumXML{
			{AbstractNumID: "0", Levels: []lvlXML{
				{ILvl: "0", NumFmt: valXML{Val: "decimal"}},
				{ILvl: "1", NumFmt: valXML{Val: "bullet"}},
			}},
		},
		Nums: []numXML{{NumID: "5", AbstractNumID: valXML{Val: "0"}}},
	})

	if got := nr.ResolveType("5", 0); got != ListTypeOrdered {
		t.Errorf("level 0 = %v, want ordered", got)
	}
	if got := nr.ResolveType("5", 1); got != ListTypeUnordered {
		t.Errorf("level 1 = %v, want unordered", got)
	}
	if got := nr.ResolveType("99", 0); got != ListTypeUnordered {
		t.Errorf("unknown numId = %v, want unordered", got)
	}
	if ListTypeOrdered.Tag() != "ol" || ListTypeUnordered.Tag() != "ul" {
		t.Error("unexpected list tags")
	}
}
