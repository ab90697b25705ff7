package docx

import (
	"strconv"
)

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

// NumberingResolver resolves numbering definitions from numbering.xml.
type NumberingResolver struct {
	abstractNums map[string]*abstractNumXML // abstractNumId -> definition
	numMappings  map[string]string          // numId -> abstractNumId
}

// NewNumberingResolver creates a resolver from parsed numbering.xml.
func NewNumberingResolver(numbering *numberingXML) *NumberingResolver {
	nr := &NumberingResolver{
		abstractNums: make(map[string]*abstractNumXML),
		numMappings:  make(map[string]string),
	}
	if numbering == nil {
		return nr
	}

	for i := range numbering.AbstractNums {
		an := &numbering.AbstractNums[i]
		nr.abstractNums[an.AbstractNumID] = an
	}
	for _, num := range numbering.Nums {
		nr.numMappings[num.NumID] = num.AbstractNumID.Val
	}
	return nr
}

// ResolveType returns the list type of a numId at a level. Unknown
// numbering defaults to a bullet list.
func (nr *NumberingResolver) ResolveType(numID string, level int) ListType {
	abstractID, ok := nr.numMappings[numID]
	if !ok {
		return ListTypeUnordered
	}
	abstractNum, ok := nr.abstractNums[abstractID]
	if !ok {
		return ListTypeUnordered
	}

	levelStr := strconv.Itoa(level)
	for _, lvl := range abstractNum.Levels {
		if lvl.ILvl != levelStr {
			continue
		}
		switch lvl.NumFmt.Val {
		case "decimal", "decimalZero", "lowerLetter", "upperLetter", "lowerRoman", "upperRoman":
			return ListTypeOrdered
		}
		return ListTypeUnordered
	}
	return ListTypeUnordered
}

// IsListParagraph returns true if the paragraph has numbering properties.
// numId 0 removes numbering inherited from a style.
func IsListParagraph(props paragraphPropsXML) bool {
	return props.NumPr.NumID.Val != "" && props.NumPr.NumID.Val != "0"
}

// listLevel returns the paragraph's 0-based list level.
func listLevel(props paragraphPropsXML) int {
	level, err := strconv.Atoi(props.NumPr.ILvl.Val)
	if err != nil || level < 0 {
		return 0
	}
	return level
}
