package docx

import "encoding/xml"

// stylesXML represents the structure of word/styles.xml
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	XMLName xml.Name          `xml:"style"`
	Type    string            `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string            `xml:"styleId,attr"`
	Name    valXML            `xml:"name"`
	BasedOn valXML            `xml:"basedOn"`
	PPr     paragraphPropsXML `xml:"pPr"`
	RPr     runPropsXML       `xml:"rPr"`
}

// numberingXML represents word/numbering.xml
type numberingXML struct {
	XMLName      xml.Name         `xml:"numbering"`
	AbstractNums []abstractNumXML `xml:"abstractNum"`
	Nums         []numXML         `xml:"num"`
}

// abstractNumXML represents an abstract numbering definition.
type abstractNumXML struct {
	AbstractNumID string   `xml:"abstractNumId,attr"`
	Levels        []lvlXML `xml:"lvl"`
}

// lvlXML represents a numbering level.
type lvlXML struct {
	ILvl   string `xml:"ilvl,attr"`
	NumFmt valXML `xml:"numFmt"` // decimal, bullet, lowerLetter, upperLetter, lowerRoman, upperRoman
}

// numXML represents a numbering instance.
type numXML struct {
	NumID         string `xml:"numId,attr"`
	AbstractNumID valXML `xml:"abstractNumId"`
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata)
type corePropertiesXML struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
}
