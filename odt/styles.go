package odt

import "encoding/xml"

// stylesXML represents the structure of styles.xml
type stylesXML struct {
	XMLName    xml.Name         `xml:"document-styles"`
	Styles     *officeStylesXML `xml:"styles"`
	AutoStyles *officeStylesXML `xml:"automatic-styles"`
}

// contentStylesXML represents automatic styles in content.xml
type contentStylesXML struct {
	Styles     []styleDefXML  `xml:"style"`
	ListStyles []listStyleXML `xml:"list-style"`
}

// officeStylesXML represents the office:styles and office:automatic-styles
// elements of styles.xml.
type officeStylesXML struct {
	Styles     []styleDefXML  `xml:"style"`
	ListStyles []listStyleXML `xml:"list-style"`
}

// styleDefXML represents a style definition (<style:style>).
type styleDefXML struct {
	Name                string `xml:"name,attr"`
	Family              string `xml:"family,attr"`
	ParentStyleName     string `xml:"parent-style-name,attr"`
	DisplayName         string `xml:"display-name,attr"`
	DefaultOutlineLevel string `xml:"default-outline-level,attr"`
}

// listStyleXML represents a list style (<text:list-style>).
type listStyleXML struct {
	Name         string         `xml:"name,attr"`
	BulletLevels []listLevelXML `xml:"list-level-style-bullet"`
	NumberLevels []listLevelXML `xml:"list-level-style-number"`
}

// listLevelXML represents one level of a list style.
type listLevelXML struct {
	Level     string `xml:"level,attr"`
	NumFormat string `xml:"num-format,attr"` // "1", "a", "A", "i", "I"; empty for no number
}

// metaXML represents document metadata from meta.xml.
type metaXML struct {
	XMLName xml.Name    `xml:"document-meta"`
	Meta    metaInfoXML `xml:"meta"`
}

// metaInfoXML represents the office:meta element.
type metaInfoXML struct {
	Title string `xml:"title"`
}
