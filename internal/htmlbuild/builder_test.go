package htmlbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Render(t *testing.T) {
	d := New("Başlık <1>")
	d.Append(Heading(2, "Giriş"), Paragraph("a & b\nikinci"), nil)

	row := Element("tr")
	row.AppendChild(Cell(true, 2))
	row.AppendChild(Cell(false, 1))
	table := Element("table")
	table.AppendChild(row)
	d.Append(table)

	out, err := d.Render()
	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>Başlık &lt;1&gt;</title>")
	assert.Contains(t, out, "<h2>Giriş</h2>")
	assert.Contains(t, out, "<p>a &amp; b<br/>ikinci</p>")
	assert.Contains(t, out, `<th colspan="2"></th><td></td>`)
}

func TestHeading_Clamped(t *testing.T) {
	assert.Equal(t, "h1", Heading(0, "x").Data)
	assert.Equal(t, "h6", Heading(9, "x").Data)
	assert.Equal(t, "h3", Heading(3, "x").Data)
}

func TestAppendText(t *testing.T) {
	p := Element("p")
	AppendText(p, "\nsatır\n")

	var kinds []string
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		kinds = append(kinds, c.Data)
	}
	assert.Equal(t, []string{"br", "satır", "br"}, kinds)
}
