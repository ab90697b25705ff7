package odt

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

const contentHeader = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
  xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0"
  xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"
  xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"
  xmlns:draw="urn:oasis:names:tc:opendocument:xmlns:drawing:1.0"
  xmlns:dc="http://purl.org/dc/elements/1.1/">
`

// buildODT creates a minimal ODT archive in memory. autoStyles goes into
// office:automatic-styles of content.xml; an empty styles argument leaves
// styles.xml out.
func buildODT(t *testing.T, body, autoStyles, styles string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	mw, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		t.Fatalf("creating mimetype: %v", err)
	}
	mw.Write([]byte(MimeType))

	add := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	add("content.xml", contentHeader+
		`<office:automatic-styles>`+autoStyles+`</office:automatic-styles>`+
		`<office:body><office:text>`+body+`</office:text></office:body></office:document-content>`)

	if styles != "" {
		add("styles.xml", `<?xml version="1.0" encoding="UTF-8"?>
<office:document-styles xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
  xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0"
  xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:styles>`+styles+`</office:styles></office:document-styles>`)
	}

	add("meta.xml", `<?xml version="1.0" encoding="UTF-8"?>
<office:document-meta xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
  xmlns:dc="http://purl.org/dc/elements/1.1/">
  <office:meta><dc:title>Analiz Dokümanı</dc:title></office:meta>
</office:document-meta>`)

	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func convert(t *testing.T, data []byte) (string, []string) {
	t.Helper()
	out, msgs, err := Convert(data)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	return out, msgs
}

func TestConvert_OrderAndHeadings(t *testing.T) {
	body := `<text:h text:outline-level="1">Giriş</text:h>
<text:p>İlk <text:span>paragraf</text:span></text:p>
<table:table><table:table-row><table:table-cell><text:p>Hücre</text:p></table:table-cell></table:table-row></table:table>
<text:h text:outline-level="2">Kayıt Kuralları</text:h>
<text:p>Son paragraf</text:p>`

	out, _ := convert(t, buildODT(t, body, "", ""))

	order := []string{"<title>Analiz Dokümanı</title>", "<h1>Giriş</h1>", "<p>İlk paragraf</p>", "<td>Hücre</td>", "<h2>Kayıt Kuralları</h2>", "<p>Son paragraf</p>"}
	last := -1
	for _, want := range order {
		idx := strings.Index(out, want)
		if idx < 0 {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
		if idx < last {
			t.Errorf("%q out of document order", want)
		}
		last = idx
	}
}

func TestConvert_HeadingFromStyles(t *testing.T) {
	styles := `<style:style style:name="Heading_20_1" style:display-name="Heading 1" style:family="paragraph" style:default-outline-level="1"/>
<style:style style:name="Bolum" style:display-name="Başlık 3" style:family="paragraph"/>`
	auto := `<style:style style:name="P1" style:family="paragraph" style:parent-style-name="Heading_20_1"/>`
	body := `<text:p text:style-name="P1">Birinci</text:p>
<text:p text:style-name="Bolum">Üçüncü</text:p>
<text:h text:style-name="Heading_20_1" text:outline-level="2">Düzey iki</text:h>
<text:h>Düzeysiz</text:h>`

	out, msgs := convert(t, buildODT(t, body, auto, styles))

	for _, want := range []string{"<h1>Birinci</h1>", "<h3>Üçüncü</h3>", "<h2>Düzey iki</h2>", "<h1>Düzeysiz</h1>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if len(msgs) != 0 {
		t.Errorf("unexpected messages %v", msgs)
	}
}

func TestConvert_MissingStylesMessage(t *testing.T) {
	_, msgs := convert(t, buildODT(t, `<text:p>metin</text:p>`, "", ""))
	if len(msgs) != 1 || !strings.Contains(msgs[0], "styles.xml") {
		t.Errorf("messages = %v, want one styles.xml note", msgs)
	}
}

func TestConvert_ParagraphText(t *testing.T) {
	body := `<text:p>Bir<text:s text:c="2"/>iki<text:tab/>üç<text:line-break/>alt
   satır<text:note><text:note-citation>1</text:note-citation><text:note-body><text:p>dipnot</text:p></text:note-body></text:note><draw:frame><draw:text-box><text:p>kutu</text:p></draw:text-box></draw:frame></text:p>`

	out, msgs := convert(t, buildODT(t, body, "", ""))

	if !strings.Contains(out, "<p>Bir  iki\tüç<br/>alt satır</p>") {
		t.Errorf("unexpected paragraph rendering:\n%s", out)
	}
	for _, unwanted := range []string{"dipnot", "kutu"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output contains %q", unwanted)
		}
	}
	found := false
	for _, m := range msgs {
		if strings.Contains(m, "1 embedded") {
			found = true
		}
	}
	if !found {
		t.Errorf("messages = %v, want a skipped frame note", msgs)
	}
}

func TestConvert_Lists(t *testing.T) {
	auto := `<text:list-style style:name="L1"><text:list-level-style-number text:level="1" style:num-format="1"/><text:list-level-style-bullet text:level="2"/></text:list-style>`
	body := `<text:list text:style-name="L1">
  <text:list-item><text:p>Bir</text:p></text:list-item>
  <text:list-item><text:p>İki</text:p><text:list><text:list-item><text:p>Alt</text:p></text:list-item></text:list></text:list-item>
</text:list>
<text:list><text:list-item><text:p>Madde</text:p></text:list-item><text:list-item><text:p/></text:list-item></text:list>`

	out, _ := convert(t, buildODT(t, body, auto, ""))

	want := "<ol><li>Bir</li><li><p>İki</p><ul><li>Alt</li></ul></li></ol><ul><li>Madde</li></ul>"
	if !strings.Contains(out, want) {
		t.Errorf("lists not rendered as expected:\n%s", out)
	}
}

func TestConvert_TableSpans(t *testing.T) {
	body := `<table:table table:name="T1">
  <table:table-column table:number-columns-repeated="3"/>
  <table:table-header-rows>
    <table:table-row>
      <table:table-cell><text:p>#</text:p></table:table-cell>
      <table:table-cell table:number-columns-spanned="2"><text:p>Entegrasyon Adı</text:p></table:table-cell>
      <table:covered-table-cell/>
    </table:table-row>
  </table:table-header-rows>
  <table:table-row>
    <table:table-cell table:number-rows-spanned="2"><text:p>1</text:p></table:table-cell>
    <table:table-cell><text:p>A</text:p><text:p>B</text:p></table:table-cell>
    <table:table-cell><table:table><table:table-row><table:table-cell><text:p>iç</text:p></table:table-cell></table:table-row></table:table></table:table-cell>
  </table:table-row>
  <table:table-row>
    <table:covered-table-cell/>
    <table:table-cell><text:p>C</text:p></table:table-cell>
    <table:table-cell/>
  </table:table-row>
  <table:table-row>
    <table:table-cell table:number-columns-repeated="1000"/>
  </table:table-row>
</table:table>`

	out, _ := convert(t, buildODT(t, body, "", ""))

	for _, want := range []string{
		`<tr><th>#</th><th colspan="2">Entegrasyon Adı</th></tr>`,
		`<td>1</td><td><p>A</p><p>B</p></td><td><table><tr><td>iç</td></tr></table></td>`,
		`<tr><td></td><td>C</td><td></td></tr>`,
		`<tr>` + strings.Repeat("<td></td>", maxRepeat) + `</tr>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConvert_SectionsAndIndexes(t *testing.T) {
	body := `<text:table-of-content><text:index-body><text:p>Kayıt Kuralları ..... 3</text:p></text:index-body></text:table-of-content>
<text:section text:name="S1"><text:p>Bölüm içi</text:p></text:section>
<text:soft-page-break/>
<text:p>Sonra</text:p>`

	out, _ := convert(t, buildODT(t, body, "", ""))

	if strings.Contains(out, "..... 3") {
		t.Errorf("table of contents should be skipped:\n%s", out)
	}
	if !strings.Contains(out, "<p>Bölüm içi</p><p>Sonra</p>") {
		t.Errorf("section text missing or out of order:\n%s", out)
	}
}

func TestConvert_Escaping(t *testing.T) {
	out, _ := convert(t, buildODT(t, `<text:p>a &lt; b &amp; &lt;script&gt;</text:p>`, "", ""))
	if !strings.Contains(out, "<p>a &lt; b &amp; &lt;script&gt;</p>") {
		t.Errorf("text not escaped:\n%s", out)
	}
}

func TestDetectBuiltInHeading(t *testing.T) {
	tests := []struct {
		name      string
		isHeading bool
		level     int
	}{
		{"Heading_20_2", true, 2},
		{"Heading 3", true, 3},
		{"Başlık_20_1", true, 1},
		{"BAŞLIK 4", true, 4},
		{"Title", true, 1},
		{"Subtitle", true, 2},
		{"Heading", false, 0},
		{"Text_20_body", false, 0},
		{"", false, 0},
	}
	for _, tt := range tests {
		isHeading, level := detectBuiltInHeading(tt.name)
		if isHeading != tt.isHeading || level != tt.level {
			t.Errorf("detectBuiltInHeading(%q) = %v, %d; want %v, %d", tt.name, isHeading, level, tt.isHeading, tt.level)
		}
	}
}

func TestStyleResolver_Cycle(t *testing.T) {
	auto := &contentStylesXML{Styles: []styleDefXML{
		{Name: "A", ParentStyleName: "B"},
		{Name: "B", ParentStyleName: "A"},
	}}
	sr := NewStyleResolver(auto, nil)
	if got := sr.Resolve("A"); got.IsHeading {
		t.Errorf("Resolve(A) = %+v, want body text", got)
	}
}

func TestOpenBytes_Invalid(t *testing.T) {
	if _, err := OpenBytes([]byte("not a zip")); err == nil {
		t.Error("expected error for invalid archive")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("mimetype")
	w.Write([]byte(MimeType))
	zw.Close()

	_, err := OpenBytes(buf.Bytes())
	if err == nil || !strings.Contains(err.Error(), "content.xml") {
		t.Errorf("err = %v, want missing content.xml", err)
	}
}

func TestOpenBytes_Spreadsheet(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("mimetype")
	w.Write([]byte("application/vnd.oasis.opendocument.spreadsheet"))
	w, _ = zw.Create("content.xml")
	w.Write([]byte(contentHeader + `</office:document-content>`))
	zw.Close()

	if _, err := OpenBytes(buf.Bytes()); err == nil {
		t.Error("expected error for a spreadsheet package")
	}
}

func TestConvert_Title(t *testing.T) {
	out, _, err := Convert(buildODT(t, `<text:h text:outline-level="1">Analiz</text:h>`, "", ""))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !strings.Contains(out, "<title>Analiz Dokümanı</title>") || !strings.Contains(out, "<h1>Analiz</h1>") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
