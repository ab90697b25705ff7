package locate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/reqdoc/catalog"
	"github.com/tsawler/reqdoc/dom"
)

func parse(t *testing.T, s string) *dom.Document {
	t.Helper()
	d, err := dom.ParseString(s)
	require.NoError(t, err)
	return d
}

func section(search []string, exclude []string) *catalog.Section {
	return &catalog.Section{
		ID:             "record_rules",
		Title:          "İşlem Kayıt Kuralları",
		Kind:           catalog.KindFreeText,
		SearchTerms:    search,
		ExclusionTerms: exclude,
	}
}

func TestLocator_Find(t *testing.T) {
	long := strings.Repeat("kayıt kuralları uzun metin ", 10)

	tests := []struct {
		name    string
		html    string
		search  []string
		exclude []string
		want    string
		term    string
		heading bool
	}{
		{
			name:    "heading match",
			html:    `<p>Giriş</p><h2>3. X İşlemi Kayıt Kuralları</h2><p>metin</p>`,
			search:  []string{"kayit kurallari"},
			want:    "3. X İşlemi Kayıt Kuralları",
			term:    "kayit kurallari",
			heading: true,
		},
		{
			name:    "headings before block elements",
			html:    `<p>Kayıt kuralları</p><h3>Kayıt Kuralları</h3>`,
			search:  []string{"kayit kurallari"},
			want:    "Kayıt Kuralları",
			term:    "kayit kurallari",
			heading: true,
		},
		{
			name:    "first heading in document order wins",
			html:    `<h2>İş Kuralları</h2><h1>Kayıt Kuralları</h1>`,
			search:  []string{"kayit kurallari", "is kurallari"},
			want:    "İş Kuralları",
			term:    "is kurallari",
			heading: true,
		},
		{
			name:   "fallback to paragraph",
			html:   `<h1>Başka</h1><p><b>KAYIT KURALLARI</b></p>`,
			search: []string{"kayit kurallari"},
			want:   "KAYIT KURALLARI",
			term:   "kayit kurallari",
		},
		{
			name:   "fallback skips long prose",
			html:   `<p>` + long + `</p><td>Kayıt kuralları</td>`,
			search: []string{"kayit kurallari"},
			want:   "",
		},
		{
			name:   "fallback to table cell",
			html:   `<p>` + long + `</p><table><tr><td>Kayıt kuralları</td></tr></table>`,
			search: []string{"kayit kurallari"},
			want:   "Kayıt kuralları",
			term:   "kayit kurallari",
		},
		{
			name:    "exclusion skips candidate",
			html:    `<h2>Muhasebe Kayıt Kuralları</h2><h2>Kayıt Kuralları</h2>`,
			search:  []string{"kayit kurallari"},
			exclude: []string{"muhasebe kayit"},
			want:    "Kayıt Kuralları",
			term:    "kayit kurallari",
			heading: true,
		},
		{
			name:   "no match",
			html:   `<h1>Kapsam</h1><p>Metin</p>`,
			search: []string{"kayit kurallari"},
			want:   "",
		},
	}

	l := NewLocator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parse(t, tt.html)
			h, ok := l.Find(d, section(tt.search, tt.exclude))
			if tt.want == "" {
				assert.False(t, ok)
				assert.Nil(t, h)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, d.Text(h.Node))
			assert.Equal(t, tt.term, h.Term)
			assert.Equal(t, tt.heading, h.Heading)
		})
	}
}

func TestLocator_SkipsElementsHoldingTables(t *testing.T) {
	d := parse(t, `<div>Giriş metni<table><tr><td>Kayıt kuralları</td></tr></table></div>`)
	h, ok := NewLocator().Find(d, section([]string{"kayit kurallari"}, nil))
	require.True(t, ok)
	assert.Equal(t, "td", h.Node.Data, "only the cell is a table-free candidate")
	assert.False(t, d.ContainsTable(h.Node))
}

func collect(t *testing.T, html string) Collected {
	t.Helper()
	d := parse(t, html)
	require.NotEmpty(t, d.Headings())
	return NewCollector().Collect(d, d.Headings()[0])
}

func TestCollector_Collect(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "three paragraphs then table",
			html: `<h2>Kayıt Kuralları</h2><p>Bir.</p><p>İki.</p><p>Üç.</p><table><tr><td>t</td></tr></table><p>Dört.</p>`,
			want: []string{"Bir.", "İki.", "Üç."},
		},
		{
			name: "stops at next heading",
			html: `<h2>Kayıt Kuralları</h2><p>Bir.</p><h2>Sonraki Bölüm</h2><p>İki.</p>`,
			want: []string{"Bir."},
		},
		{
			name: "walks past short heading",
			html: `<h2>Kayıt Kuralları</h2><h3>1.</h3><p>Bir.</p>`,
			want: []string{"Bir."},
		},
		{
			name: "stops at uppercase title",
			html: `<h2>Kayıt Kuralları</h2><p>Bir.</p><p>EKRAN TASARIMI</p><p>İki.</p>`,
			want: []string{"Bir."},
		},
		{
			name: "uppercase sentence is not a title",
			html: `<h2>Kayıt Kuralları</h2><p>KAYIT ZORUNLUDUR.</p>`,
			want: []string{"KAYIT ZORUNLUDUR."},
		},
		{
			name: "skips tables and short text",
			html: `<h2>Kayıt Kuralları</h2><table><tr><td>Tablo metni</td></tr></table><p>-</p><div><table><tr><td>x</td></tr></table></div><p>Bir.</p>`,
			want: []string{"Bir."},
		},
		{
			name: "empty section",
			html: `<h2>Kayıt Kuralları</h2><h2>Sonraki Bölüm</h2><p>Bir.</p>`,
			want: nil,
		},
		{
			name: "climbs out of wrapper",
			html: `<div><h2>Kayıt Kuralları</h2></div><div><p>Bir.</p></div>`,
			want: []string{"Bir."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, tt.html)
			assert.Equal(t, tt.want, got.Paragraphs)
			assert.Equal(t, strings.Join(tt.want, "\n\n"), got.Content)
		})
	}
}

func TestCollector_Budget(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<h2>Kayıt Kuralları</h2>")
	for i := 0; i < 25; i++ {
		sb.WriteString("<p>-</p>")
	}
	sb.WriteString("<p>Geç kalan paragraf.</p>")

	got := collect(t, sb.String())
	assert.Empty(t, got.Paragraphs)
}

func TestCollector_FindTable(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		found bool
	}{
		{"direct", `<h2>Entegrasyonlar</h2><p>Liste aşağıdadır.</p><table><tr><td>x</td></tr></table>`, true},
		{"wrapped", `<h2>Entegrasyonlar</h2><div><p>a</p><table><tr><td>x</td></tr></table></div>`, true},
		{"after next heading", `<h2>Entegrasyonlar</h2><h2>Sonraki Bölüm</h2><table><tr><td>x</td></tr></table>`, false},
		{"none", `<h2>Entegrasyonlar</h2><p>Yok.</p>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parse(t, tt.html)
			table := NewCollector().FindTable(d, d.Headings()[0])
			if !tt.found {
				assert.Nil(t, table)
				return
			}
			require.NotNil(t, table)
			assert.True(t, dom.IsTable(table))
		})
	}
}

func TestCollector_LooksLikeTitle(t *testing.T) {
	c := NewCollector()
	tests := []struct {
		text string
		want bool
	}{
		{"EKRAN TASARIMI", true},
		{"ÖZET", false},
		{"EKRAN TASARIMI:", false},
		{"Ekran Tasarımı", false},
		{"12345678", false},
		{"5. İŞ AKIŞI", true},
		{strings.Repeat("A", 60), false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, c.looksLikeTitle(tt.text, len([]rune(tt.text))))
		})
	}
}
