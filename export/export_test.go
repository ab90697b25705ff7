package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/reqdoc/catalog"
	"github.com/tsawler/reqdoc/extract"
	"github.com/tsawler/reqdoc/format"
	"github.com/tsawler/reqdoc/tables"
)

func testDocument() Document {
	return Document{
		Name:   "analiz.docx",
		Format: format.DOCX,
		Sections: []extract.Result{
			{
				Section:       "scope",
				Title:         "Kapsam",
				Kind:          catalog.KindFreeText,
				Found:         true,
				Mode:          extract.ModeStrict,
				Outcome:       extract.OutcomeStrict,
				Content:       "Birinci paragraf.\nİkinci paragraf.",
				Fields:        []string{},
				Rows:          []tables.Row{},
				MatchedLabels: []string{"kapsam"},
				Errors:        []string{},
				Warnings:      []string{},
			},
			{
				Section: "integrations",
				Title:   "Entegrasyonlar",
				Kind:    catalog.KindTable,
				Found:   true,
				Mode:    extract.ModeScan,
				Outcome: extract.OutcomeScan,
				Fields:  []string{"name", "purpose"},
				Rows: []tables.Row{
					{ID: "integrations-0", Cells: []tables.Cell{{Field: "name", Value: "SWIFT"}, {Field: "purpose", Value: "Ödeme | mesajı"}}},
					{ID: "integrations-1", Cells: []tables.Cell{{Field: "name", Value: "EFT"}, {Field: "purpose", Value: "Havale"}}},
				},
				MatchedLabels: []string{"sistem", "amaç"},
				Errors:        []string{},
				Warnings:      []string{"Entegrasyonlar başlığı bulunamadı"},
			},
			{
				Section:       "risks",
				Title:         "Riskler",
				Kind:          catalog.KindTable,
				Mode:          extract.ModeScan,
				Outcome:       extract.OutcomeNotFound,
				Fields:        []string{"risk"},
				Rows:          []tables.Row{},
				MatchedLabels: []string{},
				Errors:        []string{"Riskler içeriği bulunamadı"},
				Warnings:      []string{},
			},
		},
	}
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		name   string
		ext    string
	}{
		{FormatJSON, "json", ".json"},
		{FormatYAML, "yaml", ".yaml"},
		{FormatMarkdown, "markdown", ".md"},
		{FormatXLSX, "xlsx", ".xlsx"},
		{Format(42), "unknown", ".txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.format.String())
			assert.Equal(t, tt.ext, tt.format.FileExtension())
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, ".yml": FormatYAML, "MD": FormatMarkdown, "xlsx": FormatXLSX} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, FormatJSON, config.Format)
	assert.True(t, config.PrettyPrint)
	assert.False(t, config.FoundOnly)
	assert.Equal(t, config, NewExporter().Config())
}

func TestExporter_ExportJSON(t *testing.T) {
	out, err := NewExporterWithConfig(Config{Format: FormatJSON}).ExportToBytes(testDocument())
	require.NoError(t, err)

	var decoded struct {
		Document string `json:"document"`
		Format   string `json:"format"`
		Sections []struct {
			Section string            `json:"section"`
			Outcome string            `json:"outcome"`
			Rows    []json.RawMessage `json:"rows"`
			Errors  []string          `json:"errors"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "analiz.docx", decoded.Document)
	assert.Equal(t, "docx", decoded.Format)
	require.Len(t, decoded.Sections, 3)
	assert.Equal(t, "notFound", decoded.Sections[2].Outcome)
	assert.NotNil(t, decoded.Sections[2].Rows)
	assert.Equal(t, `{"id":"integrations-0","name":"SWIFT","purpose":"Ödeme | mesajı"}`, string(decoded.Sections[1].Rows[0]))
}

func TestExporter_FoundOnly(t *testing.T) {
	config := DefaultConfig()
	config.FoundOnly = true
	out, err := NewExporterWithConfig(config).ExportToBytes(testDocument())
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"risks"`)
	assert.Contains(t, string(out), `"integrations"`)
}

func TestExporter_ExportYAML(t *testing.T) {
	out, err := NewExporterWithConfig(Config{Format: FormatYAML}).ExportToBytes(testDocument())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "format: docx")
	// Row keys keep column order rather than sorting.
	id := strings.Index(text, "id: integrations-0")
	name := strings.Index(text, "name: SWIFT")
	purpose := strings.Index(text, "purpose:")
	require.True(t, id >= 0 && name >= 0 && purpose >= 0, text)
	assert.Less(t, id, name)
	assert.Less(t, name, purpose)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	sections := decoded["sections"].([]any)
	require.Len(t, sections, 3)
	scope := sections[0].(map[string]any)
	assert.Equal(t, "scope", scope["section"])
	assert.Equal(t, "Birinci paragraf.\nİkinci paragraf.", scope["content"])
	assert.Empty(t, scope["rows"])
}

func TestExporter_ExportMarkdown(t *testing.T) {
	out, err := NewExporterWithConfig(Config{Format: FormatMarkdown}).ExportToBytes(testDocument())
	require.NoError(t, err)

	md := string(out)
	assert.Contains(t, md, "# analiz.docx")
	assert.Contains(t, md, "## Kapsam")
	assert.Contains(t, md, "Birinci paragraf.")
	assert.Contains(t, md, "## Entegrasyonlar")
	assert.Contains(t, md, "integrations-1")
	assert.Contains(t, md, "Hata: Riskler içeriği bulunamadı")
	assert.Contains(t, md, "Uyarı: Entegrasyonlar başlığı bulunamadı")
	assert.Less(t, strings.Index(md, "SWIFT"), strings.Index(md, "EFT"))
}

func TestExporter_ExportXLSX(t *testing.T) {
	out, err := NewExporterWithConfig(Config{Format: FormatXLSX}).ExportToBytes(testDocument())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, textSheet, "integrations"}, f.GetSheetList())

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, summaryHeaders, summary[0])
	assert.Equal(t, "risks", summary[3][0])
	assert.Equal(t, "notFound", summary[3][5])

	rows, err := f.GetRows("integrations")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "name", "purpose"},
		{"integrations-0", "SWIFT", "Ödeme | mesajı"},
		{"integrations-1", "EFT", "Havale"},
	}, rows)

	text, err := f.GetRows(textSheet)
	require.NoError(t, err)
	require.Len(t, text, 2)
	assert.Equal(t, "Birinci paragraf.\nİkinci paragraf.", text[1][2])
}

func TestExporter_ExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, NewExporter().ExportToFile(testDocument(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "a_b", sheetName("a/b"))
	assert.Len(t, []rune(sheetName(strings.Repeat("ş", 40))), maxSheetName)
}
