package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/reqdoc/catalog"
	"github.com/tsawler/reqdoc/extract"
)

// Sheet names of the workbook. Table sections get a sheet named after
// their id.
const (
	summarySheet = "Özet"
	textSheet    = "Metinler"

	maxSheetName = 31
)

var (
	summaryHeaders = []string{"Bölüm", "Başlık", "Tür", "Bulundu", "Mod", "Sonuç", "Satır", "Uyarılar", "Hatalar"}
	textHeaders    = []string{"Bölüm", "Başlık", "İçerik"}
)

type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
}

func (s *sheetWriter) write(values ...any) error {
	s.row++
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, s.row)
		if err != nil {
			return err
		}
		if err := s.f.SetCellValue(s.sheet, cell, v); err != nil {
			return fmt.Errorf("writing %s!%s: %w", s.sheet, cell, err)
		}
	}
	return nil
}

func exportXLSX(doc Document, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}
	summary := &sheetWriter{f: f, sheet: summarySheet}
	if err := summary.write(strings2any(summaryHeaders)...); err != nil {
		return err
	}

	var text *sheetWriter
	for _, r := range doc.Sections {
		if err := summary.write(r.Section, r.Title, string(r.Kind), r.Found, string(r.Mode), string(r.Outcome),
			len(r.Rows), strings.Join(r.Warnings, "\n"), strings.Join(r.Errors, "\n")); err != nil {
			return err
		}
		if !r.Found {
			continue
		}

		if r.Kind != catalog.KindTable {
			if text == nil {
				if _, err := f.NewSheet(textSheet); err != nil {
					return fmt.Errorf("creating sheet %s: %w", textSheet, err)
				}
				text = &sheetWriter{f: f, sheet: textSheet}
				if err := text.write(strings2any(textHeaders)...); err != nil {
					return err
				}
			}
			if err := text.write(r.Section, r.Title, r.Content); err != nil {
				return err
			}
			continue
		}

		if err := writeRowsSheet(f, r); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(summarySheet, "B", "B", 32)
	_ = f.SetColWidth(summarySheet, "H", "I", 60)
	if text != nil {
		_ = f.SetColWidth(textSheet, "C", "C", 100)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// writeRowsSheet writes a table section: id and the fields in catalog
// order as the header, one line per row.
func writeRowsSheet(f *excelize.File, r extract.Result) error {
	name := sheetName(r.Section)
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %s: %w", name, err)
	}
	sw := &sheetWriter{f: f, sheet: name}
	if err := sw.write(strings2any(append([]string{"id"}, r.Fields...))...); err != nil {
		return err
	}
	for _, row := range r.Rows {
		values := []any{row.ID}
		for _, field := range r.Fields {
			values = append(values, row.Get(field))
		}
		if err := sw.write(values...); err != nil {
			return err
		}
	}
	return nil
}

// sheetName fits a section id into Excel's sheet name rules.
func sheetName(id string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, id)
	if runes := []rune(name); len(runes) > maxSheetName {
		name = string(runes[:maxSheetName])
	}
	return name
}

func strings2any(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
