package extract

import (
	"fmt"

	"github.com/tsawler/reqdoc/catalog"
	"github.com/tsawler/reqdoc/tables"
)

// Mode is the location strategy that produced a result.
type Mode string

const (
	// ModeStrict results come from a matched section header.
	ModeStrict Mode = "strict"
	// ModeScan results come from keyword scoring or a table scan.
	ModeScan Mode = "scan"
)

// Outcome tells apart the terminal states of an extraction.
type Outcome string

const (
	OutcomeStrict   Outcome = "strict"
	OutcomeScan     Outcome = "scan"
	OutcomeNotFound Outcome = "notFound"
	OutcomeFailed   Outcome = "failed"
)

// Result is the extraction result of one section. Slices are never nil so
// they serialize as empty arrays.
type Result struct {
	Section string       `json:"section" yaml:"section"`
	Title   string       `json:"title" yaml:"title"`
	Kind    catalog.Kind `json:"kind" yaml:"kind"`
	Found   bool         `json:"found" yaml:"found"`
	Mode    Mode         `json:"mode" yaml:"mode"`
	Outcome Outcome      `json:"outcome" yaml:"outcome"`

	// Content holds the text of a free-text section.
	Content string `json:"content" yaml:"content"`

	// Fields lists a table section's field keys in catalog order; Rows
	// hold the extracted records.
	Fields []string     `json:"fields" yaml:"fields"`
	Rows   []tables.Row `json:"rows" yaml:"-"`

	MatchedLabels []string `json:"matchedLabels" yaml:"matchedLabels"`
	Errors        []string `json:"errors" yaml:"errors"`
	Warnings      []string `json:"warnings" yaml:"warnings"`
}

// newResult starts a result for s in the initial strict state.
func newResult(s *catalog.Section) Result {
	fields := []string{}
	if s.IsTable() {
		fields = s.Fields()
	}
	return Result{
		Section:       s.ID,
		Title:         s.Title,
		Kind:          s.Kind,
		Mode:          ModeStrict,
		Fields:        fields,
		Rows:          []tables.Row{},
		MatchedLabels: []string{},
		Errors:        []string{},
		Warnings:      []string{},
	}
}

func (r *Result) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) fail(outcome Outcome, format string, args ...any) {
	r.Found = false
	r.Outcome = outcome
	r.Content = ""
	r.Rows = []tables.Row{}
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// failedResult builds a failed result for s carrying msg.
func failedResult(s *catalog.Section, msg string) Result {
	r := newResult(s)
	r.fail(OutcomeFailed, "%s", msg)
	return r
}

// Messages shown to users. Document vocabulary is Turkish, so are these.
const (
	msgNotFound     = "%s içeriği bulunamadı"
	msgScanUsed     = "%s başlığı bulunamadı, içerik tarama ile bulundu; lütfen kontrol edin"
	msgAmbiguous    = "%d aday tablo bulundu, en çok satır içeren seçildi"
	msgEmptyContent = "%s başlığı bulundu ancak içerik boş"
	msgEmptyTable   = "%s tablosu bulundu ancak dolu satır içermiyor"
	msgConversion   = "doküman dönüştürülemedi: %v"
	msgParse        = "doküman okunamadı: %v"
	msgPanic        = "%s çıkarılırken beklenmeyen hata: %v"
	msgCancelled    = "%s çıkarılamadı: %v"
)
