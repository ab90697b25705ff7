// Package textnorm folds free text into the comparable form used for every
// keyword, label and heading match in reqdoc.
//
// A normalized string is lowercase (Turkish casing rules), carries no
// diacritics, and consists of letters and digits separated by single spaces:
//
//	textnorm.Normalize("  İŞLEMİ Kayıt-Kuralları! ") // "islemi kayit kurallari"
//
// Normalize is total and idempotent, so normalized catalog terms can be
// compared against normalized document text with plain substring tests.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldRune maps letters that have no canonical decomposition to their
// ASCII base. Everything else is handled by mark removal.
func foldRune(r rune) rune {
	switch r {
	case 'ı':
		return 'i'
	case 'ø':
		return 'o'
	case 'đ':
		return 'd'
	case 'ł':
		return 'l'
	}
	return r
}

// newFolder returns a fresh transformer chain. Casers and chains keep state,
// so one is built per call instead of shared between goroutines.
func newFolder() transform.Transformer {
	return transform.Chain(
		cases.Lower(language.Turkish),
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(foldRune),
		norm.NFC,
	)
}

// Normalize lowercases s with Turkish rules, strips diacritics, replaces
// every non-alphanumeric rune with a space, collapses whitespace and trims.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	folded, _, err := transform.String(newFolder(), s)
	if err != nil {
		// transform only fails on internal buffer limits; fall back to the
		// plain lowercase so the function stays total.
		folded = strings.ToLower(s)
	}

	var sb strings.Builder
	sb.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			if pendingSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			pendingSpace = false
			sb.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return sb.String()
}

// NormalizeAll normalizes every entry of terms, dropping entries that
// normalize to the empty string and duplicates. Order is preserved.
func NormalizeAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		n := Normalize(t)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Contains reports whether the normalized text contains the normalized term.
// An empty term never matches.
func Contains(text, term string) bool {
	return term != "" && strings.Contains(text, term)
}

// MatchAny returns the first term, in slice order, that text contains.
func MatchAny(text string, terms []string) (string, bool) {
	for _, term := range terms {
		if Contains(text, term) {
			return term, true
		}
	}
	return "", false
}

// Count returns the number of non-overlapping occurrences of term in text.
func Count(text, term string) int {
	if term == "" {
		return 0
	}
	return strings.Count(text, term)
}

// HasLetter reports whether s contains at least one letter.
func HasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// CollapseSpace trims s and replaces every run of whitespace with a single
// space. Unlike Normalize it keeps case and punctuation.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
