// Package phonetic holds per-language substitution tables that replace known
// foreign technical terms with a phonetic approximation before synthesis, so
// the voice model does not mangle loanwords.
package phonetic

import (
	"strings"
	"unicode"
)

// Table maps a source term to its phonetic spelling in one target language.
type Table map[string]string

// Map groups substitution tables by target language base code (e.g. "tr").
type Map map[string]Table

// Defaults returns the built-in substitution map. The Turkish table reflects
// the terms the original deployment kept mispronouncing.
func Defaults() Map {
	return Map{
		"tr": {
			"bluetooth": "blutut",
			"browser":   "bravzır",
			"cache":     "keş",
			"cloud":     "klaud",
			"download":  "davnlod",
			"e-mail":    "imeyl",
			"firewall":  "fayrvol",
			"hardware":  "hardver",
			"online":    "onlayn",
			"server":    "sörvır",
			"software":  "softver",
			"update":    "apdeyt",
			"upload":    "aplod",
			"wifi":      "vayfay",
		},
	}
}

// ForLanguage returns the table for the given language, or nil when none exists.
func (m Map) ForLanguage(lang string) Table {
	if m == nil {
		return nil
	}
	return m[strings.ToLower(lang)]
}

// Apply replaces whole-word occurrences of known terms in text with their
// phonetic spelling. Matching is case-insensitive and leaves surrounding
// punctuation intact.
func (t Table) Apply(text string) string {
	if len(t) == 0 || text == "" {
		return text
	}

	fields := strings.Fields(text)
	for i, field := range fields {
		core, prefix, suffix := stripPunct(field)
		if core == "" {
			continue
		}
		if replacement, ok := t[strings.ToLower(core)]; ok {
			fields[i] = prefix + replacement + suffix
		}
	}
	return strings.Join(fields, " ")
}

// stripPunct splits a token into leading punctuation, the core word and
// trailing punctuation.
func stripPunct(token string) (core, prefix, suffix string) {
	runes := []rune(token)
	start := 0
	for start < len(runes) && isPunct(runes[start]) {
		start++
	}
	end := len(runes)
	for end > start && isPunct(runes[end-1]) {
		end--
	}
	return string(runes[start:end]), string(runes[:start]), string(runes[end:])
}

func isPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
