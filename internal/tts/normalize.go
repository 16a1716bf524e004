package tts

import (
	"strings"
	"unicode"

	"reelsmith/internal/phonetic"
)

// Normalizer prepares script text for the synthesis engine: phonetic
// substitution of loanwords, spacing around embedded digits, and pause
// markers after sentence and clause punctuation.
type Normalizer struct {
	phonetics phonetic.Map
}

func NewNormalizer(phonetics phonetic.Map) *Normalizer {
	return &Normalizer{phonetics: phonetics}
}

// Normalize returns the text the synthesis endpoint should receive for the
// given target language.
func (n *Normalizer) Normalize(text, lang string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}

	if table := n.phonetics.ForLanguage(lang); table != nil {
		text = table.Apply(text)
	}
	text = spaceDigits(text)
	text = insertPauses(text)
	return text
}

// spaceDigits inserts a space at every letter/digit boundary so the engine
// reads "4K" as two tokens instead of guessing.
func spaceDigits(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 8)

	var prev rune
	for i, r := range text {
		if i > 0 && boundary(prev, r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func boundary(prev, cur rune) bool {
	return (unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
		(unicode.IsDigit(prev) && unicode.IsLetter(cur))
}

// insertPauses adds a newline pause marker after sentence terminators and
// guarantees a single space after clause punctuation. Runs of whitespace are
// collapsed.
func insertPauses(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 16)

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if unicode.IsSpace(r) {
			// Collapse whitespace runs; the marker decision belongs to the
			// punctuation that preceded them.
			continue
		}

		b.WriteRune(r)

		next := nextNonSpace(runes, i+1)
		if next == -1 {
			continue
		}
		switch {
		case isSentenceEnd(r) && !isPausePunct(runes[next]):
			b.WriteRune('\n')
		case isClausePunct(r) && !isPausePunct(runes[next]):
			b.WriteRune(' ')
		case isPausePunct(r):
			// Ellipses and stacked punctuation pause once, after the run.
		default:
			if i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				b.WriteRune(' ')
			}
		}
		i = next - 1
	}
	return strings.TrimSpace(b.String())
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isClausePunct(r rune) bool {
	return r == ',' || r == ';' || r == ':'
}

func isPausePunct(r rune) bool {
	return isSentenceEnd(r) || isClausePunct(r)
}

func nextNonSpace(runes []rune, from int) int {
	for i := from; i < len(runes); i++ {
		if !unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}
