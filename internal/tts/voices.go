package tts

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// VoiceTable maps a language base code to its ordered voice list. The first
// entry is the default voice for that language.
type VoiceTable map[string][]string

// DefaultVoices returns the built-in voice table for the deployed models.
func DefaultVoices() VoiceTable {
	return VoiceTable{
		"tr": {"tr_TR-dfki-medium", "tr_TR-fahrettin-medium"},
		"en": {"en_US-lessac-medium", "en_US-amy-medium"},
		"de": {"de_DE-thorsten-medium"},
	}
}

// LoadVoices reads a voice table from a JSON file shaped like
// {"tr": ["tr_TR-dfki-medium"], ...}.
func LoadVoices(path string) (VoiceTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read voice table: %w", err)
	}
	var vt VoiceTable
	if err := json.Unmarshal(data, &vt); err != nil {
		return nil, fmt.Errorf("parse voice table: %w", err)
	}
	return vt, nil
}

// LoadVoicesOrDefaults loads the table at path when non-empty, otherwise the
// built-in defaults.
func LoadVoicesOrDefaults(path string) (VoiceTable, error) {
	if path == "" {
		return DefaultVoices(), nil
	}
	return LoadVoices(path)
}

// VoiceResolver picks a concrete voice for a synthesis call.
type VoiceResolver struct {
	voices      VoiceTable
	defaultLang string
}

func NewVoiceResolver(voices VoiceTable, defaultLang string) *VoiceResolver {
	return &VoiceResolver{
		voices:      voices,
		defaultLang: normalizeLanguageCode(defaultLang),
	}
}

// Resolve returns the voice and language to synthesize with. An explicit
// voice wins outright. Otherwise the language hint (or, when absent, detection
// on the text) selects a voice list, falling back to the default language's
// list for unknown languages; the first list entry is used.
func (r *VoiceResolver) Resolve(explicitVoice, langHint, text string) (voice, lang string) {
	lang = normalizeLanguageCode(langHint)
	if lang == "" {
		lang = detectLanguage(text)
	}
	if lang == "" {
		lang = r.defaultLang
	}

	if explicitVoice != "" {
		return explicitVoice, lang
	}

	list, ok := r.voices[lang]
	if !ok || len(list) == 0 {
		lang = r.defaultLang
		list = r.voices[lang]
	}
	if len(list) == 0 {
		return "", lang
	}
	return list[0], lang
}

func detectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	info := whatlanggo.Detect(text)
	return info.Lang.Iso6391()
}

// normalizeLanguageCode parses a language string and returns its 2-letter base code.
func normalizeLanguageCode(lang string) string {
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return strings.ToLower(lang)
	}
	base, _ := tag.Base()
	return base.String()
}
