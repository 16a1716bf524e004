package tts

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ExplicitVoiceWins(t *testing.T) {
	r := NewVoiceResolver(DefaultVoices(), "tr")

	voice, lang := r.Resolve("custom-voice", "en", "whatever")
	assert.Equal(t, "custom-voice", voice)
	assert.Equal(t, "en", lang)
}

func TestResolve_FirstVoiceOfLanguageList(t *testing.T) {
	r := NewVoiceResolver(VoiceTable{
		"tr": {"tr-one", "tr-two"},
		"en": {"en-one"},
	}, "tr")

	voice, lang := r.Resolve("", "en", "")
	assert.Equal(t, "en-one", voice)
	assert.Equal(t, "en", lang)
}

func TestResolve_UnknownLanguageFallsBackToDefault(t *testing.T) {
	r := NewVoiceResolver(VoiceTable{"tr": {"tr-one"}}, "tr")

	voice, lang := r.Resolve("", "xx-unknown", "")
	assert.Equal(t, "tr-one", voice)
	assert.Equal(t, "tr", lang)
}

func TestResolve_RegionalTagNormalized(t *testing.T) {
	r := NewVoiceResolver(VoiceTable{"tr": {"tr-one"}}, "tr")

	voice, lang := r.Resolve("", "tr-TR", "")
	assert.Equal(t, "tr-one", voice)
	assert.Equal(t, "tr", lang)
}

func TestResolve_DetectsLanguageWhenHintMissing(t *testing.T) {
	r := NewVoiceResolver(VoiceTable{
		"tr": {"tr-one"},
		"de": {"de-one"},
	}, "tr")

	voice, lang := r.Resolve("", "", "Ich gehe heute Abend mit meinen Freunden ins Kino und wir schauen einen Film.")
	assert.Equal(t, "de", lang)
	assert.Equal(t, "de-one", voice)
}

func TestLoadVoices_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voices.json")
	require.NoError(t, writeFile(path, `{"tr": ["a", "b"]}`))

	vt, err := LoadVoices(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, vt["tr"])
}
