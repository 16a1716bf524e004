package manifest

import (
	"math/rand"
	"path/filepath"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTracks = []Track{
	{Name: "calm-one", Mood: "calm"},
	{Name: "calm-two", Mood: "calm"},
	{Name: "tense-one", Mood: "tense"},
}

func TestSelectTrack_FiltersByMood(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 20 {
		track := SelectTrack(testTracks, "calm", rng)
		require.NotNil(t, track)
		assert.Equal(t, "calm", track.Mood)
	}
}

func TestSelectTrack_UnknownMoodFallsBackToAllTracks(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := map[string]bool{}
	for range 200 {
		track := SelectTrack(testTracks, "epic", rng)
		require.NotNil(t, track)
		seen[track.Name] = true
	}
	assert.Len(t, seen, 3)
}

func TestSelectTrack_NoMoodConsidersAll(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := map[string]bool{}
	for range 200 {
		seen[SelectTrack(testTracks, "", rng).Name] = true
	}
	assert.Len(t, seen, 3)
}

func TestSelectTrack_EmptyLibrary(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Nil(t, SelectTrack(nil, "calm", rng))
}

func TestFileLibrary_ReadsTracks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "music.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "a", "path": "/music/a.mp3", "mood": "calm"}
	]`), 0644))

	tracks, err := NewFileLibrary(path).Tracks()
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "calm", tracks[0].Mood)
}

func TestFileLibrary_EmptyPath(t *testing.T) {
	tracks, err := NewFileLibrary("").Tracks()
	require.NoError(t, err)
	assert.Nil(t, tracks)
}
