package manifest

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// Library lists the available background tracks. Asset management itself is
// external; this package only selects from what the library reports.
type Library interface {
	Tracks() ([]Track, error)
}

// FileLibrary reads the track list from a JSON file shaped like
// [{"name": "...", "path": "...", "mood": "calm"}, ...].
type FileLibrary struct {
	path string
}

func NewFileLibrary(path string) *FileLibrary {
	return &FileLibrary{path: path}
}

func (l *FileLibrary) Tracks() ([]Track, error) {
	if l.path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read music library: %w", err)
	}
	var tracks []Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, fmt.Errorf("parse music library: %w", err)
	}
	return tracks, nil
}

// SelectTrack filters tracks by the requested mood tag and picks uniformly at
// random among the matches. When no track carries the tag (or no tag is
// given) the full set is used. Returns nil for an empty library.
func SelectTrack(tracks []Track, mood string, rng *rand.Rand) *Track {
	if len(tracks) == 0 {
		return nil
	}

	pool := tracks
	if mood != "" {
		filtered := make([]Track, 0, len(tracks))
		for _, t := range tracks {
			if strings.EqualFold(t.Mood, mood) {
				filtered = append(filtered, t)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	pick := pool[rng.Intn(len(pool))]
	return &pick
}
