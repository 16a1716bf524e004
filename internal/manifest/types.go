// Package manifest assembles the render manifest handed to the external
// renderer: per-scene media, captions and audio, the chosen music track,
// layout options and total duration.
package manifest

import (
	"time"

	"reelsmith/internal/caption"
)

// SceneResult is the assembled output of one processed scene.
type SceneResult struct {
	CaptionPages []caption.Page `json:"caption_pages"`
	VideoPath    string         `json:"video_path"`
	AudioPath    string         `json:"audio_path"`
	Duration     time.Duration  `json:"duration"`
}

// Track is one background music track.
type Track struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Mood string `json:"mood"`
}

// Layout holds the output geometry the renderer composes at.
type Layout struct {
	Orientation string `json:"orientation"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	FPS         int    `json:"fps"`
}

// Manifest is the complete opaque description of one job's render.
type Manifest struct {
	Scenes        []SceneResult `json:"scenes"`
	Music         *Track        `json:"music,omitempty"`
	Layout        Layout        `json:"layout"`
	TotalDuration time.Duration `json:"total_duration"`
}
