package jobs

import "time"

// Status is derived from queue membership and output-artifact existence; it
// is never stored on the job.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

// MediaSource selects the per-scene visual acquisition strategy.
type MediaSource string

const (
	// MediaSourceStock downloads stock footage matched to the search terms.
	MediaSourceStock MediaSource = "stock"
	// MediaSourceGenerated builds a still clip from a generated image.
	MediaSourceGenerated MediaSource = "generated"
)

// Scene is one authored unit of script text plus visual search hints.
// Immutable once enqueued.
type Scene struct {
	Text        string   `json:"text"`
	SearchTerms []string `json:"search_terms"`
	Language    string   `json:"language,omitempty"`
}

// RenderConfig carries the per-job rendering options.
type RenderConfig struct {
	Orientation string      `json:"orientation"`
	MediaSource MediaSource `json:"media_source"`
	MusicMood   string      `json:"music_mood,omitempty"`
	Voice       string      `json:"voice,omitempty"`
}

// RenderJob is one queued video job. It is owned exclusively by the worker
// while being processed and is never mutated concurrently.
type RenderJob struct {
	ID        string       `json:"id"`
	Scenes    []Scene      `json:"scenes"`
	Config    RenderConfig `json:"config"`
	CreatedAt time.Time    `json:"created_at"`
}
