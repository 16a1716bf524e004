package manifest

import "time"

// Builder accumulates scene results for one job.
type Builder struct {
	scenes      []SceneResult
	tailPadding time.Duration
}

// NewBuilder creates a Builder. tailPadding is appended once, after the final
// scene, so the video does not cut off on the last word.
func NewBuilder(tailPadding time.Duration) *Builder {
	return &Builder{tailPadding: tailPadding}
}

// AddScene appends one assembled scene, in order.
func (b *Builder) AddScene(scene SceneResult) {
	b.scenes = append(b.scenes, scene)
}

// SceneCount returns how many scenes have been accumulated.
func (b *Builder) SceneCount() int {
	return len(b.scenes)
}

// Build produces the manifest. Total duration is the sum of scene durations
// plus the trailing padding when at least one scene exists.
func (b *Builder) Build(layout Layout, music *Track) *Manifest {
	var total time.Duration
	for _, scene := range b.scenes {
		total += scene.Duration
	}
	if len(b.scenes) > 0 {
		total += b.tailPadding
	}

	return &Manifest{
		Scenes:        b.scenes,
		Music:         music,
		Layout:        layout,
		TotalDuration: total,
	}
}
