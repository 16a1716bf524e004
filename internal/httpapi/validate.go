package httpapi

import (
	"fmt"
	"strings"

	"reelsmith/internal/jobs"
)

// maxScenes caps a single job. Short-form output rarely needs more than a
// handful of scenes; the cap keeps one request from monopolizing the worker.
const maxScenes = 20

func applyConfigDefaults(cfg *jobs.RenderConfig) {
	if cfg.Orientation == "" {
		cfg.Orientation = "portrait"
	}
	if cfg.MediaSource == "" {
		cfg.MediaSource = jobs.MediaSourceStock
	}
}

// validateCreateJob returns a field-to-reason map; an empty map means the
// request is acceptable.
func validateCreateJob(req createJobRequest) map[string]string {
	problems := make(map[string]string)

	if len(req.Scenes) == 0 {
		problems["scenes"] = "at least one scene is required"
	}
	if len(req.Scenes) > maxScenes {
		problems["scenes"] = fmt.Sprintf("at most %d scenes per job", maxScenes)
	}
	for i, scene := range req.Scenes {
		if strings.TrimSpace(scene.Text) == "" {
			problems[fmt.Sprintf("scenes[%d].text", i)] = "text must not be empty"
		}
		if req.Config.MediaSource == jobs.MediaSourceStock && len(scene.SearchTerms) == 0 {
			problems[fmt.Sprintf("scenes[%d].search_terms", i)] = "search terms are required for stock footage"
		}
	}

	switch req.Config.Orientation {
	case "portrait", "landscape":
	default:
		problems["config.orientation"] = `must be "portrait" or "landscape"`
	}
	switch req.Config.MediaSource {
	case jobs.MediaSourceStock, jobs.MediaSourceGenerated:
	default:
		problems["config.media_source"] = `must be "stock" or "generated"`
	}

	return problems
}
