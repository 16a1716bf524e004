// Package pipeline drives one render job end to end: synthesis,
// transcription-based caption alignment, media acquisition and manifest
// assembly, handing the result to the external renderer.
package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reelsmith/internal/caption"
	"reelsmith/internal/jobs"
	"reelsmith/internal/manifest"
	"reelsmith/internal/mediafetch"
	"reelsmith/internal/stock"
	"reelsmith/internal/stt"
	"reelsmith/internal/tts"
	"reelsmith/pkg/log"
)

type Synthesizer interface {
	Synthesize(ctx context.Context, text, langHint string, opts tts.Options) (*tts.Result, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (*stt.Transcription, error)
}

type StockFinder interface {
	Find(ctx context.Context, terms []string, target time.Duration, orientation string, exclude map[string]bool) (*stock.Candidate, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

type ClipMaker interface {
	Generate(ctx context.Context, prompt string, width, height int, audioDuration time.Duration, destDir string) (string, error)
}

type AudioNormalizer interface {
	NormalizeAudio(src, dst string) error
}

type Renderer interface {
	Render(ctx context.Context, jobID, orientation string, m *manifest.Manifest) error
}

type AssetHistory interface {
	RecordUsed(ctx context.Context, jobID string, assetIDs []string) error
	RecentlyUsed(ctx context.Context, limit int) (map[string]bool, error)
}

// Deps wires the pipeline's collaborators.
type Deps struct {
	Synthesizer Synthesizer
	Transcriber Transcriber
	Stock       StockFinder
	Fetcher     Fetcher
	Clips       ClipMaker
	Audio       AudioNormalizer
	Renderer    Renderer
	History     AssetHistory
	Music       manifest.Library

	WorkDir     string
	PageLimits  caption.PageLimits
	TailPadding time.Duration
}

type Pipeline struct {
	deps Deps
	rng  *rand.Rand
}

func New(deps Deps) *Pipeline {
	return &Pipeline{
		deps: deps,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// exclusionWindow is how many recently used stock assets are excluded from
// new searches.
const exclusionWindow = 200

// Execute processes one job. Scenes run strictly in order; the job's temp
// workspace is removed on every exit path, success or failure.
func (p *Pipeline) Execute(ctx context.Context, job *jobs.RenderJob) error {
	workDir := filepath.Join(p.deps.WorkDir, job.ID)
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			log.Warn("Failed to clean workspace of job %s: %v", job.ID, err)
		}
	}()

	layout := layoutFor(job.Config.Orientation)
	builder := manifest.NewBuilder(p.deps.TailPadding)

	exclude := p.loadExclusions(ctx)
	usedAssets := make([]string, 0)

	for i, scene := range job.Scenes {
		sceneDir := filepath.Join(workDir, fmt.Sprintf("scene-%03d", i))
		if err := os.MkdirAll(sceneDir, 0755); err != nil {
			return fmt.Errorf("create scene workspace: %w", err)
		}

		result, assetID, err := p.processScene(ctx, scene, job.Config, layout, sceneDir, exclude)
		if err != nil {
			return fmt.Errorf("scene %d: %w", i, err)
		}
		if assetID != "" {
			exclude[assetID] = true
			usedAssets = append(usedAssets, assetID)
		}
		builder.AddScene(*result)
	}

	track := p.selectMusic(job.Config.MusicMood)
	m := builder.Build(layout, track)

	log.Info("Job %s: rendering %d scenes, total %s", job.ID, builder.SceneCount(), m.TotalDuration)
	if err := p.deps.Renderer.Render(ctx, job.ID, job.Config.Orientation, m); err != nil {
		return err
	}

	if p.deps.History != nil && len(usedAssets) > 0 {
		if err := p.deps.History.RecordUsed(ctx, job.ID, usedAssets); err != nil {
			log.Warn("Failed to record used assets for job %s: %v", job.ID, err)
		}
	}
	return nil
}

// processScene runs the scene steps in their fixed order: synthesize, align
// captions against the authored text, acquire visuals. The returned asset id
// is non-empty only for stock footage.
func (p *Pipeline) processScene(ctx context.Context, scene jobs.Scene, cfg jobs.RenderConfig, layout manifest.Layout, sceneDir string, exclude map[string]bool) (*manifest.SceneResult, string, error) {
	synth, err := p.deps.Synthesizer.Synthesize(ctx, scene.Text, scene.Language, tts.Options{Voice: cfg.Voice})
	if err != nil {
		return nil, "", err
	}

	audioPath := filepath.Join(sceneDir, "speech.wav")
	if err := os.WriteFile(audioPath, synth.Audio, 0644); err != nil {
		return nil, "", fmt.Errorf("write audio: %w", err)
	}

	normalizedPath := filepath.Join(sceneDir, "speech-16k.wav")
	if err := p.deps.Audio.NormalizeAudio(audioPath, normalizedPath); err != nil {
		return nil, "", err
	}

	transcript, err := p.deps.Transcriber.Transcribe(ctx, normalizedPath, synth.Language)
	if err != nil {
		return nil, "", err
	}

	captions := caption.PostProcess(caption.Align(scene.Text, transcript))
	pages := caption.Paginate(captions, p.deps.PageLimits)

	// The scene occupies exactly its synthesized audio; caption timing only
	// drives the text overlay.
	duration := synth.EstimatedDuration

	videoPath, assetID, err := p.acquireVisual(ctx, scene, cfg, layout, sceneDir, duration, exclude)
	if err != nil {
		return nil, "", err
	}

	return &manifest.SceneResult{
		CaptionPages: pages,
		VideoPath:    videoPath,
		AudioPath:    audioPath,
		Duration:     duration,
	}, assetID, nil
}

func (p *Pipeline) acquireVisual(ctx context.Context, scene jobs.Scene, cfg jobs.RenderConfig, layout manifest.Layout, sceneDir string, duration time.Duration, exclude map[string]bool) (string, string, error) {
	if cfg.MediaSource == jobs.MediaSourceGenerated {
		prompt := strings.Join(scene.SearchTerms, " ")
		if prompt == "" {
			prompt = scene.Text
		}
		clipPath, err := p.deps.Clips.Generate(ctx, prompt, layout.Width, layout.Height, duration, sceneDir)
		if err != nil {
			return "", "", err
		}
		return clipPath, "", nil
	}

	candidate, err := p.deps.Stock.Find(ctx, scene.SearchTerms, duration, cfg.Orientation, exclude)
	if err != nil {
		return "", "", err
	}
	videoPath := filepath.Join(sceneDir, "stock.mp4")
	if err := p.deps.Fetcher.Fetch(ctx, candidate.URL, videoPath); err != nil {
		return "", "", err
	}
	return videoPath, candidate.ID, nil
}

func (p *Pipeline) loadExclusions(ctx context.Context) map[string]bool {
	if p.deps.History == nil {
		return make(map[string]bool)
	}
	exclude, err := p.deps.History.RecentlyUsed(ctx, exclusionWindow)
	if err != nil {
		log.Warn("Failed to load asset history: %v", err)
		return make(map[string]bool)
	}
	return exclude
}

func (p *Pipeline) selectMusic(mood string) *manifest.Track {
	if p.deps.Music == nil {
		return nil
	}
	tracks, err := p.deps.Music.Tracks()
	if err != nil {
		log.Warn("Failed to list music tracks: %v", err)
		return nil
	}
	return manifest.SelectTrack(tracks, mood, p.rng)
}

func layoutFor(orientation string) manifest.Layout {
	if orientation == "landscape" {
		return manifest.Layout{Orientation: orientation, Width: 1920, Height: 1080, FPS: mediafetch.DefaultFPS}
	}
	return manifest.Layout{Orientation: "portrait", Width: 1080, Height: 1920, FPS: mediafetch.DefaultFPS}
}
