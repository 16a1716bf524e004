package main

import (
	"time"

	"reelsmith/internal/assethistory"
	"reelsmith/internal/caption"
	"reelsmith/internal/config"
	"reelsmith/internal/manifest"
	"reelsmith/internal/media"
	"reelsmith/internal/mediafetch"
	"reelsmith/internal/pipeline"
	"reelsmith/internal/render"
	"reelsmith/internal/stock"
	"reelsmith/internal/stt"
	"reelsmith/internal/tts"
	"reelsmith/pkg/log"
)

// buildWiring constructs every pipeline collaborator from configuration. The
// asset history store is optional: a failure to open it degrades to repeating
// stock footage, not to a dead service.
func buildWiring(cfg *config.Config) (*wiring, error) {
	ttsClient, err := tts.NewClient(cfg.Synthesis)
	if err != nil {
		return nil, err
	}
	sttClient, err := stt.NewClient(cfg.Transcription)
	if err != nil {
		return nil, err
	}

	operator := media.NewOperator()
	downloader := mediafetch.NewDownloader(cfg.Fetch)
	clips := mediafetch.NewClipGenerator(downloader, cfg.Fetch.ImageGenBaseURL, operator)
	renderClient := render.NewClient(cfg.Assembly, cfg.Paths.OutputDir)

	w := &wiring{
		Synthesizer: ttsClient,
		Transcriber: sttClient,
		Renderer:    renderClient,
	}

	history, err := assethistory.NewStore(cfg.Paths.DBPath)
	if err != nil {
		log.Warn("Asset history unavailable, stock footage may repeat: %v", err)
	} else {
		w.history = history
	}

	deps := pipeline.Deps{
		Synthesizer: ttsClient,
		Transcriber: sttClient,
		Stock:       stock.NewClient(cfg.Fetch),
		Fetcher:     downloader,
		Clips:       clips,
		Audio:       operator,
		Renderer:    renderClient,
		Music:       manifest.NewFileLibrary(cfg.Assembly.MusicLibraryFile),
		WorkDir:     cfg.Paths.WorkDir,
		PageLimits: caption.PageLimits{
			MaxLineChars: cfg.Captions.MaxLineChars,
			MaxLines:     cfg.Captions.MaxLines,
			MaxGapMs:     cfg.Captions.MaxGapMs,
		},
		TailPadding: time.Duration(cfg.Assembly.TailPaddingMs) * time.Millisecond,
	}
	if history != nil {
		deps.History = history
	}
	w.Deps = deps
	return w, nil
}
