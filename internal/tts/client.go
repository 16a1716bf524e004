// Package tts is the speech synthesis client: text normalization, voice
// resolution and multi-endpoint failover against the Piper-style /tts service.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"reelsmith/internal/config"
	"reelsmith/internal/failover"
	"reelsmith/internal/phonetic"
	"reelsmith/pkg/log"
)

// Options are per-call synthesis tunables. Zero values select the engine
// defaults.
type Options struct {
	Voice       string
	SpeakerID   int
	LengthScale float64
	NoiseScale  float64
	NoiseW      float64
}

// Engine defaults, matching the Piper voice models in production.
const (
	defaultLengthScale = 1.0
	defaultNoiseScale  = 0.667
	defaultNoiseW      = 0.8
)

// Result is one synthesized utterance.
type Result struct {
	Audio []byte
	// EstimatedDuration is derived from byte length and the fixed WAV frame
	// assumption; caption timing later supersedes it.
	EstimatedDuration time.Duration
	Voice             string
	Language          string
}

// Client synthesizes speech with normalization and sticky endpoint failover.
type Client struct {
	endpoints  *failover.Endpoints
	httpClient *http.Client
	normalizer *Normalizer
	resolver   *VoiceResolver
}

// NewClient builds a Client from configuration, loading the phonetic and
// voice tables referenced there.
func NewClient(cfg config.SynthesisConfig) (*Client, error) {
	eps, err := failover.New(cfg.Endpoints)
	if err != nil {
		return nil, fmt.Errorf("synthesis endpoints: %w", err)
	}
	phonetics, err := phonetic.LoadOrDefaults(cfg.PhoneticFile)
	if err != nil {
		return nil, err
	}
	voices, err := LoadVoicesOrDefaults(cfg.VoicesFile)
	if err != nil {
		return nil, err
	}

	return &Client{
		endpoints: eps,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		normalizer: NewNormalizer(phonetics),
		resolver:   NewVoiceResolver(voices, cfg.DefaultLanguage),
	}, nil
}

type ttsRequest struct {
	Text        string  `json:"text"`
	Voice       string  `json:"voice"`
	SpeakerID   int     `json:"speaker_id"`
	LengthScale float64 `json:"length_scale"`
	NoiseScale  float64 `json:"noise_scale"`
	NoiseW      float64 `json:"noise_w"`
}

// Synthesize turns text into audio. It normalizes the text for the resolved
// language, then walks the endpoint list until one call succeeds.
func (c *Client) Synthesize(ctx context.Context, text, langHint string, opts Options) (*Result, error) {
	voice, lang := c.resolver.Resolve(opts.Voice, langHint, text)
	if voice == "" {
		return nil, fmt.Errorf("no voice available for language %q", lang)
	}
	normalized := c.normalizer.Normalize(text, lang)

	req := ttsRequest{
		Text:        normalized,
		Voice:       voice,
		SpeakerID:   opts.SpeakerID,
		LengthScale: opts.LengthScale,
		NoiseScale:  opts.NoiseScale,
		NoiseW:      opts.NoiseW,
	}
	if req.LengthScale == 0 {
		req.LengthScale = defaultLengthScale
	}
	if req.NoiseScale == 0 {
		req.NoiseScale = defaultNoiseScale
	}
	if req.NoiseW == 0 {
		req.NoiseW = defaultNoiseW
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode tts request: %w", err)
	}

	var audio []byte
	err = c.endpoints.Do(ctx, func(ctx context.Context, addr string) error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, addr+"/tts", bytes.NewReader(body))
		if err != nil {
			return err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		audio, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if len(audio) <= wavHeaderSize {
			return fmt.Errorf("empty audio response (%d bytes)", len(audio))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize %q: %w", voice, err)
	}

	result := &Result{
		Audio:             audio,
		EstimatedDuration: EstimateDuration(audio),
		Voice:             voice,
		Language:          lang,
	}
	log.Debug("Synthesized %d bytes (~%s) with voice %s", len(audio), result.EstimatedDuration, voice)
	return result, nil
}

// Health reports whether any synthesis endpoint answers its health probe.
func (c *Client) Health(ctx context.Context) error {
	return c.endpoints.Do(ctx, func(ctx context.Context, addr string) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr+"/health", nil)
		if err != nil {
			return err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return nil
	})
}
