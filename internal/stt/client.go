// Package stt is the speech-to-text client against the faster-whisper
// HTTP service, with its own sticky endpoint failover state.
package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"reelsmith/internal/config"
	"reelsmith/internal/failover"
	"reelsmith/pkg/log"
)

// Client submits audio files for transcription with word-level timestamps.
type Client struct {
	endpoints  *failover.Endpoints
	httpClient *http.Client

	model       string
	computeType string
	device      string
	numWorkers  int
}

func NewClient(cfg config.TranscriptionConfig) (*Client, error) {
	eps, err := failover.New(cfg.Endpoints)
	if err != nil {
		return nil, fmt.Errorf("transcription endpoints: %w", err)
	}
	return &Client{
		endpoints: eps,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		model:       cfg.Model,
		computeType: cfg.ComputeType,
		device:      cfg.Device,
		numWorkers:  cfg.NumWorkers,
	}, nil
}

type transcribeRequest struct {
	AudioPath   string `json:"audio_path"`
	Model       string `json:"model"`
	Language    string `json:"language"`
	ComputeType string `json:"compute_type"`
	Device      string `json:"device"`
	NumWorkers  int    `json:"num_workers"`
}

// Transcribe sends the audio file at audioPath (the path is shared with the
// service) and returns ordered segments with word timing where available.
func (c *Client) Transcribe(ctx context.Context, audioPath, language string) (*Transcription, error) {
	req := transcribeRequest{
		AudioPath:   audioPath,
		Model:       c.model,
		Language:    language,
		ComputeType: c.computeType,
		Device:      c.device,
		NumWorkers:  c.numWorkers,
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode transcribe request: %w", err)
	}

	var result Transcription
	err = c.endpoints.Do(ctx, func(ctx context.Context, addr string) error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, addr+"/transcribe", bytes.NewReader(body))
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
		return json.NewDecoder(resp.Body).Decode(&result)
	})
	if err != nil {
		return nil, fmt.Errorf("transcribe %s: %w", audioPath, err)
	}

	log.Debug("Transcribed %s: %d segments, %.2fs", audioPath, len(result.Segments), result.Duration)
	return &result, nil
}

// Health reports whether any transcription endpoint answers its health probe.
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

// Models lists the model names the transcription service can serve.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	var models []string
	err := c.endpoints.Do(ctx, func(ctx context.Context, addr string) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr+"/models", nil)
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
		var payload struct {
			AvailableModels []string `json:"available_models"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return err
		}
		models = payload.AvailableModels
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return models, nil
}
