// Package stock queries the stock-footage collaborator for one downloadable
// video candidate per scene.
package stock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reelsmith/internal/config"
	"reelsmith/pkg/log"
)

// Candidate is one downloadable asset.
type Candidate struct {
	ID  string
	URL string
}

// Client talks to a Pexels-style video search API.
type Client struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
}

func NewClient(cfg config.FetchConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		apiURL: cfg.StockAPIURL,
		apiKey: cfg.StockAPIKey,
	}
}

type searchResponse struct {
	Videos []struct {
		ID         int     `json:"id"`
		Duration   float64 `json:"duration"`
		VideoFiles []struct {
			Link   string `json:"link"`
			Width  int    `json:"width"`
			Height int    `json:"height"`
		} `json:"video_files"`
	} `json:"videos"`
}

// Find returns one candidate matching the search terms whose duration covers
// the target, skipping asset ids in exclude. When no candidate covers the
// target duration, the longest non-excluded result is returned instead.
func (c *Client) Find(ctx context.Context, terms []string, target time.Duration, orientation string, exclude map[string]bool) (*Candidate, error) {
	query := url.Values{}
	query.Set("query", strings.Join(terms, " "))
	query.Set("orientation", orientation)
	query.Set("per_page", "15")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stock search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stock search: unexpected status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("stock search: %w", err)
	}

	var fallback *Candidate
	var fallbackDuration float64
	for _, video := range payload.Videos {
		id := fmt.Sprintf("%d", video.ID)
		if exclude[id] || len(video.VideoFiles) == 0 {
			continue
		}
		candidate := &Candidate{ID: id, URL: video.VideoFiles[0].Link}
		if video.Duration >= target.Seconds() {
			return candidate, nil
		}
		if video.Duration > fallbackDuration {
			fallback = candidate
			fallbackDuration = video.Duration
		}
	}

	if fallback != nil {
		log.Warn("No stock result covers %.1fs for %q, using %.1fs candidate", target.Seconds(), strings.Join(terms, " "), fallbackDuration)
		return fallback, nil
	}
	return nil, fmt.Errorf("no stock footage found for %q", strings.Join(terms, " "))
}
