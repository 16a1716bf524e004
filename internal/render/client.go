// Package render hands the finished manifest to the external renderer
// collaborator and knows where its output artifact lands.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"reelsmith/internal/config"
	"reelsmith/internal/manifest"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	outputDir  string
}

func NewClient(cfg config.AssemblyConfig, outputDir string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RenderTimeout) * time.Second,
		},
		baseURL:   cfg.RenderURL,
		outputDir: outputDir,
	}
}

type renderRequest struct {
	JobID       string             `json:"job_id"`
	Orientation string             `json:"orientation"`
	Manifest    *manifest.Manifest `json:"manifest"`
}

// Render submits the manifest for composition. The renderer writes its
// artifact to OutputPath(jobID); frame composition is its business entirely.
func (c *Client) Render(ctx context.Context, jobID, orientation string, m *manifest.Manifest) error {
	body, err := json.Marshal(renderRequest{
		JobID:       jobID,
		Orientation: orientation,
		Manifest:    m,
	})
	if err != nil {
		return fmt.Errorf("encode render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("render job %s: %w", jobID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("render job %s: unexpected status %d", jobID, resp.StatusCode)
	}
	return nil
}

// OutputPath is the predictable artifact location for a job.
func (c *Client) OutputPath(jobID string) string {
	return filepath.Join(c.outputDir, jobID+".mp4")
}

// ArtifactExists reports whether the renderer has produced the job's output.
func (c *Client) ArtifactExists(jobID string) bool {
	info, err := os.Stat(c.OutputPath(jobID))
	return err == nil && info.Size() > 0
}
