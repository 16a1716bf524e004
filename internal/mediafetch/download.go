// Package mediafetch acquires visual assets: a retrying validated download
// path for stock footage and a generated-image still-clip path.
package mediafetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"reelsmith/internal/config"
	"reelsmith/pkg/log"
)

// Downloader streams remote assets to disk with validation and exponential
// backoff retries.
type Downloader struct {
	httpClient  *http.Client
	maxAttempts int
	sleep       func(time.Duration)
}

func NewDownloader(cfg config.FetchConfig) *Downloader {
	return &Downloader{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
			// Providers answer with a 301/302 to a CDN address; follow that
			// single hop and nothing further.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > 1 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		maxAttempts: cfg.MaxAttempts,
		sleep:       time.Sleep,
	}
}

// Fetch downloads url to dest. Each failed attempt deletes the partial file
// and backs off 2^attempt seconds; exhausting the budget returns an error
// naming the attempt count.
func (d *Downloader) Fetch(ctx context.Context, url, dest string) error {
	var lastErr error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		err := d.fetchOnce(ctx, url, dest)
		if err == nil {
			return nil
		}
		lastErr = err
		log.Warn("Download attempt %d/%d for %s failed: %v", attempt, d.maxAttempts, url, err)
		os.Remove(dest)

		if attempt < d.maxAttempts {
			d.sleep(time.Duration(1<<attempt) * time.Second)
		}
	}
	return fmt.Errorf("download %s failed after %d attempts: %w", url, d.maxAttempts, lastErr)
}

func (d *Downloader) fetchOnce(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	received, copyErr := io.Copy(file, resp.Body)
	closeErr := file.Close()
	if copyErr != nil {
		return copyErr
	}
	if closeErr != nil {
		return closeErr
	}

	if resp.ContentLength >= 0 && received != resp.ContentLength {
		return fmt.Errorf("size mismatch: received %d of %d bytes", received, resp.ContentLength)
	}
	if received == 0 {
		return fmt.Errorf("empty file")
	}
	return nil
}
