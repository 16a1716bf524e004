package mediafetch

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"time"
)

// DefaultFPS is the canonical frame rate for generated clips.
const DefaultFPS = 30

// StillClipper builds a fixed-duration clip from a single image.
type StillClipper interface {
	StillClip(image, dst string, durationSec float64, width, height, fps int) error
}

// ClipGenerator fetches a generated image for a text prompt and holds it for
// the scene's audio duration, substituting for stock footage.
type ClipGenerator struct {
	downloader *Downloader
	baseURL    string
	clipper    StillClipper
}

func NewClipGenerator(downloader *Downloader, baseURL string, clipper StillClipper) *ClipGenerator {
	return &ClipGenerator{
		downloader: downloader,
		baseURL:    baseURL,
		clipper:    clipper,
	}
}

// ImageURL templates the prompt into the generation base address.
func (g *ClipGenerator) ImageURL(prompt string, width, height int) string {
	u := g.baseURL + url.PathEscape(prompt)
	if width > 0 && height > 0 {
		u += fmt.Sprintf("?width=%d&height=%d", width, height)
	}
	return u
}

// Generate downloads the generated image and produces a clip of exactly
// audioDuration at the given resolution under destDir.
func (g *ClipGenerator) Generate(ctx context.Context, prompt string, width, height int, audioDuration time.Duration, destDir string) (string, error) {
	imagePath := filepath.Join(destDir, "generated.jpg")
	if err := g.downloader.Fetch(ctx, g.ImageURL(prompt, width, height), imagePath); err != nil {
		return "", fmt.Errorf("fetch generated image: %w", err)
	}

	clipPath := filepath.Join(destDir, "generated.mp4")
	if err := g.clipper.StillClip(imagePath, clipPath, audioDuration.Seconds(), width, height, DefaultFPS); err != nil {
		return "", err
	}
	return clipPath, nil
}
