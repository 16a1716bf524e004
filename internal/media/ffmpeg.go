// Package media wraps the ffmpeg and ffprobe binaries for the audio and
// clip operations the pipeline needs.
package media

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"reelsmith/pkg/log"
)

type Operator struct {
	ffmpegCmd  string
	ffprobeCmd string
}

func NewOperator() Operator {
	return Operator{
		ffmpegCmd:  "ffmpeg",
		ffprobeCmd: "ffprobe",
	}
}

// NormalizeAudio converts audio to the mono 16 kHz PCM WAV the transcription
// service expects.
func (op Operator) NormalizeAudio(src, dst string) error {
	cmdPath, err := exec.LookPath(op.ffmpegCmd)
	if err != nil {
		return err
	}
	cmd := exec.Command(cmdPath,
		"-y",
		"-i", src,
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		dst,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		log.Error("ffmpeg normalize failed: %s", string(output))
		return fmt.Errorf("normalize audio %s: %w", src, err)
	}
	return nil
}

// StillClip holds a single image for the given duration, producing a video
// clip at the requested resolution and frame rate.
func (op Operator) StillClip(image, dst string, durationSec float64, width, height, fps int) error {
	cmdPath, err := exec.LookPath(op.ffmpegCmd)
	if err != nil {
		return err
	}
	scale := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d", width, height, width, height)
	cmd := exec.Command(cmdPath,
		"-y",
		"-loop", "1",
		"-i", image,
		"-t", strconv.FormatFloat(durationSec, 'f', 3, 64),
		"-vf", scale+",format=yuv420p",
		"-r", strconv.Itoa(fps),
		"-c:v", "libx264",
		dst,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		log.Error("ffmpeg still clip failed: %s", string(output))
		return fmt.Errorf("build still clip from %s: %w", image, err)
	}
	return nil
}

// ProbeDuration reads a media file's duration in seconds via ffprobe.
func (op Operator) ProbeDuration(path string) (float64, error) {
	cmdPath, err := exec.LookPath(op.ffprobeCmd)
	if err != nil {
		return 0, err
	}
	cmd := exec.Command(cmdPath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}

	var probeResult struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(output, &probeResult); err != nil {
		return 0, fmt.Errorf("parse ffprobe output for %s: %w", path, err)
	}

	seconds, err := strconv.ParseFloat(probeResult.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probeResult.Format.Duration, err)
	}
	return seconds, nil
}
