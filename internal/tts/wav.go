package tts

import "time"

// The synthesis service frames audio as 16-bit mono PCM at 22050 Hz with a
// 44-byte RIFF header.
const (
	wavHeaderSize  = 44
	wavSampleRate  = 22050
	wavBytesPerSec = wavSampleRate * 2
)

// EstimateDuration derives a provisional duration from WAV byte length. True
// caption timing from the transcription supersedes it where available.
func EstimateDuration(audio []byte) time.Duration {
	payload := len(audio) - wavHeaderSize
	if payload <= 0 {
		return 0
	}
	return time.Duration(float64(payload) / wavBytesPerSec * float64(time.Second))
}
