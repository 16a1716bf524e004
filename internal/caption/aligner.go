package caption

import (
	"strings"

	"reelsmith/internal/stt"
	"reelsmith/pkg/log"
)

// FromTranscript builds captions directly from recognized words (ASR-text
// mode, used when no authoritative script is available). Segments without
// word-level timestamps get evenly spaced per-word timing.
func FromTranscript(tr *stt.Transcription) []Caption {
	if tr == nil {
		return nil
	}

	captions := make([]Caption, 0)
	for _, seg := range tr.Segments {
		if len(seg.Words) > 0 {
			for _, w := range seg.Words {
				text := strings.TrimSpace(w.Word)
				if text == "" {
					continue
				}
				captions = append(captions, Caption{
					Text:    text,
					StartMs: toMs(w.Start),
					EndMs:   toMs(w.End),
				})
			}
			continue
		}
		captions = append(captions, spreadSegment(seg)...)
	}
	return captions
}

// Align reconciles authoritative script text with transcription timing
// (hybrid mode). The transcription's own words are discarded; only its timing
// skeleton is kept. When the authored word count matches the skeleton the two
// are zipped 1:1, otherwise the authored words are distributed evenly across
// the transcription's total duration.
func Align(script string, tr *stt.Transcription) []Caption {
	words := strings.Fields(script)
	if len(words) == 0 {
		return nil
	}
	if tr == nil {
		return nil
	}

	slots := timingSlots(tr)
	if len(slots) == len(words) {
		captions := make([]Caption, len(words))
		for i, word := range words {
			captions[i] = Caption{
				Text:    word,
				StartMs: slots[i].startMs,
				EndMs:   slots[i].endMs,
			}
		}
		return captions
	}

	log.Debug("Word count mismatch (script %d, timing %d), using proportional timing", len(words), len(slots))
	return proportional(words, totalDurationMs(tr, slots))
}

// proportional partitions [0, totalMs) into len(words) equal spans using
// integer boundaries, so the result is gap-free and overlap-free.
func proportional(words []string, totalMs int) []Caption {
	if totalMs <= 0 {
		return nil
	}
	captions := make([]Caption, len(words))
	n := len(words)
	for i, word := range words {
		captions[i] = Caption{
			Text:    word,
			StartMs: i * totalMs / n,
			EndMs:   (i + 1) * totalMs / n,
		}
	}
	return captions
}

// timingSlots extracts the ordered (start, end) skeleton from word-level
// timestamps, dividing segments evenly where word timing is absent.
func timingSlots(tr *stt.Transcription) []slot {
	slots := make([]slot, 0)
	for _, seg := range tr.Segments {
		if len(seg.Words) > 0 {
			for _, w := range seg.Words {
				slots = append(slots, slot{startMs: toMs(w.Start), endMs: toMs(w.End)})
			}
			continue
		}
		for _, c := range spreadSegment(seg) {
			slots = append(slots, slot{startMs: c.StartMs, endMs: c.EndMs})
		}
	}
	return slots
}

// spreadSegment divides a segment's duration evenly across its words when the
// model emitted no word timestamps.
func spreadSegment(seg stt.Segment) []Caption {
	words := strings.Fields(seg.Text)
	if len(words) == 0 {
		return nil
	}
	startMs := toMs(seg.Start)
	endMs := toMs(seg.End)
	span := endMs - startMs
	if span <= 0 {
		return nil
	}

	captions := make([]Caption, len(words))
	n := len(words)
	for i, word := range words {
		captions[i] = Caption{
			Text:    word,
			StartMs: startMs + i*span/n,
			EndMs:   startMs + (i+1)*span/n,
		}
	}
	return captions
}

func totalDurationMs(tr *stt.Transcription, slots []slot) int {
	if tr.Duration > 0 {
		return toMs(tr.Duration)
	}
	if len(slots) > 0 {
		return slots[len(slots)-1].endMs
	}
	return 0
}

func toMs(seconds float64) int {
	return int(seconds*1000 + 0.5)
}
