package caption

import "unicode/utf8"

const (
	// Captions shorter than this are alignment artifacts.
	minDurationMs = 100
	// Adjacent captions merge when the gap between them is under mergeGapMs
	// AND their combined text stays under mergeMaxChars. Both conditions are
	// required.
	mergeGapMs    = 100
	mergeMaxChars = 50
)

// PostProcess drops sub-100ms captions and merges over-fragmented adjacent
// pairs, returning an ordered, non-overlapping caption list.
func PostProcess(captions []Caption) []Caption {
	if len(captions) == 0 {
		return nil
	}

	out := make([]Caption, 0, len(captions))
	for _, c := range captions {
		if c.EndMs-c.StartMs < minDurationMs {
			continue
		}

		if len(out) > 0 {
			last := &out[len(out)-1]

			// Clamp any residual overlap from noisy word timing.
			if c.StartMs < last.EndMs {
				c.StartMs = last.EndMs
				if c.EndMs-c.StartMs < minDurationMs {
					continue
				}
			}

			gap := c.StartMs - last.EndMs
			combined := last.Text + " " + c.Text
			if gap < mergeGapMs && utf8.RuneCountInString(combined) < mergeMaxChars {
				last.Text = combined
				last.EndMs = c.EndMs
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
