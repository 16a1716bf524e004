// Package caption converts transcription output into time-coded caption
// units and paginates them for on-screen display.
package caption

// Caption is a single time-coded text unit meant for display.
// Invariant: StartMs < EndMs; within one scene's list StartMs is
// non-decreasing and intervals do not overlap after post-processing.
type Caption struct {
	Text    string `json:"text"`
	StartMs int    `json:"start_ms"`
	EndMs   int    `json:"end_ms"`
}

// Page is a bounded on-screen display window of grouped captions. Pages are
// derived from a caption list and can be regenerated at any time.
type Page struct {
	StartMs int         `json:"start_ms"`
	EndMs   int         `json:"end_ms"`
	Lines   [][]Caption `json:"lines"`
}

// slot is one timing interval of the transcription's timing skeleton.
type slot struct {
	startMs int
	endMs   int
}
