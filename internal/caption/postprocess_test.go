package caption

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostProcess_DropsShortCaptions(t *testing.T) {
	got := PostProcess([]Caption{
		{Text: "blip", StartMs: 0, EndMs: 50},
		{Text: "keep", StartMs: 200, EndMs: 800},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].Text)
}

func TestPostProcess_MergesCloseShortPairs(t *testing.T) {
	got := PostProcess([]Caption{
		{Text: "bir", StartMs: 0, EndMs: 300},
		{Text: "iki", StartMs: 350, EndMs: 700},
	})
	require.Len(t, got, 1)
	assert.Equal(t, Caption{Text: "bir iki", StartMs: 0, EndMs: 700}, got[0])
}

func TestPostProcess_NoMergeWhenGapTooLarge(t *testing.T) {
	got := PostProcess([]Caption{
		{Text: "bir", StartMs: 0, EndMs: 300},
		{Text: "iki", StartMs: 500, EndMs: 900},
	})
	assert.Len(t, got, 2)
}

func TestPostProcess_NoMergeWhenCombinedTextTooLong(t *testing.T) {
	long := strings.Repeat("a", 30)
	got := PostProcess([]Caption{
		{Text: long, StartMs: 0, EndMs: 300},
		{Text: long, StartMs: 350, EndMs: 700},
	})
	// Gap is under the threshold but the combined text is not: both
	// conditions are required for a merge.
	assert.Len(t, got, 2)
}

func TestPostProcess_MergeChains(t *testing.T) {
	got := PostProcess([]Caption{
		{Text: "a", StartMs: 0, EndMs: 200},
		{Text: "b", StartMs: 250, EndMs: 450},
		{Text: "c", StartMs: 500, EndMs: 700},
	})
	require.Len(t, got, 1)
	assert.Equal(t, Caption{Text: "a b c", StartMs: 0, EndMs: 700}, got[0])
}

func TestPostProcess_ClampsOverlap(t *testing.T) {
	long := strings.Repeat("x", 40)
	got := PostProcess([]Caption{
		{Text: long, StartMs: 0, EndMs: 600},
		{Text: long, StartMs: 400, EndMs: 1200},
	})
	require.Len(t, got, 2)
	assert.Equal(t, 600, got[1].StartMs)
}

// Property from the merge rule: after post-processing no two adjacent
// captions are both close together and short enough to merge, and the list
// stays ordered without overlap.
func TestPostProcess_Properties(t *testing.T) {
	inputs := [][]Caption{
		{
			{Text: "a", StartMs: 0, EndMs: 150},
			{Text: "b", StartMs: 160, EndMs: 320},
			{Text: "c", StartMs: 900, EndMs: 1100},
			{Text: "d", StartMs: 1150, EndMs: 1200},
			{Text: "e", StartMs: 1250, EndMs: 1500},
		},
		{
			{Text: strings.Repeat("w", 26), StartMs: 0, EndMs: 400},
			{Text: strings.Repeat("v", 26), StartMs: 420, EndMs: 800},
			{Text: "tiny", StartMs: 820, EndMs: 1300},
		},
	}

	for _, captions := range inputs {
		got := PostProcess(captions)
		for i := 1; i < len(got); i++ {
			prev, cur := got[i-1], got[i]
			assert.GreaterOrEqual(t, cur.StartMs, prev.EndMs, "captions must not overlap")

			gap := cur.StartMs - prev.EndMs
			combined := utf8.RuneCountInString(prev.Text + " " + cur.Text)
			assert.False(t, gap < mergeGapMs && combined < mergeMaxChars,
				"adjacent pair %d should have been merged", i)
		}
		for _, c := range got {
			assert.Less(t, c.StartMs, c.EndMs)
		}
	}
}
