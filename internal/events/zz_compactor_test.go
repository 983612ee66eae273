package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompact_ClickSequence(t *testing.T) {
	tests := []struct {
		name     string
		raw      []Event
		expected []Event
	}{
		{
			name: "full click sequence collapses to one click",
			raw: []Event{
				{Kind: KindMouseDown, Target: "#btn"},
				{Kind: KindMouseUp, Target: "#btn"},
				{Kind: KindClick, Target: "#btn"},
			},
			expected: []Event{
				{Kind: KindClick, Target: "#btn"},
			},
		},
		{
			name: "mismatched targets pass through unchanged",
			raw: []Event{
				{Kind: KindMouseDown, Target: "#a"},
				{Kind: KindMouseUp, Target: "#b"},
				{Kind: KindClick, Target: "#a"},
			},
			expected: []Event{
				{Kind: KindMouseDown, Target: "#a"},
				{Kind: KindMouseUp, Target: "#b"},
				{Kind: KindClick, Target: "#a"},
			},
		},
		{
			name: "incomplete prefix passes through until completed",
			raw: []Event{
				{Kind: KindMouseDown, Target: "#btn"},
				{Kind: KindMouseUp, Target: "#btn"},
			},
			expected: []Event{
				{Kind: KindMouseDown, Target: "#btn"},
				{Kind: KindMouseUp, Target: "#btn"},
			},
		},
		{
			name: "window must be contiguous",
			raw: []Event{
				{Kind: KindMouseDown, Target: "#btn"},
				{Kind: KindPageLoad},
				{Kind: KindMouseUp, Target: "#btn"},
				{Kind: KindClick, Target: "#btn"},
			},
			expected: []Event{
				{Kind: KindMouseDown, Target: "#btn"},
				{Kind: KindPageLoad},
				{Kind: KindMouseUp, Target: "#btn"},
				{Kind: KindClick, Target: "#btn"},
			},
		},
		{
			name: "back to back click sequences",
			raw: []Event{
				{Kind: KindMouseDown, Target: "#a"},
				{Kind: KindMouseUp, Target: "#a"},
				{Kind: KindClick, Target: "#a"},
				{Kind: KindMouseDown, Target: "#b"},
				{Kind: KindMouseUp, Target: "#b"},
				{Kind: KindClick, Target: "#b"},
			},
			expected: []Event{
				{Kind: KindClick, Target: "#a"},
				{Kind: KindClick, Target: "#b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compact(tt.raw))
		})
	}
}

func TestCompact_FillSequence(t *testing.T) {
	tests := []struct {
		name     string
		raw      []Event
		expected []Event
	}{
		{
			name: "run of keypresses collapses to fill with final value",
			raw: []Event{
				{Kind: KindKeypress, Target: "#in", Key: "h", InputValue: "h"},
				{Kind: KindKeypress, Target: "#in", Key: "i", InputValue: "hi"},
				{Kind: KindKeypress, Target: "#in", Key: "!", InputValue: "hi!"},
			},
			expected: []Event{
				{Kind: KindFill, Target: "#in", InputValue: "hi!"},
			},
		},
		{
			name: "single keypress still becomes a fill",
			raw: []Event{
				{Kind: KindKeypress, Target: "#in", Key: "a", InputValue: "a"},
			},
			expected: []Event{
				{Kind: KindFill, Target: "#in", InputValue: "a"},
			},
		},
		{
			name: "named key never starts a run",
			raw: []Event{
				{Kind: KindKeypress, Target: "#in", Key: "ArrowLeft", InputValue: "ab"},
				{Kind: KindKeypress, Target: "#in", Key: "c", InputValue: "acb"},
				{Kind: KindKeypress, Target: "#in", Key: "d", InputValue: "acdb"},
			},
			expected: []Event{
				{Kind: KindKeypress, Target: "#in", Key: "ArrowLeft", InputValue: "ab"},
				{Kind: KindFill, Target: "#in", InputValue: "acdb"},
			},
		},
		{
			name: "named key inside a run does not break it",
			raw: []Event{
				{Kind: KindKeypress, Target: "#in", Key: "a", InputValue: "a"},
				{Kind: KindKeypress, Target: "#in", Key: "Backspace", InputValue: ""},
				{Kind: KindKeypress, Target: "#in", Key: "b", InputValue: "b"},
			},
			expected: []Event{
				{Kind: KindFill, Target: "#in", InputValue: "b"},
			},
		},
		{
			name: "target change splits runs",
			raw: []Event{
				{Kind: KindKeypress, Target: "#one", Key: "a", InputValue: "a"},
				{Kind: KindKeypress, Target: "#two", Key: "b", InputValue: "b"},
			},
			expected: []Event{
				{Kind: KindFill, Target: "#one", InputValue: "a"},
				{Kind: KindFill, Target: "#two", InputValue: "b"},
			},
		},
		{
			name: "multibyte key counts as one character",
			raw: []Event{
				{Kind: KindKeypress, Target: "#in", Key: "é", InputValue: "é"},
			},
			expected: []Event{
				{Kind: KindFill, Target: "#in", InputValue: "é"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compact(tt.raw))
		})
	}
}

func TestCompact_MixedTimeline(t *testing.T) {
	raw := []Event{
		{Kind: KindMouseDown, Target: "#btn"},
		{Kind: KindMouseUp, Target: "#btn"},
		{Kind: KindClick, Target: "#btn"},
		{Kind: KindKeypress, Target: "#in", Key: "a", InputValue: "a"},
		{Kind: KindKeypress, Target: "#in", Key: "b", InputValue: "ab"},
		{Kind: KindPageLoad},
	}

	compacted := Compact(raw)

	require.Len(t, compacted, 3)
	assert.Equal(t, Event{Kind: KindClick, Target: "#btn"}, compacted[0])
	assert.Equal(t, Event{Kind: KindFill, Target: "#in", InputValue: "ab"}, compacted[1])
	assert.Equal(t, Event{Kind: KindPageLoad}, compacted[2])
}

func TestCompact_EmptyLog(t *testing.T) {
	assert.Empty(t, Compact(nil))
	assert.Empty(t, Compact([]Event{}))
}

func TestCompact_DoesNotMutateInput(t *testing.T) {
	raw := []Event{
		{Kind: KindMouseDown, Target: "#btn"},
		{Kind: KindMouseUp, Target: "#btn"},
		{Kind: KindClick, Target: "#btn"},
	}
	original := make([]Event, len(raw))
	copy(original, raw)

	Compact(raw)

	assert.Equal(t, original, raw)
}

func TestCompact_IsDeterministic(t *testing.T) {
	raw := []Event{
		{Kind: KindMouseDown, Target: "#btn"},
		{Kind: KindMouseUp, Target: "#btn"},
		{Kind: KindClick, Target: "#btn"},
		{Kind: KindKeypress, Target: "#in", Key: "x", InputValue: "x"},
	}

	assert.Equal(t, Compact(raw), Compact(raw))
}
