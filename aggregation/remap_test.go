package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acalliger/edspdf/model"
)

func TestClampSpan(t *testing.T) {
	tests := []struct {
		name               string
		start, end, n      int
		wantStart, wantEnd int
		clamped            bool
	}{
		{"in range", 0, 2, 2, 0, 2, false},
		{"empty span", 1, 1, 2, 1, 1, false},
		{"end past line", 0, 5, 2, 0, 2, true},
		{"negative start", -1, 1, 2, 0, 1, true},
		{"start past line", 4, 6, 2, 2, 2, true},
		{"inverted", 2, 1, 3, 2, 2, true},
		{"empty line", 0, 1, 0, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e, c := clampSpan(tt.start, tt.end, tt.n)
			assert.Equal(t, tt.wantStart, s)
			assert.Equal(t, tt.wantEnd, e)
			assert.Equal(t, tt.clamped, c)
		})
	}
}

func TestRemapStyles(t *testing.T) {
	lines := []model.LineRecord{
		{Text: "0123456789", Styles: []model.StyleSpan{bold(0, 2), bold(5, 10)}},
		{Text: "no styles"},
		{Text: "Bonjour", Styles: []model.StyleSpan{bold(0, 3)}},
	}
	offsets := []int{0, 11, 21}

	spans, warnings := RemapStyles("body", lines, offsets)
	assert.Empty(t, warnings)
	require.Len(t, spans, 3)
	assert.Equal(t, [2]int{0, 2}, [2]int{spans[0].Start, spans[0].End})
	assert.Equal(t, [2]int{5, 10}, [2]int{spans[1].Start, spans[1].End})
	assert.Equal(t, [2]int{21, 24}, [2]int{spans[2].Start, spans[2].End})
}

func TestRemapStyles_KeepsScanOrder(t *testing.T) {
	lines := []model.LineRecord{
		{Text: "abcdef", Styles: []model.StyleSpan{bold(4, 6), bold(0, 2)}},
	}
	spans, _ := RemapStyles("body", lines, []int{3})
	require.Len(t, spans, 2)
	assert.Equal(t, 7, spans[0].Start)
	assert.Equal(t, 3, spans[1].Start)
}

func TestRemapStyles_NoStyles(t *testing.T) {
	spans, warnings := RemapStyles("body", []model.LineRecord{{Text: "plain"}}, []int{0})
	assert.NotNil(t, spans)
	assert.Empty(t, spans)
	assert.Empty(t, warnings)
}

func TestRemapStyles_RuneOffsets(t *testing.T) {
	lines := []model.LineRecord{
		{Text: "Créteil", Styles: []model.StyleSpan{bold(0, 7)}},
	}
	spans, warnings := RemapStyles("header", lines, []int{4})
	assert.Empty(t, warnings)
	require.Len(t, spans, 1)
	assert.Equal(t, 11, spans[0].End)
	assert.False(t, spans[0].Clamped)
}

func TestRemapStyles_MalformedWarning(t *testing.T) {
	lines := []model.LineRecord{
		{Text: "Hi", Styles: []model.StyleSpan{bold(0, 5)}},
	}
	spans, warnings := RemapStyles("body", lines, []int{10})
	require.Len(t, spans, 1)
	assert.Equal(t, 12, spans[0].End)
	assert.True(t, spans[0].Clamped)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnMalformedSpan, warnings[0].Kind)
	assert.Contains(t, warnings[0].Message, "[0, 5)")
}
