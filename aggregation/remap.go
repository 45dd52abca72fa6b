package aggregation

import (
	"fmt"

	"github.com/acalliger/edspdf/model"
)

// RemapStyles shifts the local style spans of a zone's lines to offsets in
// the zone's assembled text. offsets[i] is the rune offset at which lines[i]
// begins. Spans keep the order in which they are met while scanning the
// lines; they are not re-sorted.
//
// A span outside its line is clamped to the line and flagged, so an invalid
// global offset is never produced.
func RemapStyles(label string, lines []model.LineRecord, offsets []int) ([]model.GlobalStyleSpan, []Warning) {
	return remapStyles(label, lines, offsets, nil)
}

// remapStyles does the work of RemapStyles. positions, when non-nil, maps a
// zone line index to its index in the caller's input for warnings.
func remapStyles(label string, lines []model.LineRecord, offsets []int, positions []int) ([]model.GlobalStyleSpan, []Warning) {
	spans := make([]model.GlobalStyleSpan, 0)
	var warnings []Warning

	for i, line := range lines {
		if len(line.Styles) == 0 {
			continue
		}
		n := line.RuneLen()
		offset := offsets[i]

		for j, s := range line.Styles {
			start, end, clamped := clampSpan(s.Start, s.End, n)
			if clamped {
				pos := i
				if positions != nil {
					pos = positions[i]
				}
				warnings = append(warnings, Warning{
					Kind:  WarnMalformedSpan,
					Label: label,
					Line:  pos,
					Span:  j,
					Message: fmt.Sprintf("span [%d, %d) outside line of length %d, clamped to [%d, %d)",
						s.Start, s.End, n, start, end),
				})
			}
			spans = append(spans, model.GlobalStyleSpan{
				Start:      offset + start,
				End:        offset + end,
				Attributes: s.Attributes.Clone(),
				Clamped:    clamped,
			})
		}
	}

	return spans, warnings
}

// clampSpan restricts [start, end) to 0 <= start <= end <= n
func clampSpan(start, end, n int) (int, int, bool) {
	cs, ce := start, end
	if cs < 0 {
		cs = 0
	}
	if cs > n {
		cs = n
	}
	if ce > n {
		ce = n
	}
	if ce < cs {
		ce = cs
	}
	return cs, ce, cs != start || ce != end
}
