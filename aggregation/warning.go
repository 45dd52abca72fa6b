package aggregation

import (
	"fmt"
	"strings"
)

// WarningKind classifies a non-fatal anomaly met during aggregation
type WarningKind int

const (
	// WarnMalformedSpan marks a style span whose offsets were outside its
	// line and had to be clamped
	WarnMalformedSpan WarningKind = iota
	// WarnUnlabeledLine reports lines excluded because no zone was assigned
	WarnUnlabeledLine
	// WarnRejectedLine marks a line dropped because its shape was invalid
	WarnRejectedLine
)

// String returns a string representation of the warning kind
func (k WarningKind) String() string {
	switch k {
	case WarnMalformedSpan:
		return "malformed-span"
	case WarnUnlabeledLine:
		return "unlabeled-line"
	case WarnRejectedLine:
		return "rejected-line"
	default:
		return "unknown"
	}
}

// Warning describes a non-fatal issue. Aggregation always completes; a
// warning tells the caller which fragment was repaired or skipped.
type Warning struct {
	Kind WarningKind

	// Label is the zone concerned, empty if none
	Label string

	// Line is the index of the line in the caller's input, before any
	// reading order sort, -1 if the warning is not tied to a single line
	Line int

	// Span is the index of the style span within its line, -1 if none
	Span int

	Message string
}

// String formats the warning on one line
func (w Warning) String() string {
	var sb strings.Builder
	sb.WriteString(w.Kind.String())
	if w.Label != "" {
		fmt.Fprintf(&sb, " zone=%q", w.Label)
	}
	if w.Line >= 0 {
		fmt.Fprintf(&sb, " line=%d", w.Line)
	}
	if w.Span >= 0 {
		fmt.Fprintf(&sb, " span=%d", w.Span)
	}
	if w.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(w.Message)
	}
	return sb.String()
}

// FormatWarnings renders warnings one per line
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// CountWarnings returns the number of warnings of the given kind
func CountWarnings(warnings []Warning, kind WarningKind) int {
	n := 0
	for _, w := range warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}
