package layout

import (
	"errors"
	"fmt"
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/acalliger/edspdf/model"
)

// ErrInvalidConfig is returned when newline thresholds are unusable
var ErrInvalidConfig = errors.New("invalid newline configuration")

// Break is the kind of separator placed between two consecutive lines
type Break int

const (
	// BreakNone joins the lines directly; one side already supplies whitespace
	BreakNone Break = iota
	// BreakSpace joins the lines of one visual flow with a single space
	BreakSpace
	// BreakLine starts a new line
	BreakLine
	// BreakParagraph starts a new paragraph
	BreakParagraph
)

// String returns a string representation of the break
func (b Break) String() string {
	switch b {
	case BreakSpace:
		return "space"
	case BreakLine:
		return "line"
	case BreakParagraph:
		return "paragraph"
	default:
		return "none"
	}
}

// Separator returns the text inserted for the break
func (b Break) Separator() string {
	switch b {
	case BreakSpace:
		return " "
	case BreakLine:
		return "\n"
	case BreakParagraph:
		return "\n\n"
	default:
		return ""
	}
}

// NewlineConfig holds configuration for break detection.
//
// Thresholds are absolute deltas in page-normalized coordinates, compared
// against the signed vertical gap between two lines (top of the later line
// minus bottom of the earlier one), i.e. a fraction of the page height.
// A gap equal to NLThreshold always gives a line break, whatever the
// indentation; a gap equal to NPThreshold does not yet warrant a paragraph
// break.
type NewlineConfig struct {
	// NLThreshold is the gap from which lines are separated by a line break
	// instead of being joined in the same flow. No default.
	NLThreshold float64

	// NPThreshold is the gap above which lines are separated by a paragraph
	// break. Must be >= NLThreshold. No default.
	NPThreshold float64

	// IndentThreshold is the horizontal offset from the left margin, in
	// normalized page units, beyond which a line is considered indented.
	// An indented line following a non-indented one starts a paragraph.
	// Zero disables the indentation signal.
	IndentThreshold float64

	// LeftMargin is the baseline for indentation. Nil means the margin is
	// detected from the zone's own lines.
	LeftMargin *float64

	// MarginTolerance is the bucket width used by margin detection
	// Default: 0.01
	MarginTolerance float64
}

// DefaultNewlineConfig returns a configuration with the given thresholds and
// defaults for everything else. The thresholds depend on the geometry of the
// source documents and are always supplied by the caller.
func DefaultNewlineConfig(nlThreshold, npThreshold float64) NewlineConfig {
	return NewlineConfig{
		NLThreshold:     nlThreshold,
		NPThreshold:     npThreshold,
		IndentThreshold: 0,
		MarginTolerance: 0.01,
	}
}

// Validate checks that the configuration can drive break decisions
func (c NewlineConfig) Validate() error {
	if math.IsNaN(c.NLThreshold) || math.IsNaN(c.NPThreshold) {
		return fmt.Errorf("%w: thresholds must be numbers", ErrInvalidConfig)
	}
	if c.NLThreshold < 0 || c.NPThreshold < 0 {
		return fmt.Errorf("%w: thresholds must not be negative (nl=%g, np=%g)", ErrInvalidConfig, c.NLThreshold, c.NPThreshold)
	}
	if c.NPThreshold < c.NLThreshold {
		return fmt.Errorf("%w: np threshold %g is below nl threshold %g", ErrInvalidConfig, c.NPThreshold, c.NLThreshold)
	}
	if c.IndentThreshold < 0 || math.IsNaN(c.IndentThreshold) {
		return fmt.Errorf("%w: indent threshold must not be negative", ErrInvalidConfig)
	}
	if c.LeftMargin != nil && (math.IsNaN(*c.LeftMargin) || *c.LeftMargin < 0 || *c.LeftMargin > 1) {
		return fmt.Errorf("%w: left margin %g outside the page", ErrInvalidConfig, *c.LeftMargin)
	}
	if c.MarginTolerance < 0 || math.IsNaN(c.MarginTolerance) {
		return fmt.Errorf("%w: margin tolerance must not be negative", ErrInvalidConfig)
	}
	return nil
}

// NewlinePolicy decides which separator goes between consecutive lines of
// one zone. It is immutable and safe for concurrent use.
type NewlinePolicy struct {
	config NewlineConfig
}

// NewNewlinePolicy creates a policy after validating its configuration
func NewNewlinePolicy(config NewlineConfig) (*NewlinePolicy, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.MarginTolerance == 0 {
		config.MarginTolerance = 0.01
	}
	if config.LeftMargin != nil {
		margin := *config.LeftMargin
		config.LeftMargin = &margin
	}
	return &NewlinePolicy{config: config}, nil
}

// Config returns the policy configuration
func (p *NewlinePolicy) Config() NewlineConfig {
	return p.config
}

// Margin returns the indentation baseline for a zone: the configured left
// margin, or the margin detected from the zone's lines
func (p *NewlinePolicy) Margin(lines []model.LineRecord) float64 {
	if p.config.LeftMargin != nil {
		return *p.config.LeftMargin
	}
	return DetectLeftMargin(lines, p.config.MarginTolerance)
}

// Decide returns the break between line a and the line b that follows it
// in reading order. Both lines belong to the same zone.
func (p *NewlinePolicy) Decide(a, b model.LineRecord, margin float64) Break {
	return p.decideAfter(a, b, margin, a.Text)
}

// decideAfter is Decide where tail is the zone text emitted so far. Only its
// last rune matters: it decides whether a same-flow join needs a space when
// a itself is empty.
func (p *NewlinePolicy) decideAfter(a, b model.LineRecord, margin float64, tail string) Break {
	indented := p.startsIndented(a, b, margin)

	// Geometry is not comparable across pages
	if a.Page != b.Page {
		if indented {
			return BreakParagraph
		}
		return BreakLine
	}

	gap := a.BBox.VerticalGap(b.BBox)

	switch {
	case gap < p.config.NLThreshold:
		if needsSpace(tail, b.Text) {
			return BreakSpace
		}
		return BreakNone
	case gap == p.config.NLThreshold:
		// Ties resolve to a plain line break, even for an indented line
		return BreakLine
	case gap > p.config.NPThreshold:
		return BreakParagraph
	case indented:
		return BreakParagraph
	default:
		return BreakLine
	}
}

// Separator returns the text placed between line a and line b
func (p *NewlinePolicy) Separator(a, b model.LineRecord, margin float64) string {
	return p.Decide(a, b, margin).Separator()
}

// Separators returns, for each line of a zone, the separator that follows
// it. The last line is followed by nothing. Empty lines are looked through:
// the breaks around a run of empty lines collapse into the strongest of
// them, placed before the next text, so words around the run are still
// separated and breaks never stack.
func (p *NewlinePolicy) Separators(lines []model.LineRecord) []string {
	if len(lines) == 0 {
		return nil
	}
	margin := p.Margin(lines)

	breaks := make([]Break, len(lines)-1)
	tail := ""
	for i := range breaks {
		if lines[i].Text != "" {
			tail = lines[i].Text
		}
		breaks[i] = p.decideAfter(lines[i], lines[i+1], margin, tail)
	}

	seps := make([]string, len(lines))
	for i := 0; i < len(breaks); i++ {
		strongest := breaks[i]
		for i+1 < len(breaks) && lines[i+1].Text == "" {
			i++
			strongest = max(strongest, breaks[i])
		}
		seps[i] = strongest.Separator()
	}
	return seps
}

// startsIndented reports whether b is indented relative to the margin while
// a is not
func (p *NewlinePolicy) startsIndented(a, b model.LineRecord, margin float64) bool {
	if p.config.IndentThreshold <= 0 {
		return false
	}
	lineIndent := b.BBox.X0 - margin
	prevIndent := a.BBox.X0 - margin
	return lineIndent > p.config.IndentThreshold && prevIndent <= p.config.IndentThreshold
}

// needsSpace reports whether joining prev and next directly would glue two
// words together
func needsSpace(prev, next string) bool {
	if prev == "" || next == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(prev)
	first, _ := utf8.DecodeRuneInString(next)
	return !unicode.IsSpace(last) && !unicode.IsSpace(first)
}
