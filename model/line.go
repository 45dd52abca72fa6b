package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrInvalidLine is returned for a line record whose shape cannot be aggregated
	ErrInvalidLine = errors.New("invalid line record")

	// ErrInvalidResult is returned when an aggregation result breaks its offset invariant
	ErrInvalidResult = errors.New("invalid aggregation result")

	// ErrUnsupportedValue is returned for a style attribute that is not a bool, number or string
	ErrUnsupportedValue = errors.New("unsupported attribute value")
)

// StyleSpan annotates the runes [Start, End) of a single line
type StyleSpan struct {
	Start      int        `json:"start" msgpack:"start"`
	End        int        `json:"end" msgpack:"end"`
	Attributes Attributes `json:"attributes,omitempty" msgpack:"attributes,omitempty"`
}

// UnmarshalJSON accepts both the nested form
//
//	{"start": 0, "end": 3, "attributes": {"bold": true}}
//
// and the flat form produced by style extractors
//
//	{"start": 0, "end": 3, "bold": true}
func (s *StyleSpan) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	start, ok := fields["start"]
	if !ok {
		return fmt.Errorf("style span: missing start")
	}
	end, ok := fields["end"]
	if !ok {
		return fmt.Errorf("style span: missing end")
	}

	var out StyleSpan
	if err := json.Unmarshal(start, &out.Start); err != nil {
		return fmt.Errorf("style span start: %w", err)
	}
	if err := json.Unmarshal(end, &out.End); err != nil {
		return fmt.Errorf("style span end: %w", err)
	}

	for key, raw := range fields {
		switch key {
		case "start", "end":
			continue
		case "attributes":
			var nested Attributes
			if err := json.Unmarshal(raw, &nested); err != nil {
				return fmt.Errorf("style span attributes: %w", err)
			}
			for k, v := range nested {
				if out.Attributes == nil {
					out.Attributes = make(Attributes)
				}
				out.Attributes[k] = v
			}
		default:
			var v Value
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("style attribute %q: %w", key, err)
			}
			if !v.IsValid() {
				continue
			}
			if out.Attributes == nil {
				out.Attributes = make(Attributes)
			}
			out.Attributes[key] = v
		}
	}

	*s = out
	return nil
}

// InRange reports whether the span satisfies 0 <= Start <= End <= n
func (s StyleSpan) InRange(n int) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End <= n
}

// GlobalStyleSpan is a style span whose offsets are measured against the
// assembled text of its zone
type GlobalStyleSpan struct {
	Start      int        `json:"start" msgpack:"start"`
	End        int        `json:"end" msgpack:"end"`
	Attributes Attributes `json:"attributes,omitempty" msgpack:"attributes,omitempty"`

	// Clamped is set when the local span was out of range and had to be
	// clamped to its line before remapping
	Clamped bool `json:"clamped,omitempty" msgpack:"clamped,omitempty"`
}

// Len returns the number of runes covered by the span
func (s GlobalStyleSpan) Len() int {
	return s.End - s.Start
}

// LineRecord is one classified line of text on a page
type LineRecord struct {
	// Text is the raw text content of the line
	Text string `json:"text" msgpack:"text"`

	// BBox is the page-normalized bounding box of the line
	BBox BBox `json:"bbox" msgpack:"bbox"`

	// Label is the zone assigned by the classifier; empty when unclassified
	Label string `json:"label,omitempty" msgpack:"label,omitempty"`

	// Page is the zero-based page index
	Page int `json:"page,omitempty" msgpack:"page,omitempty"`

	// Styles are style spans local to Text
	Styles []StyleSpan `json:"styles,omitempty" msgpack:"styles,omitempty"`
}

// RuneLen returns the length of Text in runes, the unit of all style offsets
func (l LineRecord) RuneLen() int {
	return utf8.RuneCountInString(l.Text)
}

// IsLabeled reports whether the line was assigned a zone
func (l LineRecord) IsLabeled() bool {
	return l.Label != ""
}

// Validate checks the structural requirements of a line record. Style span
// ranges are not checked here; out-of-range spans are repaired during
// aggregation.
func (l LineRecord) Validate() error {
	if !l.BBox.IsValid() {
		return fmt.Errorf("%w: bbox (%g, %g, %g, %g) is not a non-degenerate box inside the page",
			ErrInvalidLine, l.BBox.X0, l.BBox.Y0, l.BBox.X1, l.BBox.Y1)
	}
	if l.Page < 0 {
		return fmt.Errorf("%w: negative page index %d", ErrInvalidLine, l.Page)
	}
	if !utf8.ValidString(l.Text) {
		return fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidLine)
	}
	for i, s := range l.Styles {
		for name, v := range s.Attributes {
			if !v.IsValid() {
				return fmt.Errorf("%w: style %d attribute %q has no value", ErrInvalidLine, i, name)
			}
		}
	}
	return nil
}
