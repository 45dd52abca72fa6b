package model

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// AggregationResult holds the assembled text and remapped styles of every
// zone present in a page or document
type AggregationResult struct {
	// Text maps each zone label to its assembled text. A label is present
	// only if at least one classified line carried it.
	Text map[string]string `json:"text" msgpack:"text"`

	// Styles maps each zone label to its style spans, in reading order.
	// Every key of Text has an entry, possibly empty.
	Styles map[string][]GlobalStyleSpan `json:"styles" msgpack:"styles"`
}

// NewAggregationResult creates an empty result with non-nil maps
func NewAggregationResult() *AggregationResult {
	return &AggregationResult{
		Text:   make(map[string]string),
		Styles: make(map[string][]GlobalStyleSpan),
	}
}

// Labels returns the zone labels present in the result, sorted
func (r *AggregationResult) Labels() []string {
	labels := make([]string, 0, len(r.Text))
	for label := range r.Text {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Has reports whether the zone was present in the input
func (r *AggregationResult) Has(label string) bool {
	_, ok := r.Text[label]
	return ok
}

// Get returns the text and styles of a zone
func (r *AggregationResult) Get(label string) (string, []GlobalStyleSpan, bool) {
	text, ok := r.Text[label]
	if !ok {
		return "", nil, false
	}
	return text, r.Styles[label], true
}

// Substring returns the runes of a zone's text covered by span
func (r *AggregationResult) Substring(label string, span GlobalStyleSpan) string {
	runes := []rune(r.Text[label])
	if span.Start < 0 || span.End > len(runes) || span.Start > span.End {
		return ""
	}
	return string(runes[span.Start:span.End])
}

// Validate checks that styles only reference present zones and that every
// span lies within its zone's text
func (r *AggregationResult) Validate() error {
	for label, spans := range r.Styles {
		text, ok := r.Text[label]
		if !ok {
			return fmt.Errorf("%w: styles for absent zone %q", ErrInvalidResult, label)
		}
		n := utf8.RuneCountInString(text)
		for i, s := range spans {
			if s.Start < 0 || s.Start > s.End || s.End > n {
				return fmt.Errorf("%w: zone %q span %d [%d, %d) outside text of length %d",
					ErrInvalidResult, label, i, s.Start, s.End, n)
			}
		}
	}
	return nil
}
