// Package edspdf provides a fluent API for turning classified text lines
// into per-zone text with style spans.
//
// Basic usage:
//
//	res, warnings, err := edspdf.FromLines(lines).
//	    Thresholds(0.005, 0.02).
//	    Aggregate()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", edspdf.FormatWarnings(warnings))
//	}
//	body := res.Text["body"]
//
// Reading records from a file:
//
//	text, _, err := edspdf.Open("lines.jsonl").
//	    Thresholds(0.005, 0.02).
//	    SortReadingOrder().
//	    Text("body")
//
// The aggregation, layout and model packages expose the lower-level pieces.
package edspdf

import (
	"github.com/acalliger/edspdf/aggregation"
	"github.com/acalliger/edspdf/model"
)

// Warning describes a non-fatal issue met during aggregation.
type Warning = aggregation.Warning

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	return aggregation.FormatWarnings(warnings)
}

// Open returns a Pipeline reading line records from a file. The file is read
// when a terminal operation runs; its format is detected from the extension
// or the content.
//
// Example:
//
//	res, warnings, err := edspdf.Open("lines.json").Thresholds(0.005, 0.02).Aggregate()
func Open(filename string) *Pipeline {
	return &Pipeline{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromLines returns a Pipeline over lines already in memory. The slice is
// never modified.
//
// Example:
//
//	res, _, err := edspdf.FromLines(lines).Thresholds(0.005, 0.02).Aggregate()
func FromLines(lines []model.LineRecord) *Pipeline {
	return &Pipeline{
		lines:   lines,
		loaded:  true,
		options: defaultOptions(),
	}
}

// FromPages returns a Pipeline over a document split in pages. Each line's
// Page is taken from its position in pages.
//
// Example:
//
//	results, _, err := edspdf.FromPages(pages).Thresholds(0.005, 0.02).PageResults(ctx)
func FromPages(pages [][]model.LineRecord) *Pipeline {
	return &Pipeline{
		pages:   pages,
		paged:   true,
		loaded:  true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	cfg := edspdf.Must(config.Load("edspdf.toml"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text() or Aggregate() and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	body := edspdf.MustText(edspdf.FromLines(lines).Thresholds(0.005, 0.02).Text("body"))
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
