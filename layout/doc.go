// Package layout provides the geometric decisions made while assembling the
// text of a zone from its classified lines.
//
// # Break Detection
//
// The [NewlinePolicy] decides what separates two consecutive lines of the
// same zone:
//
//	policy, err := layout.NewNewlinePolicy(layout.DefaultNewlineConfig(0.005, 0.02))
//	if err != nil {
//	    // thresholds were unusable
//	}
//	sep := policy.Separator(prev, next, policy.Margin(zoneLines))
//
// Thresholds are compared against the vertical gap between the bottom of
// the earlier line and the top of the later one, in page-normalized units.
// Below NLThreshold the lines belong to the same flow and are joined with a
// space (or nothing, if whitespace is already present). From NLThreshold up
// to and including NPThreshold a single newline is used. Above NPThreshold,
// or when the later line starts with a first-line indent, a paragraph break
// ("\n\n") is used.
//
// # Margins
//
// [DetectLeftMargin] finds the dominant left edge of a zone, the baseline for
// the indentation signal.
//
// # Reading Order
//
// The aggregation core never re-sorts its input. Callers whose extractor does
// not emit lines in reading order can use [SortReadingOrder] or a configured
// [ReadingOrderDetector] first.
package layout
