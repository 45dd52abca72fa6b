// Package export renders aggregation results for people and for other tools.
//
// Style spans are flattened into records, one per span, with the span's
// start and end next to its attributes. Records can then be written as JSON,
// CSV, a Markdown table or a column aligned text table. HTML renders the text
// of a zone with its styles applied.
package export
