// Package metadata finds date mentions in aggregated zone text.
//
// Dates are written the French way (day, month, year) with numeric or named
// months. A mention also records the phrase that introduces it, such as
// "Fait le" or "Né le", so callers can tell an exam date from a birth date.
//
// Matching runs on the NFC form of the text but every offset in a Mention is
// a rune offset into the text as given, so it can be compared with style
// spans from the aggregation package.
//
//	mentions := metadata.Extract("Fait le 12/03/2021")
//	// mentions[0].Start == 8, mentions[0].Context == "Fait le"
package metadata
