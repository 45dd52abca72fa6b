// Package aggregation assembles classified lines into one text per zone and
// remaps their style spans onto that text.
//
// # Aggregation
//
// An [Aggregator] is built from explicit break thresholds:
//
//	agg, err := aggregation.NewAggregator(aggregation.DefaultConfig(0.005, 0.02))
//	if err != nil {
//	    // invalid thresholds
//	}
//	result, warnings, err := agg.Aggregate(lines)
//
// Lines are grouped by label without reordering. Within a zone, each line is
// followed by the separator chosen by the [layout.NewlinePolicy] and its
// starting offset is the rune length of everything before it, separators
// included. Style spans are shifted by that offset.
//
// # Offsets
//
// All offsets count runes. For every zone, every remapped span satisfies
// 0 <= Start <= End <= rune length of the zone text; spans that were outside
// their line are clamped and flagged ([model.GlobalStyleSpan.Clamped]).
//
// # Warnings
//
// Nothing on a single line aborts the aggregation of a page. Repaired or
// skipped fragments are reported as [Warning] values:
//
//   - [WarnMalformedSpan] - a span was clamped to its line
//   - [WarnUnlabeledLine] - unclassified lines were left out
//   - [WarnRejectedLine] - a line with an invalid bounding box was dropped
//
// Set Config.Strict to turn rejected lines into an error instead.
//
// # Concurrency
//
// [Aggregator.AggregatePages] aggregates pages concurrently; each call owns
// its page slice and no state is shared between calls.
package aggregation
