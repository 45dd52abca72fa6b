// Package model defines the data exchanged with the zone aggregation core.
//
// # Line Records
//
// A [LineRecord] is one extracted line of text with its page-normalized
// [BBox], the zone label assigned by an external classifier and the
// [StyleSpan] annotations local to the line:
//
//	line := model.LineRecord{
//	    Text:  "Bonjour",
//	    BBox:  model.NewBBox(0.1, 0.20, 0.4, 0.22),
//	    Label: "body",
//	    Styles: []model.StyleSpan{
//	        {Start: 0, End: 3, Attributes: model.Attributes{"bold": model.BoolValue(true)}},
//	    },
//	}
//
// Style offsets count runes (Unicode code points), not bytes.
//
// # Attribute Values
//
// Style attributes are a closed set: [BoolValue], [NumberValue] and
// [StringValue]. JSON and MessagePack encode a [Value] as the bare scalar.
//
// # Results
//
// An [AggregationResult] maps each zone label to its assembled text and to
// the [GlobalStyleSpan] list whose offsets are valid against that text.
// [AggregationResult.Validate] checks the offset invariant.
package model
