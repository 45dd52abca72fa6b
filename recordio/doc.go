// Package recordio reads line records and writes aggregation results in the
// record formats of package format: JSON, JSON Lines and MessagePack.
//
// JSON input accepts style spans both with nested attributes and in the flat
// form where attributes sit next to start and end. MessagePack input decodes
// integers as int64 and narrows them, rejecting values that do not fit.
package recordio
