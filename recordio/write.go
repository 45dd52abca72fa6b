package recordio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/acalliger/edspdf/export"
	"github.com/acalliger/edspdf/format"
	"github.com/acalliger/edspdf/model"
)

// ZoneRecord is one zone of a result as written to a JSON Lines stream
type ZoneRecord struct {
	Label  string          `json:"label" msgpack:"label"`
	Text   string          `json:"text" msgpack:"text"`
	Styles []export.Record `json:"styles" msgpack:"styles"`
}

// WriteResult encodes res to w. JSON and MessagePack hold the whole result
// as one document; JSON Lines writes one ZoneRecord per zone, sorted by
// label.
func WriteResult(w io.Writer, f format.Format, res *model.AggregationResult) error {
	if res == nil {
		res = model.NewAggregationResult()
	}
	switch f {
	case format.JSON:
		return export.JSON(w, res)

	case format.JSONLines:
		enc := json.NewEncoder(w)
		doc := export.NewDocument(res)
		for _, label := range res.Labels() {
			rec := ZoneRecord{Label: label, Text: doc.Text[label], Styles: doc.Styles[label]}
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("encode zone %q: %w", label, err)
			}
		}
		return nil

	case format.MsgPack:
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		return enc.Encode(export.NewDocument(res))

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

// WriteLines encodes line records to w in a record format
func WriteLines(w io.Writer, f format.Format, lines []model.LineRecord) error {
	switch f {
	case format.JSON:
		if lines == nil {
			lines = []model.LineRecord{}
		}
		return json.NewEncoder(w).Encode(lines)

	case format.JSONLines:
		enc := json.NewEncoder(w)
		for i, line := range lines {
			if err := enc.Encode(line); err != nil {
				return fmt.Errorf("encode record %d: %w", i, err)
			}
		}
		return nil

	case format.MsgPack:
		wire := make([]wireLine, len(lines))
		for i, line := range lines {
			wire[i] = toWire(line)
		}
		return msgpack.NewEncoder(w).Encode(wire)

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}
