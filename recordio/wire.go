package recordio

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/acalliger/edspdf/model"
)

// wireLine is the MessagePack shape of a line record. Integers are read at
// full width and narrowed after decoding.
type wireLine struct {
	Text   string       `msgpack:"text"`
	BBox   model.BBox   `msgpack:"bbox"`
	Label  string       `msgpack:"label,omitempty"`
	Page   int64        `msgpack:"page,omitempty"`
	Styles []wireStyles `msgpack:"styles,omitempty"`
}

type wireStyles struct {
	Start      int64            `msgpack:"start"`
	End        int64            `msgpack:"end"`
	Attributes model.Attributes `msgpack:"attributes,omitempty"`
}

func toWire(line model.LineRecord) wireLine {
	w := wireLine{
		Text:  line.Text,
		BBox:  line.BBox,
		Label: line.Label,
		Page:  int64(line.Page),
	}
	for _, s := range line.Styles {
		w.Styles = append(w.Styles, wireStyles{
			Start:      int64(s.Start),
			End:        int64(s.End),
			Attributes: s.Attributes,
		})
	}
	return w
}

func (w wireLine) toLine() (model.LineRecord, error) {
	page, err := safecast.Conv[int](w.Page)
	if err != nil {
		return model.LineRecord{}, fmt.Errorf("page %d: %w", w.Page, err)
	}
	line := model.LineRecord{
		Text:  w.Text,
		BBox:  w.BBox,
		Label: w.Label,
		Page:  page,
	}
	if len(w.Styles) > 0 {
		line.Styles = make([]model.StyleSpan, len(w.Styles))
	}
	for i, s := range w.Styles {
		start, err := safecast.Conv[int](s.Start)
		if err != nil {
			return model.LineRecord{}, fmt.Errorf("style %d start: %w", i, err)
		}
		end, err := safecast.Conv[int](s.End)
		if err != nil {
			return model.LineRecord{}, fmt.Errorf("style %d end: %w", i, err)
		}
		line.Styles[i] = model.StyleSpan{Start: start, End: end, Attributes: s.Attributes.Compact()}
	}
	return line, nil
}
