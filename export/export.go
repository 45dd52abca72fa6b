package export

import (
	"encoding/json"
	"io"

	"github.com/acalliger/edspdf/model"
)

// Document is the serialized form of an aggregation result
type Document struct {
	Text   map[string]string   `json:"text" msgpack:"text"`
	Styles map[string][]Record `json:"styles" msgpack:"styles"`
}

// NewDocument flattens every zone of res
func NewDocument(res *model.AggregationResult) *Document {
	doc := &Document{
		Text:   make(map[string]string),
		Styles: make(map[string][]Record),
	}
	if res == nil {
		return doc
	}
	for _, label := range res.Labels() {
		doc.Text[label] = res.Text[label]
		doc.Styles[label] = Records(res.Styles[label])
	}
	return doc
}

// JSON writes res as an indented JSON document
func JSON(w io.Writer, res *model.AggregationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(res))
}

// CSV writes spans as CSV with the columns of Columns
func CSV(w io.Writer, spans []model.GlobalStyleSpan) error {
	return SpanGrid(spans).WriteCSV(w)
}

// Markdown renders spans as a Markdown table
func Markdown(spans []model.GlobalStyleSpan) string {
	return SpanGrid(spans).ToMarkdown()
}

// Table writes spans as an aligned text table
func Table(w io.Writer, spans []model.GlobalStyleSpan) error {
	return SpanGrid(spans).WriteAligned(w)
}

// LabelColumn is the column holding the zone label in ResultCSV
const LabelColumn = "label"

// ResultCSV writes the spans of every zone of res as one CSV, sorted by
// label, with the zone label in the first column
func ResultCSV(w io.Writer, res *model.AggregationResult) error {
	var records []Record
	var labels []string
	for _, label := range res.Labels() {
		for _, rec := range Records(res.Styles[label]) {
			records = append(records, rec)
			labels = append(labels, label)
		}
	}

	grid := NewGrid(records, Columns(records))
	grid.Header = append([]string{LabelColumn}, grid.Header...)
	for i, row := range grid.Rows {
		grid.Rows[i] = append([]string{labels[i]}, row...)
	}
	return grid.WriteCSV(w)
}
