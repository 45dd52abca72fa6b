package export

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/acalliger/edspdf/model"
)

// Reserved record keys. Attributes with these names are prefixed with
// AttributePrefix when flattened.
const (
	KeyStart        = "start"
	KeyEnd          = "end"
	AttributePrefix = "attr_"
)

// Record is a flattened style span: start, end and every attribute at the
// top level
type Record map[string]any

// Start returns the record's start offset
func (r Record) Start() int {
	v, _ := r[KeyStart].(int)
	return v
}

// End returns the record's end offset
func (r Record) End() int {
	v, _ := r[KeyEnd].(int)
	return v
}

// NewRecord flattens a single span
func NewRecord(span model.GlobalStyleSpan) Record {
	rec := make(Record, len(span.Attributes)+2)
	rec[KeyStart] = span.Start
	rec[KeyEnd] = span.End
	for name, value := range span.Attributes {
		if name == KeyStart || name == KeyEnd {
			name = AttributePrefix + name
		}
		rec[name] = value.Interface()
	}
	return rec
}

// Records flattens spans, keeping their order
func Records(spans []model.GlobalStyleSpan) []Record {
	records := make([]Record, len(spans))
	for i, span := range spans {
		records[i] = NewRecord(span)
	}
	return records
}

// Columns returns start and end followed by the sorted union of the other
// keys of records
func Columns(records []Record) []string {
	seen := make(map[string]bool)
	var extra []string
	for _, rec := range records {
		for key := range rec {
			if key == KeyStart || key == KeyEnd || seen[key] {
				continue
			}
			seen[key] = true
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append([]string{KeyStart, KeyEnd}, extra...)
}

// formatCell renders a record value for tabular output. Missing values are
// empty.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
