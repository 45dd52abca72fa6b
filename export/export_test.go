package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acalliger/edspdf/model"
)

func span(start, end int, attrs model.Attributes) model.GlobalStyleSpan {
	return model.GlobalStyleSpan{Start: start, End: end, Attributes: attrs}
}

func sampleSpans() []model.GlobalStyleSpan {
	return []model.GlobalStyleSpan{
		span(0, 5, model.Attributes{"bold": model.BoolValue(true), "fontname": model.StringValue("Arial")}),
		span(6, 11, model.Attributes{"italic": model.BoolValue(true), "size": model.NumberValue(9.5)}),
	}
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord(span(11, 14, model.Attributes{"bold": model.BoolValue(true)}))
	assert.Equal(t, Record{"start": 11, "end": 14, "bold": true}, rec)
	assert.Equal(t, 11, rec.Start())
	assert.Equal(t, 14, rec.End())
}

func TestNewRecord_ReservedNames(t *testing.T) {
	rec := NewRecord(span(0, 1, model.Attributes{
		"start": model.StringValue("x"),
		"end":   model.NumberValue(3),
	}))
	assert.Equal(t, 0, rec.Start())
	assert.Equal(t, 1, rec.End())
	assert.Equal(t, "x", rec["attr_start"])
	assert.Equal(t, 3.0, rec["attr_end"])
}

func TestColumns(t *testing.T) {
	cols := Columns(Records(sampleSpans()))
	assert.Equal(t, []string{"start", "end", "bold", "fontname", "italic", "size"}, cols)

	assert.Equal(t, []string{"start", "end"}, Columns(nil))
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, sampleSpans()))

	want := "start,end,bold,fontname,italic,size\n" +
		"0,5,true,Arial,,\n" +
		"6,11,,,true,9.5\n"
	assert.Equal(t, want, buf.String())
}

func TestMarkdown(t *testing.T) {
	md := Markdown([]model.GlobalStyleSpan{
		span(0, 2, model.Attributes{"font": model.StringValue("A|B")}),
	})
	want := "| start | end | font |\n" +
		"|---|---|---|\n" +
		"| 0 | 2 | A\\|B |\n"
	assert.Equal(t, want, md)
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, []model.GlobalStyleSpan{
		span(0, 5, model.Attributes{"font": model.StringValue("Times")}),
		span(120, 125, model.Attributes{"font": model.StringValue("日本")}),
	}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "start  end  font", lines[0])
	assert.Equal(t, "0      5    Times", lines[1])
	assert.Equal(t, "120    125  日本", lines[2])
}

func TestTable_TruncatesLongCells(t *testing.T) {
	var buf bytes.Buffer
	long := strings.Repeat("x", 100)
	require.NoError(t, Table(&buf, []model.GlobalStyleSpan{
		span(0, 1, model.Attributes{"note": model.StringValue(long)}),
	}))
	assert.NotContains(t, buf.String(), long)
	assert.Contains(t, buf.String(), "…")
}

func TestJSON(t *testing.T) {
	res := model.NewAggregationResult()
	res.Text["body"] = "Hello world"
	res.Styles["body"] = sampleSpans()
	res.Text["footer"] = "p. 1"
	res.Styles["footer"] = []model.GlobalStyleSpan{}

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, res))

	var decoded struct {
		Text   map[string]string           `json:"text"`
		Styles map[string][]map[string]any `json:"styles"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, res.Text, decoded.Text)
	require.Len(t, decoded.Styles["body"], 2)
	assert.Equal(t, 6.0, decoded.Styles["body"][1]["start"])
	assert.Equal(t, true, decoded.Styles["body"][1]["italic"])
	assert.NotNil(t, decoded.Styles["footer"])
	assert.Empty(t, decoded.Styles["footer"])
}

func TestNewDocument_Nil(t *testing.T) {
	doc := NewDocument(nil)
	assert.Empty(t, doc.Text)
	assert.Empty(t, doc.Styles)
}

func TestResultCSV(t *testing.T) {
	res := model.NewAggregationResult()
	res.Text["header"] = "Title"
	res.Styles["header"] = []model.GlobalStyleSpan{span(0, 5, model.Attributes{"bold": model.BoolValue(true)})}
	res.Text["body"] = "Hello"
	res.Styles["body"] = []model.GlobalStyleSpan{span(0, 2, model.Attributes{"italic": model.BoolValue(true)})}

	var buf bytes.Buffer
	require.NoError(t, ResultCSV(&buf, res))
	want := "label,start,end,bold,italic\n" +
		"body,0,2,,true\n" +
		"header,0,5,true,\n"
	assert.Equal(t, want, buf.String())
}
