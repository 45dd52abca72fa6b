package export

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/acalliger/edspdf/model"
)

// MaxCellWidth bounds the display width of a cell in aligned tables
const MaxCellWidth = 40

// Grid is a header row followed by data rows, every row as wide as the
// header
type Grid struct {
	Header []string
	Rows   [][]string
}

// NewGrid lays records out under the given columns
func NewGrid(records []Record, columns []string) *Grid {
	g := &Grid{
		Header: columns,
		Rows:   make([][]string, len(records)),
	}
	for i, rec := range records {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = formatCell(rec[col])
		}
		g.Rows[i] = row
	}
	return g
}

// SpanGrid flattens spans into a grid with the columns of Columns
func SpanGrid(spans []model.GlobalStyleSpan) *Grid {
	records := Records(spans)
	return NewGrid(records, Columns(records))
}

// ToMarkdown renders the grid as a Markdown table
func (g *Grid) ToMarkdown() string {
	if len(g.Header) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for _, cell := range cells {
			sb.WriteString("| ")
			sb.WriteString(escapeMarkdown(cell))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(g.Header)
	for range g.Header {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")
	for _, row := range g.Rows {
		writeRow(row)
	}

	return sb.String()
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// WriteCSV writes the header and rows as CSV
func (g *Grid) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(g.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(g.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteAligned writes the grid as space padded columns sized by display
// width, so that wide and combining characters line up in a terminal
func (g *Grid) WriteAligned(w io.Writer) error {
	widths := make([]int, len(g.Header))
	measure := func(cells []string) {
		for j, cell := range cells {
			if cw := runewidth.StringWidth(fitCell(cell)); cw > widths[j] {
				widths[j] = cw
			}
		}
	}
	measure(g.Header)
	for _, row := range g.Rows {
		measure(row)
	}

	writeRow := func(cells []string) error {
		var sb strings.Builder
		for j, cell := range cells {
			if j > 0 {
				sb.WriteString("  ")
			}
			cell = fitCell(cell)
			if j == len(cells)-1 {
				sb.WriteString(cell)
				continue
			}
			sb.WriteString(runewidth.FillRight(cell, widths[j]))
		}
		sb.WriteString("\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	if err := writeRow(g.Header); err != nil {
		return err
	}
	for _, row := range g.Rows {
		if err := writeRow(row); err != nil {
			return err
		}
	}
	return nil
}

func fitCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, MaxCellWidth, "…")
}
