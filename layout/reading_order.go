// Package layout provides reading order sorting for line records whose
// extractor did not emit them in reading sequence.
package layout

import (
	"math"
	"sort"

	"github.com/acalliger/edspdf/model"
)

// ReadingDirection indicates the horizontal reading direction within a row
type ReadingDirection int

const (
	// LeftToRight is the default for most Western languages
	LeftToRight ReadingDirection = iota
	// RightToLeft is used for Arabic, Hebrew, etc.
	RightToLeft
)

// String returns a string representation of the reading direction
func (d ReadingDirection) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// ReadingOrderConfig holds configuration for reading order sorting
type ReadingOrderConfig struct {
	// Direction is the reading direction within a row
	Direction ReadingDirection

	// RowTolerance is the maximum distance between vertical centers of two
	// lines on the same row, as a fraction of the row's first line height
	// Default: 0.5
	RowTolerance float64
}

// DefaultReadingOrderConfig returns sensible default configuration
func DefaultReadingOrderConfig() ReadingOrderConfig {
	return ReadingOrderConfig{
		Direction:    LeftToRight,
		RowTolerance: 0.5,
	}
}

// ReadingOrderDetector sorts line records top to bottom, then along each row
type ReadingOrderDetector struct {
	config ReadingOrderConfig
}

// NewReadingOrderDetector creates a new reading order detector with default configuration
func NewReadingOrderDetector() *ReadingOrderDetector {
	return &ReadingOrderDetector{
		config: DefaultReadingOrderConfig(),
	}
}

// NewReadingOrderDetectorWithConfig creates a reading order detector with custom configuration
func NewReadingOrderDetectorWithConfig(config ReadingOrderConfig) *ReadingOrderDetector {
	return &ReadingOrderDetector{
		config: config,
	}
}

// Sort returns the lines in reading order. Pages come first, then rows from
// top to bottom, then lines along each row. The input slice is not modified
// and the sort is stable.
func (d *ReadingOrderDetector) Sort(lines []model.LineRecord) []model.LineRecord {
	order := d.Order(lines)
	if order == nil {
		return nil
	}
	out := make([]model.LineRecord, len(order))
	for i, idx := range order {
		out[i] = lines[idx]
	}
	return out
}

// Order returns the indices of lines in reading order, so that
// lines[Order(lines)[i]] is the i-th line read
func (d *ReadingOrderDetector) Order(lines []model.LineRecord) []int {
	if len(lines) == 0 {
		return nil
	}

	order := make([]int, len(lines))
	for i := range order {
		order[i] = i
	}

	// Step 1: page, then vertical center
	sort.SliceStable(order, func(i, j int) bool {
		a, b := lines[order[i]], lines[order[j]]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		return a.BBox.Center().Y < b.BBox.Center().Y
	})

	// Step 2: group into rows and order each row horizontally
	for _, row := range d.groupIntoRows(lines, order) {
		d.orderRow(lines, row)
	}
	return order
}

// groupIntoRows splits vertically sorted indices into rows. Each row is a
// subslice of order.
func (d *ReadingOrderDetector) groupIntoRows(lines []model.LineRecord, order []int) [][]int {
	tolerance := d.config.RowTolerance
	if tolerance <= 0 {
		tolerance = 0.5
	}

	var rows [][]int
	start := 0
	for i := 1; i <= len(order); i++ {
		if i < len(order) {
			first := lines[order[start]]
			line := lines[order[i]]
			sameRow := line.Page == first.Page &&
				math.Abs(line.BBox.Center().Y-first.BBox.Center().Y) <= first.BBox.Height()*tolerance
			if sameRow {
				continue
			}
		}
		rows = append(rows, order[start:i])
		start = i
	}
	return rows
}

// orderRow sorts a single row by horizontal position in place
func (d *ReadingOrderDetector) orderRow(lines []model.LineRecord, row []int) {
	sort.SliceStable(row, func(i, j int) bool {
		a, b := lines[row[i]].BBox, lines[row[j]].BBox
		if d.config.Direction == RightToLeft {
			return a.X1 > b.X1
		}
		return a.X0 < b.X0
	})
}

// SortReadingOrder returns the lines in reading order using the default configuration
func SortReadingOrder(lines []model.LineRecord) []model.LineRecord {
	return NewReadingOrderDetector().Sort(lines)
}
