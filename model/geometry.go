package model

import "math"

// Point represents a 2D point in page-normalized coordinates
type Point struct {
	X, Y float64
}

// BBox represents a line bounding box in page-normalized coordinates.
// X grows to the right and Y grows downward, so Y0 is the top edge.
type BBox struct {
	X0 float64 `json:"x0" msgpack:"x0"` // Left
	Y0 float64 `json:"y0" msgpack:"y0"` // Top
	X1 float64 `json:"x1" msgpack:"x1"` // Right
	Y1 float64 `json:"y1" msgpack:"y1"` // Bottom
}

// NewBBox creates a bounding box from its edges
func NewBBox(x0, y0, x1, y1 float64) BBox {
	return BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Height returns the vertical extent
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: (b.X0 + b.X1) / 2,
		Y: (b.Y0 + b.Y1) / 2,
	}
}

// VerticalGap returns the signed distance from the bottom of b to the top
// of next. It is negative when the boxes overlap vertically.
func (b BBox) VerticalGap(next BBox) float64 {
	return next.Y0 - b.Y1
}

// IsValid returns true if the box is non-degenerate and lies within the
// unit page: 0 <= X0 < X1 <= 1 and 0 <= Y0 < Y1 <= 1.
func (b BBox) IsValid() bool {
	for _, v := range [...]float64{b.X0, b.Y0, b.X1, b.Y1} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return false
		}
	}
	return b.X0 < b.X1 && b.Y0 < b.Y1
}
