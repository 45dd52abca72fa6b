package layout

import (
	"testing"

	"github.com/acalliger/edspdf/model"
)

func texts(lines []model.LineRecord) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func assertOrder(t *testing.T, got []model.LineRecord, want ...string) {
	t.Helper()
	g := texts(got)
	if len(g) != len(want) {
		t.Fatalf("got %d lines %v, want %v", len(g), g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("order = %v, want %v", g, want)
		}
	}
}

func TestReadingDirection_String(t *testing.T) {
	if LeftToRight.String() != "ltr" {
		t.Errorf("LeftToRight.String() = %q", LeftToRight.String())
	}
	if RightToLeft.String() != "rtl" {
		t.Errorf("RightToLeft.String() = %q", RightToLeft.String())
	}
}

func TestSortReadingOrder_Empty(t *testing.T) {
	if got := SortReadingOrder(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestSortReadingOrder_TopToBottom(t *testing.T) {
	lines := []model.LineRecord{
		makeLine("third", 0.1, 0.50, 0.5, 0.52),
		makeLine("first", 0.1, 0.10, 0.5, 0.12),
		makeLine("second", 0.1, 0.30, 0.5, 0.32),
	}
	assertOrder(t, SortReadingOrder(lines), "first", "second", "third")

	// Input untouched
	if lines[0].Text != "third" {
		t.Error("SortReadingOrder modified its input")
	}
}

func TestSortReadingOrder_RowLeftToRight(t *testing.T) {
	lines := []model.LineRecord{
		makeLine("right", 0.6, 0.101, 0.9, 0.121),
		makeLine("left", 0.1, 0.100, 0.4, 0.120),
		makeLine("below", 0.1, 0.200, 0.4, 0.220),
	}
	assertOrder(t, SortReadingOrder(lines), "left", "right", "below")
}

func TestSortReadingOrder_RightToLeft(t *testing.T) {
	config := DefaultReadingOrderConfig()
	config.Direction = RightToLeft
	detector := NewReadingOrderDetectorWithConfig(config)

	lines := []model.LineRecord{
		makeLine("left", 0.1, 0.100, 0.4, 0.120),
		makeLine("right", 0.6, 0.100, 0.9, 0.120),
	}
	assertOrder(t, detector.Sort(lines), "right", "left")
}

func TestSortReadingOrder_PagesFirst(t *testing.T) {
	p1 := makeLine("page 1 top", 0.1, 0.1, 0.5, 0.12)
	p1.Page = 1
	p0 := makeLine("page 0 bottom", 0.1, 0.9, 0.5, 0.92)
	assertOrder(t, SortReadingOrder([]model.LineRecord{p1, p0}), "page 0 bottom", "page 1 top")
}

func TestSortReadingOrder_StableForIdenticalPositions(t *testing.T) {
	lines := []model.LineRecord{
		makeLine("a", 0.1, 0.1, 0.5, 0.12),
		makeLine("b", 0.1, 0.1, 0.5, 0.12),
		makeLine("c", 0.1, 0.1, 0.5, 0.12),
	}
	assertOrder(t, SortReadingOrder(lines), "a", "b", "c")
}

func TestSortReadingOrder_RowTolerance(t *testing.T) {
	// Centers differ by 0.015, about 0.75 line heights
	lines := []model.LineRecord{
		makeLine("lower right", 0.6, 0.115, 0.9, 0.135),
		makeLine("upper left", 0.1, 0.100, 0.4, 0.120),
	}

	assertOrder(t, SortReadingOrder(lines), "upper left", "lower right")

	config := DefaultReadingOrderConfig()
	config.RowTolerance = 1.0
	detector := NewReadingOrderDetectorWithConfig(config)
	assertOrder(t, detector.Sort([]model.LineRecord{lines[1], lines[0]}), "upper left", "lower right")

	swapped := []model.LineRecord{
		makeLine("upper right", 0.6, 0.100, 0.9, 0.120),
		makeLine("lower left", 0.1, 0.115, 0.4, 0.135),
	}
	assertOrder(t, SortReadingOrder(swapped), "upper right", "lower left")
	assertOrder(t, detector.Sort(swapped), "lower left", "upper right")
}

func TestReadingOrderDetector_Order(t *testing.T) {
	lines := []model.LineRecord{
		{Text: "second row", BBox: model.NewBBox(0.1, 0.3, 0.5, 0.32)},
		{Text: "right", BBox: model.NewBBox(0.6, 0.1, 0.9, 0.12)},
		{Text: "left", BBox: model.NewBBox(0.1, 0.1, 0.5, 0.12)},
	}
	order := NewReadingOrderDetector().Order(lines)
	want := []int{2, 1, 0}
	if len(order) != len(want) {
		t.Fatalf("Order() = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Order() = %v, want %v", order, want)
		}
	}
	if lines[0].Text != "second row" {
		t.Error("Order() must not modify its input")
	}
}
