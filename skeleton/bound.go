package skeleton

import "math"

// Bound is an axis-aligned rectangle in content space. Content space has its
// origin at the top-left corner of cell (0, 0); header bands are excluded.
type Bound struct {
	Left, Top, Right, Bottom float64
}

// BoundXYWH creates a Bound from an origin and a size.
func BoundXYWH(x, y, w, h float64) Bound {
	return Bound{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns the horizontal extent of the bound.
func (b Bound) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the bound.
func (b Bound) Height() float64 {
	return b.Bottom - b.Top
}

// IsEmpty reports whether the bound covers no area.
func (b Bound) IsEmpty() bool {
	return b.Right <= b.Left || b.Bottom <= b.Top
}

// Intersects reports whether b and o share any area.
func (b Bound) Intersects(o Bound) bool {
	return b.Left < o.Right && o.Left < b.Right && b.Top < o.Bottom && o.Top < b.Bottom
}

// Intersect returns the overlapping part of b and o.
// The result is empty when the bounds do not overlap.
func (b Bound) Intersect(o Bound) Bound {
	r := Bound{
		Left:   math.Max(b.Left, o.Left),
		Top:    math.Max(b.Top, o.Top),
		Right:  math.Min(b.Right, o.Right),
		Bottom: math.Min(b.Bottom, o.Bottom),
	}
	if r.IsEmpty() {
		return Bound{}
	}
	return r
}

// Union returns the smallest bound containing both b and o.
func (b Bound) Union(o Bound) Bound {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Bound{
		Left:   math.Min(b.Left, o.Left),
		Top:    math.Min(b.Top, o.Top),
		Right:  math.Max(b.Right, o.Right),
		Bottom: math.Max(b.Bottom, o.Bottom),
	}
}

// Expand grows the bound by dx on the left and right and dy on the top and bottom.
func (b Bound) Expand(dx, dy float64) Bound {
	return Bound{Left: b.Left - dx, Top: b.Top - dy, Right: b.Right + dx, Bottom: b.Bottom + dy}
}

// Translate moves the bound by (dx, dy).
func (b Bound) Translate(dx, dy float64) Bound {
	return Bound{Left: b.Left + dx, Top: b.Top + dy, Right: b.Right + dx, Bottom: b.Bottom + dy}
}

// Contains reports whether the point lies inside the bound.
// The left and top edges are inclusive, the right and bottom edges exclusive.
func (b Bound) Contains(x, y float64) bool {
	return x >= b.Left && x < b.Right && y >= b.Top && y < b.Bottom
}

// Range is an inclusive block of rows and columns.
type Range struct {
	StartRow    int
	EndRow      int
	StartColumn int
	EndColumn   int
}

// EmptyRange is the sentinel returned when nothing is visible.
var EmptyRange = Range{StartRow: -1, EndRow: -1, StartColumn: -1, EndColumn: -1}

// CellRange returns the range covering a single cell.
func CellRange(row, column int) Range {
	return Range{StartRow: row, EndRow: row, StartColumn: column, EndColumn: column}
}

// IsEmpty reports whether the range is the empty sentinel in either axis.
func (r Range) IsEmpty() bool {
	return (r.StartRow == -1 && r.EndRow == -1) || (r.StartColumn == -1 && r.EndColumn == -1)
}

// Rows returns the number of rows in the range.
func (r Range) Rows() int {
	if r.IsEmpty() {
		return 0
	}
	return r.EndRow - r.StartRow + 1
}

// Columns returns the number of columns in the range.
func (r Range) Columns() int {
	if r.IsEmpty() {
		return 0
	}
	return r.EndColumn - r.StartColumn + 1
}

// Contains reports whether the cell lies inside the range.
func (r Range) Contains(row, column int) bool {
	return row >= r.StartRow && row <= r.EndRow && column >= r.StartColumn && column <= r.EndColumn
}

// Intersects reports whether two ranges share at least one cell.
func (r Range) Intersects(o Range) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.StartRow <= o.EndRow && o.StartRow <= r.EndRow &&
		r.StartColumn <= o.EndColumn && o.StartColumn <= r.EndColumn
}

// Union returns the smallest range covering both r and o.
func (r Range) Union(o Range) Range {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Range{
		StartRow:    min(r.StartRow, o.StartRow),
		EndRow:      max(r.EndRow, o.EndRow),
		StartColumn: min(r.StartColumn, o.StartColumn),
		EndColumn:   max(r.EndColumn, o.EndColumn),
	}
}

// Expand grows the range by n cells on every side, clamped to
// [0, rowCount-1] and [0, columnCount-1].
func (r Range) Expand(n, rowCount, columnCount int) Range {
	if r.IsEmpty() {
		return r
	}
	return Range{
		StartRow:    max(r.StartRow-n, 0),
		EndRow:      min(r.EndRow+n, rowCount-1),
		StartColumn: max(r.StartColumn-n, 0),
		EndColumn:   min(r.EndColumn+n, columnCount-1),
	}
}

// Intersect returns the cells shared by r and o. The second result is false
// when the ranges do not overlap.
func (r Range) Intersect(o Range) (Range, bool) {
	if !r.Intersects(o) {
		return EmptyRange, false
	}
	return Range{
		StartRow:    max(r.StartRow, o.StartRow),
		EndRow:      min(r.EndRow, o.EndRow),
		StartColumn: max(r.StartColumn, o.StartColumn),
		EndColumn:   min(r.EndColumn, o.EndColumn),
	}, true
}
