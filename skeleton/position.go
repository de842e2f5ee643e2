package skeleton

import "sort"

// Accumulate turns per-row heights (or per-column widths) into the
// cumulative edge sequence used by a Skeleton. Negative sizes count as zero.
func Accumulate(sizes []float64) []float64 {
	acc := make([]float64, len(sizes))
	var total float64
	for i, s := range sizes {
		if s > 0 {
			total += s
		}
		acc[i] = total
	}
	return acc
}

// StartOffset returns the leading edge of index i in an accumulation.
// Index 0, and any negative index, starts at 0. Indexes past the end clamp
// to the last edge.
func StartOffset(acc []float64, i int) float64 {
	if i <= 0 || len(acc) == 0 {
		return 0
	}
	if i > len(acc) {
		i = len(acc)
	}
	return acc[i-1]
}

// EndOffset returns the trailing edge of index i in an accumulation,
// clamped to the valid index range.
func EndOffset(acc []float64, i int) float64 {
	if len(acc) == 0 {
		return 0
	}
	if i < 0 {
		i = 0
	}
	if i >= len(acc) {
		i = len(acc) - 1
	}
	return acc[i]
}

// CellPosition returns the content-space rectangle of a single cell,
// ignoring merges.
func CellPosition(row, column int, rowAcc, colAcc []float64) Bound {
	return Bound{
		Left:   StartOffset(colAcc, column),
		Top:    StartOffset(rowAcc, row),
		Right:  EndOffset(colAcc, column),
		Bottom: EndOffset(rowAcc, row),
	}
}

// RangePosition returns the content-space rectangle spanned by a range.
func RangePosition(r Range, rowAcc, colAcc []float64) Bound {
	return Bound{
		Left:   StartOffset(colAcc, r.StartColumn),
		Top:    StartOffset(rowAcc, r.StartRow),
		Right:  EndOffset(colAcc, r.EndColumn),
		Bottom: EndOffset(rowAcc, r.EndRow),
	}
}

// indexAfter returns the first index whose edge is strictly greater than v,
// clamped to the last index.
func indexAfter(acc []float64, v float64) int {
	i := sort.Search(len(acc), func(i int) bool { return acc[i] > v })
	return min(i, len(acc)-1)
}

// indexReaching returns the first index whose edge reaches v,
// clamped to the last index.
func indexReaching(acc []float64, v float64) int {
	i := sort.Search(len(acc), func(i int) bool { return acc[i] >= v })
	return min(i, len(acc)-1)
}

// SegmentByBound returns the rows and columns whose area intersects b.
// An empty bound, an empty sheet, or a bound wholly outside the sheet
// yields EmptyRange.
func SegmentByBound(b Bound, rowAcc, colAcc []float64) Range {
	if len(rowAcc) == 0 || len(colAcc) == 0 || b.IsEmpty() {
		return EmptyRange
	}
	if b.Right <= 0 || b.Bottom <= 0 {
		return EmptyRange
	}
	if b.Top >= rowAcc[len(rowAcc)-1] || b.Left >= colAcc[len(colAcc)-1] {
		return EmptyRange
	}
	return Range{
		StartRow:    indexAfter(rowAcc, max(b.Top, 0)),
		EndRow:      indexReaching(rowAcc, b.Bottom),
		StartColumn: indexAfter(colAcc, max(b.Left, 0)),
		EndColumn:   indexReaching(colAcc, b.Right),
	}
}
