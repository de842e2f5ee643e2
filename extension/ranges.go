package extension

import "github.com/gogpu/ggsheet/skeleton"

// paintRanges returns the ranges an extension iterates for opts.
func paintRanges(sk skeleton.Skeleton, opts DrawOptions) []skeleton.Range {
	if opts.DiffRanges == nil {
		return nonEmpty(opts.ViewRanges)
	}
	rows := len(sk.RowHeightAccumulation())
	cols := len(sk.ColumnWidthAccumulation())
	out := make([]skeleton.Range, 0, len(opts.DiffRanges))
	for _, r := range opts.DiffRanges {
		if r.IsEmpty() {
			continue
		}
		r = r.Expand(1, rows, cols)
		if !opts.CheckOutOfViewBound {
			out = append(out, r)
			continue
		}
		for _, v := range opts.ViewRanges {
			if in, ok := r.Intersect(v); ok {
				out = append(out, in)
			}
		}
	}
	return out
}

func nonEmpty(rs []skeleton.Range) []skeleton.Range {
	out := make([]skeleton.Range, 0, len(rs))
	for _, r := range rs {
		if !r.IsEmpty() {
			out = append(out, r)
		}
	}
	return out
}

// cell is an anchor cell and the content-space rectangle it styles.
// For merged blocks the anchor is the top-left cell and the bound covers
// the whole block.
type cell struct {
	row, column int
	bound       skeleton.Bound
	merged      bool
}

// visitCells calls fn once per anchor cell touched by ranges.
func visitCells(sk skeleton.Skeleton, ranges []skeleton.Range, fn func(cell)) {
	rowAcc, colAcc := sk.RowHeightAccumulation(), sk.ColumnWidthAccumulation()
	seen := make(map[[2]int]struct{})
	for _, r := range ranges {
		for row := r.StartRow; row <= r.EndRow; row++ {
			for col := r.StartColumn; col <= r.EndColumn; col++ {
				var c cell
				if m, ok := sk.MergeAt(row, col); ok {
					c = cell{row: m.StartRow, column: m.StartColumn, bound: skeleton.RangePosition(m, rowAcc, colAcc), merged: true}
				} else {
					c = cell{row: row, column: col, bound: skeleton.CellPosition(row, col, rowAcc, colAcc)}
				}
				key := [2]int{c.row, c.column}
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				fn(c)
			}
		}
	}
}
