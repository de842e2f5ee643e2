package ggsheet

import (
	"math"

	"github.com/gogpu/ggsheet/canvas"
	"github.com/gogpu/ggsheet/skeleton"
)

// gridlinePadding is the share of the visible row and column count drawn
// beyond the segment, so lines do not pop in during fast scrolls.
const gridlinePadding = 0.4

// paddedSegment grows seg by gridlinePadding of its size in each axis,
// rounded up and clamped to the sheet.
func paddedSegment(seg skeleton.Range, rows, cols int) skeleton.Range {
	padRows := int(math.Ceil(float64(seg.EndRow-seg.StartRow+1) * gridlinePadding))
	padCols := int(math.Ceil(float64(seg.EndColumn-seg.StartColumn+1) * gridlinePadding))
	return skeleton.Range{
		StartRow:    max(seg.StartRow-padRows, 0),
		EndRow:      min(seg.EndRow+padRows, rows-1),
		StartColumn: max(seg.StartColumn-padCols, 0),
		EndColumn:   min(seg.EndColumn+padCols, cols-1),
	}
}

// drawGridlines strokes the structural row and column lines of the pane
// straight onto dst, under the cached cell content.
func (s *Spreadsheet) drawGridlines(dst *canvas.Canvas, info ViewportInfo, sk skeleton.Skeleton, seg skeleton.Range) {
	if s.forceDisableGridlines || !sk.ShowGridlines() {
		return
	}
	rowAcc, colAcc := sk.RowHeightAccumulation(), sk.ColumnWidthAccumulation()
	if len(rowAcc) == 0 || len(colAcc) == 0 {
		return
	}
	r := paddedSegment(seg, len(rowAcc), len(colAcc))

	restore := dst.Save()
	defer restore()
	clipToPane(dst, info.Position)
	dst.Translate(-info.LeftOrigin, -info.TopOrigin)
	if scale := info.Scale(); scale > 0 {
		fix := canvas.FixOnePixelBlurOffset / scale
		dst.Translate(fix, fix)
	}

	st := canvas.LineStyle{Color: s.gridlineColor, Width: 1}
	left := skeleton.StartOffset(colAcc, r.StartColumn)
	right := skeleton.EndOffset(colAcc, r.EndColumn)
	top := skeleton.StartOffset(rowAcc, r.StartRow)
	bottom := skeleton.EndOffset(rowAcc, r.EndRow)

	for row := r.StartRow; row <= r.EndRow; row++ {
		y := rowAcc[row]
		dst.StrokeLine(left, y, right, y, st)
	}
	for col := r.StartColumn; col <= r.EndColumn; col++ {
		x := colAcc[col]
		dst.StrokeLine(x, top, x, bottom, st)
	}
	s.diag.GridlinePasses++
}
