// Package skeleton describes the layout geometry a sheet renderer consumes.
//
// A Skeleton is produced outside the renderer whenever row or column geometry
// changes and is treated as read-only while rendering. It exposes cumulative
// row heights and column widths, header band sizes, merge and overflow
// lookups, and a per-cell style cache.
//
// Sheet is an in-memory Skeleton built from plain cell data. Hosts that keep
// their own layout service implement the interface directly.
package skeleton

import (
	"image/color"
	"unicode/utf8"
)

// Skeleton is the layout collaborator consumed by the renderer.
type Skeleton interface {
	// RowHeightAccumulation returns cumulative row heights. Index i is the
	// bottom edge of row i.
	RowHeightAccumulation() []float64

	// ColumnWidthAccumulation returns cumulative column widths. Index i is
	// the right edge of column i.
	ColumnWidthAccumulation() []float64

	// RowHeaderWidth is the width of the row header band on the left.
	RowHeaderWidth() float64

	// ColumnHeaderHeight is the height of the column header band on top.
	ColumnHeaderHeight() float64

	// RowColumnSegment returns the range computed by the last
	// CalculateWithoutClearingCache call, or EmptyRange.
	RowColumnSegment() Range

	// RowColumnSegmentByViewBound maps a content-space bound to the rows and
	// columns it intersects.
	RowColumnSegmentByViewBound(b Bound) Range

	// MergeBounding expands a range until no merged block crosses its edge.
	MergeBounding(startRow, startColumn, endRow, endColumn int) Range

	// CalculateWithoutClearingCache fills any unset cached layout fields for
	// the bound and updates RowColumnSegment. Existing caches are kept.
	CalculateWithoutClearingCache(b Bound)

	// ShowGridlines reports whether the sheet wants gridlines drawn.
	ShowGridlines() bool

	// Merges returns every merged block.
	Merges() []Range

	// MergeAt returns the merged block containing the cell, if any.
	MergeAt(row, column int) (Range, bool)

	// Background returns the fill colour of a cell.
	Background(row, column int) (color.Color, bool)

	// Border returns the border lines of a cell.
	Border(row, column int) (Borders, bool)

	// Text returns the display text and style of a cell.
	Text(row, column int) (CellText, bool)

	// Overflow returns the columns a cell's text spills across.
	Overflow(row, column int) (Range, bool)

	// RowOverflows returns every overflowing cell of a row.
	RowOverflows(row int) []Overflow
}

// Overflow records that the text of the cell at (Row, Column) is painted
// across Span.
type Overflow struct {
	Row    int
	Column int
	Span   Range
}

// BorderStyle selects how a border line is stroked.
type BorderStyle uint8

// Border styles.
const (
	BorderNone BorderStyle = iota
	BorderThin
	BorderMedium
	BorderThick
	BorderDashed
	BorderDotted
	BorderDouble
)

// BorderLine is one side of a cell border.
type BorderLine struct {
	Style BorderStyle
	Color color.Color
}

// Borders holds the four sides of a cell border. Nil sides are not drawn.
type Borders struct {
	Top, Bottom, Left, Right *BorderLine
}

// IsZero reports whether no side is set.
func (b Borders) IsZero() bool {
	return b.Top == nil && b.Bottom == nil && b.Left == nil && b.Right == nil
}

// HorizontalAlign positions text inside its cell.
type HorizontalAlign uint8

// Horizontal alignments. AlignAuto follows the text direction.
const (
	AlignAuto HorizontalAlign = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// VerticalAlign positions text vertically inside its cell.
type VerticalAlign uint8

// Vertical alignments. The zero value aligns to the bottom edge.
const (
	AlignBottom VerticalAlign = iota
	AlignMiddle
	AlignTop
)

// TextStyle describes how cell text is drawn.
type TextStyle struct {
	FontSize float64
	Color    color.Color
	HAlign   HorizontalAlign
	VAlign   VerticalAlign
	Wrap     bool
}

// DefaultFontSize is used when a TextStyle leaves FontSize unset.
const DefaultFontSize = 11

// CellText is the resolved text content of a cell.
type CellText struct {
	Text  string
	Style TextStyle
}

// TextMeasurer returns the advance width of text in content units.
type TextMeasurer func(text string, style TextStyle) float64

// EstimateWidth is the fallback TextMeasurer. It assumes an average glyph
// advance of 0.6 em.
func EstimateWidth(text string, style TextStyle) float64 {
	size := style.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	return float64(utf8.RuneCountInString(text)) * size * 0.6
}
