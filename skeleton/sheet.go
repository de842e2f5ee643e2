package skeleton

import (
	"image/color"
	"math"
	"sort"
)

// CellData is the raw content of a single cell.
type CellData struct {
	Value      string
	Style      TextStyle
	Background color.Color
	Border     Borders
}

// Option configures a Sheet during creation.
type Option func(*Sheet)

// WithHeaders sets the row header width and the column header height.
func WithHeaders(rowHeaderWidth, columnHeaderHeight float64) Option {
	return func(s *Sheet) {
		s.rowHeaderWidth = math.Max(rowHeaderWidth, 0)
		s.columnHeaderHeight = math.Max(columnHeaderHeight, 0)
	}
}

// WithMeasurer sets the function used to measure text for overflow.
// The default is EstimateWidth.
func WithMeasurer(m TextMeasurer) Option {
	return func(s *Sheet) {
		if m != nil {
			s.measure = m
		}
	}
}

// WithGridlines sets whether gridlines are shown. The default is true.
func WithGridlines(show bool) Option {
	return func(s *Sheet) {
		s.showGridlines = show
	}
}

// Sheet is an in-memory Skeleton.
//
// Cell data and merges are set by the host between frames. The per-row
// layout cache (overflow spans) is filled lazily and only invalidated for
// the rows a setter touches.
//
// Sheet is not safe for concurrent use.
type Sheet struct {
	rowAcc             []float64
	colAcc             []float64
	rowHeaderWidth     float64
	columnHeaderHeight float64
	showGridlines      bool
	measure            TextMeasurer

	cells   map[int]map[int]CellData
	merges  []Range
	segment Range

	// rows caches overflow spans per row.
	rows map[int]*rowLayout
}

type rowLayout struct {
	overflows []Overflow
	byColumn  map[int]Range
}

// New creates a Sheet from per-row heights and per-column widths.
func New(rowHeights, columnWidths []float64, opts ...Option) *Sheet {
	return FromAccumulation(Accumulate(rowHeights), Accumulate(columnWidths), opts...)
}

// FromAccumulation creates a Sheet from cumulative row heights and column
// widths. The slices are copied.
func FromAccumulation(rowAcc, colAcc []float64, opts ...Option) *Sheet {
	s := &Sheet{
		rowAcc:        append([]float64(nil), rowAcc...),
		colAcc:        append([]float64(nil), colAcc...),
		showGridlines: true,
		measure:       EstimateWidth,
		cells:         make(map[int]map[int]CellData),
		segment:       EmptyRange,
		rows:          make(map[int]*rowLayout),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RowCount returns the number of rows.
func (s *Sheet) RowCount() int { return len(s.rowAcc) }

// ColumnCount returns the number of columns.
func (s *Sheet) ColumnCount() int { return len(s.colAcc) }

// RowHeightAccumulation implements Skeleton.
func (s *Sheet) RowHeightAccumulation() []float64 { return s.rowAcc }

// ColumnWidthAccumulation implements Skeleton.
func (s *Sheet) ColumnWidthAccumulation() []float64 { return s.colAcc }

// RowHeaderWidth implements Skeleton.
func (s *Sheet) RowHeaderWidth() float64 { return s.rowHeaderWidth }

// ColumnHeaderHeight implements Skeleton.
func (s *Sheet) ColumnHeaderHeight() float64 { return s.columnHeaderHeight }

// ShowGridlines implements Skeleton.
func (s *Sheet) ShowGridlines() bool { return s.showGridlines }

// SetShowGridlines toggles gridlines for the sheet.
func (s *Sheet) SetShowGridlines(show bool) { s.showGridlines = show }

// RowColumnSegment implements Skeleton.
func (s *Sheet) RowColumnSegment() Range { return s.segment }

// RowColumnSegmentByViewBound implements Skeleton.
func (s *Sheet) RowColumnSegmentByViewBound(b Bound) Range {
	return SegmentByBound(b, s.rowAcc, s.colAcc)
}

// CalculateWithoutClearingCache implements Skeleton. It records the visible
// segment for b and builds the layout cache of any visible row that has none.
func (s *Sheet) CalculateWithoutClearingCache(b Bound) {
	s.segment = SegmentByBound(b, s.rowAcc, s.colAcc)
	if s.segment.IsEmpty() {
		return
	}
	for r := s.segment.StartRow; r <= s.segment.EndRow; r++ {
		s.layoutRow(r)
	}
}

// SetCell replaces the data of a cell and drops the layout cache of its row.
// Out-of-range cells are ignored.
func (s *Sheet) SetCell(row, column int, d CellData) {
	if row < 0 || row >= len(s.rowAcc) || column < 0 || column >= len(s.colAcc) {
		return
	}
	cols, ok := s.cells[row]
	if !ok {
		cols = make(map[int]CellData)
		s.cells[row] = cols
	}
	cols[column] = d
	delete(s.rows, row)
}

// ClearCell removes the data of a cell.
func (s *Sheet) ClearCell(row, column int) {
	if cols, ok := s.cells[row]; ok {
		delete(cols, column)
		if len(cols) == 0 {
			delete(s.cells, row)
		}
	}
	delete(s.rows, row)
}

// Cell returns the raw data of a cell.
func (s *Sheet) Cell(row, column int) (CellData, bool) {
	d, ok := s.cells[row][column]
	return d, ok
}

// Merge adds a merged block. Blocks that overlap an existing merge are
// rejected and Merge returns false.
func (s *Sheet) Merge(r Range) bool {
	if r.IsEmpty() || r.StartRow > r.EndRow || r.StartColumn > r.EndColumn {
		return false
	}
	for _, m := range s.merges {
		if m.Intersects(r) {
			return false
		}
	}
	s.merges = append(s.merges, r)
	for row := r.StartRow; row <= r.EndRow; row++ {
		delete(s.rows, row)
	}
	return true
}

// Merges implements Skeleton.
func (s *Sheet) Merges() []Range { return s.merges }

// MergeAt implements Skeleton.
func (s *Sheet) MergeAt(row, column int) (Range, bool) {
	for _, m := range s.merges {
		if m.Contains(row, column) {
			return m, true
		}
	}
	return Range{}, false
}

// MergeBounding implements Skeleton. The range grows until every merge it
// touches lies completely inside it.
func (s *Sheet) MergeBounding(startRow, startColumn, endRow, endColumn int) Range {
	r := Range{StartRow: startRow, EndRow: endRow, StartColumn: startColumn, EndColumn: endColumn}
	for changed := true; changed; {
		changed = false
		for _, m := range s.merges {
			if !m.Intersects(r) {
				continue
			}
			u := r.Union(m)
			if u != r {
				r = u
				changed = true
			}
		}
	}
	return r
}

// anchor returns the cell whose data styles (row, column). Cells inside a
// merge take the top-left cell of the merge.
func (s *Sheet) anchor(row, column int) (int, int) {
	if m, ok := s.MergeAt(row, column); ok {
		return m.StartRow, m.StartColumn
	}
	return row, column
}

// Background implements Skeleton.
func (s *Sheet) Background(row, column int) (color.Color, bool) {
	d, ok := s.Cell(s.anchor(row, column))
	if !ok || d.Background == nil {
		return nil, false
	}
	return d.Background, true
}

// Border implements Skeleton.
func (s *Sheet) Border(row, column int) (Borders, bool) {
	d, ok := s.Cell(row, column)
	if !ok || d.Border.IsZero() {
		return Borders{}, false
	}
	return d.Border, true
}

// Text implements Skeleton. Cells covered by a merge, other than its
// top-left cell, have no text.
func (s *Sheet) Text(row, column int) (CellText, bool) {
	if ar, ac := s.anchor(row, column); ar != row || ac != column {
		return CellText{}, false
	}
	d, ok := s.Cell(row, column)
	if !ok || d.Value == "" {
		return CellText{}, false
	}
	st := d.Style
	if st.FontSize <= 0 {
		st.FontSize = DefaultFontSize
	}
	if st.Color == nil {
		st.Color = color.Black
	}
	return CellText{Text: d.Value, Style: st}, true
}

// Overflow implements Skeleton.
func (s *Sheet) Overflow(row, column int) (Range, bool) {
	l := s.layoutRow(row)
	if l == nil {
		return Range{}, false
	}
	r, ok := l.byColumn[column]
	return r, ok
}

// RowOverflows implements Skeleton.
func (s *Sheet) RowOverflows(row int) []Overflow {
	l := s.layoutRow(row)
	if l == nil {
		return nil
	}
	return l.overflows
}

// occupied reports whether text drawn from another cell must stop before
// (row, column).
func (s *Sheet) occupied(row, column int) bool {
	if _, ok := s.MergeAt(row, column); ok {
		return true
	}
	d, ok := s.Cell(row, column)
	return ok && d.Value != ""
}

func (s *Sheet) layoutRow(row int) *rowLayout {
	if row < 0 || row >= len(s.rowAcc) {
		return nil
	}
	if l, ok := s.rows[row]; ok {
		return l
	}
	l := &rowLayout{byColumn: make(map[int]Range)}
	cols := make([]int, 0, len(s.cells[row]))
	for c := range s.cells[row] {
		cols = append(cols, c)
	}
	sort.Ints(cols)
	for _, c := range cols {
		span, ok := s.overflowSpan(row, c)
		if !ok {
			continue
		}
		l.byColumn[c] = span
		l.overflows = append(l.overflows, Overflow{Row: row, Column: c, Span: span})
	}
	s.rows[row] = l
	return l
}

// overflowSpan computes the columns the text of (row, column) covers when it
// is wider than its cell. Text spills into neighbours that are empty and
// not merged.
func (s *Sheet) overflowSpan(row, column int) (Range, bool) {
	if _, merged := s.MergeAt(row, column); merged {
		return Range{}, false
	}
	t, ok := s.Text(row, column)
	if !ok || t.Style.Wrap {
		return Range{}, false
	}
	width := s.measure(t.Text, t.Style)
	cell := s.colAcc[column] - StartOffset(s.colAcc, column)
	if width <= cell {
		return Range{}, false
	}

	start, end := column, column
	extendRight := func(need float64) {
		for need > 0 && end+1 < len(s.colAcc) && !s.occupied(row, end+1) {
			end++
			need -= s.colAcc[end] - s.colAcc[end-1]
		}
	}
	extendLeft := func(need float64) {
		for need > 0 && start-1 >= 0 && !s.occupied(row, start-1) {
			start--
			need -= s.colAcc[start] - StartOffset(s.colAcc, start)
		}
	}

	switch ResolveAlign(t.Text, t.Style.HAlign) {
	case AlignRight:
		extendLeft(width - cell)
	case AlignCenter:
		half := (width - cell) / 2
		extendLeft(half)
		extendRight(half)
	default:
		extendRight(width - cell)
	}
	if start == column && end == column {
		return Range{}, false
	}
	return Range{StartRow: row, EndRow: row, StartColumn: start, EndColumn: end}, true
}

var _ Skeleton = (*Sheet)(nil)
