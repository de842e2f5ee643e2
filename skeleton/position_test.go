package skeleton

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAccumulate(t *testing.T) {
	got := Accumulate([]float64{20, 20, -5, 20})
	want := []float64{20, 40, 40, 60}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Accumulate() mismatch (-want +got):\n%s", diff)
	}
}

func TestOffsetsClamp(t *testing.T) {
	acc := []float64{20, 40, 60}
	tests := []struct {
		name  string
		fn    func([]float64, int) float64
		index int
		want  float64
	}{
		{"start of first", StartOffset, 0, 0},
		{"start negative", StartOffset, -1, 0},
		{"start of second", StartOffset, 1, 20},
		{"start past end", StartOffset, 7, 60},
		{"end of first", EndOffset, 0, 20},
		{"end negative", EndOffset, -3, 20},
		{"end of last", EndOffset, 2, 60},
		{"end past end", EndOffset, 5, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(acc, tt.index); got != tt.want {
				t.Errorf("offset(%d) = %v, want %v", tt.index, got, tt.want)
			}
		})
	}

	if got := StartOffset(nil, 3); got != 0 {
		t.Errorf("StartOffset(nil) = %v, want 0", got)
	}
	if got := EndOffset(nil, 3); got != 0 {
		t.Errorf("EndOffset(nil) = %v, want 0", got)
	}
}

func TestCellPosition(t *testing.T) {
	rowAcc := []float64{20, 40, 60}
	colAcc := []float64{50, 100}

	got := CellPosition(1, 1, rowAcc, colAcc)
	want := Bound{Left: 50, Top: 20, Right: 100, Bottom: 40}
	if got != want {
		t.Errorf("CellPosition(1, 1) = %+v, want %+v", got, want)
	}

	got = RangePosition(Range{StartRow: 1, EndRow: 2, StartColumn: 0, EndColumn: 1}, rowAcc, colAcc)
	want = Bound{Left: 0, Top: 20, Right: 100, Bottom: 60}
	if got != want {
		t.Errorf("RangePosition() = %+v, want %+v", got, want)
	}
}

func TestSegmentByBound(t *testing.T) {
	rowAcc := []float64{20, 40, 60}
	colAcc := []float64{50, 100}

	tests := []struct {
		name string
		b    Bound
		want Range
	}{
		{"whole sheet", Bound{0, 0, 100, 60}, Range{0, 2, 0, 1}},
		{"edge aligned row", Bound{0, 20, 50, 40}, Range{1, 1, 0, 0}},
		{"partial cells", Bound{10, 10, 60, 30}, Range{0, 1, 0, 1}},
		{"negative top", Bound{-30, -30, 10, 10}, Range{0, 0, 0, 0}},
		{"overhanging the end clamps", Bound{0, 50, 10, 90}, Range{2, 2, 0, 0}},
		{"below the last row", Bound{0, 70, 10, 90}, EmptyRange},
		{"right of the last column", Bound{120, 0, 150, 10}, EmptyRange},
		{"past both ends", Bound{500, 500, 600, 600}, EmptyRange},
		{"starting on the bottom edge", Bound{0, 60, 10, 80}, EmptyRange},
		{"before content", Bound{-10, -10, 0, 0}, EmptyRange},
		{"empty bound", Bound{10, 10, 10, 30}, EmptyRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentByBound(tt.b, rowAcc, colAcc)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SegmentByBound(%+v) mismatch (-want +got):\n%s", tt.b, diff)
			}
		})
	}

	if got := SegmentByBound(Bound{0, 0, 10, 10}, nil, colAcc); got != EmptyRange {
		t.Errorf("SegmentByBound(no rows) = %+v, want EmptyRange", got)
	}
}

func TestRangeHelpers(t *testing.T) {
	r := Range{StartRow: 1, EndRow: 2, StartColumn: 1, EndColumn: 1}

	if !EmptyRange.IsEmpty() {
		t.Error("EmptyRange.IsEmpty() = false, want true")
	}
	if r.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}
	if got := r.Rows(); got != 2 {
		t.Errorf("Rows() = %d, want 2", got)
	}
	if got := EmptyRange.Columns(); got != 0 {
		t.Errorf("EmptyRange.Columns() = %d, want 0", got)
	}
	if r.Intersects(EmptyRange) {
		t.Error("Intersects(EmptyRange) = true, want false")
	}

	got := r.Expand(1, 3, 2)
	want := Range{StartRow: 0, EndRow: 2, StartColumn: 0, EndColumn: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Expand() mismatch (-want +got):\n%s", diff)
	}

	u := r.Union(CellRange(0, 0))
	if want := (Range{0, 2, 0, 1}); u != want {
		t.Errorf("Union() = %+v, want %+v", u, want)
	}
}

func TestBoundHelpers(t *testing.T) {
	a := BoundXYWH(0, 0, 10, 10)
	b := BoundXYWH(5, 5, 10, 10)

	if got, want := a.Intersect(b), (Bound{5, 5, 10, 10}); got != want {
		t.Errorf("Intersect() = %+v, want %+v", got, want)
	}
	if got, want := a.Union(b), (Bound{0, 0, 15, 15}); got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
	if a.Intersects(BoundXYWH(10, 0, 5, 5)) {
		t.Error("Intersects(touching) = true, want false")
	}
	if got := a.Intersect(BoundXYWH(20, 20, 1, 1)); !got.IsEmpty() {
		t.Errorf("Intersect(disjoint) = %+v, want empty", got)
	}
	if !a.Contains(0, 0) || a.Contains(10, 5) {
		t.Error("Contains() edges wrong")
	}
	if got, want := a.Expand(1, 2), (Bound{-1, -2, 11, 12}); got != want {
		t.Errorf("Expand() = %+v, want %+v", got, want)
	}
}
