package ggsheet

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/ggsheet/skeleton"
)

func TestPaddedSegment(t *testing.T) {
	const rows, cols = 100, 50
	tests := []struct {
		name string
		seg  skeleton.Range
		want skeleton.Range
	}{
		{
			name: "middle",
			seg:  skeleton.Range{StartRow: 40, EndRow: 49, StartColumn: 20, EndColumn: 24},
			want: skeleton.Range{StartRow: 36, EndRow: 53, StartColumn: 18, EndColumn: 26},
		},
		{
			name: "near the start",
			seg:  skeleton.Range{StartRow: 1, EndRow: 5, StartColumn: 0, EndColumn: 2},
			want: skeleton.Range{StartRow: 0, EndRow: 7, StartColumn: 0, EndColumn: 4},
		},
		{
			name: "near the end",
			seg:  skeleton.Range{StartRow: 95, EndRow: 99, StartColumn: 47, EndColumn: 49},
			want: skeleton.Range{StartRow: 93, EndRow: 99, StartColumn: 45, EndColumn: 49},
		},
		{
			name: "single cell rounds up",
			seg:  skeleton.CellRange(0, 0),
			want: skeleton.Range{StartRow: 0, EndRow: 1, StartColumn: 0, EndColumn: 1},
		},
		{
			name: "whole sheet",
			seg:  skeleton.Range{StartRow: 0, EndRow: rows - 1, StartColumn: 0, EndColumn: cols - 1},
			want: skeleton.Range{StartRow: 0, EndRow: rows - 1, StartColumn: 0, EndColumn: cols - 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paddedSegment(tt.seg, rows, cols)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("paddedSegment(%+v) mismatch (-want +got):\n%s", tt.seg, diff)
			}
		})
	}
}
