// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

func mustNew(t *testing.T, w, h float64, opts ...Option) *Canvas {
	t.Helper()
	c, err := New(w, h, opts...)
	if err != nil {
		t.Fatalf("New(%v, %v) error = %v", w, h, err)
	}
	return c
}

// TestNew tests canvas creation and device sizing.
func TestNew(t *testing.T) {
	c := mustNew(t, 100, 50, WithPixelRatio(2))

	if c.Width() != 100 || c.Height() != 50 {
		t.Errorf("logical size = %vx%v, want 100x50", c.Width(), c.Height())
	}
	if c.DeviceWidth() != 200 || c.DeviceHeight() != 100 {
		t.Errorf("device size = %dx%d, want 200x100", c.DeviceWidth(), c.DeviceHeight())
	}
	if got, want := c.Transform(), Scale(2, 2); got != want {
		t.Errorf("Transform() = %+v, want %+v", got, want)
	}
}

// TestNewInvalidDimensions tests the dimension sentinel error.
func TestNewInvalidDimensions(t *testing.T) {
	for _, size := range [][2]float64{{0, 10}, {10, -1}} {
		_, err := New(size[0], size[1])
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("New(%v, %v) error = %v, want ErrInvalidDimensions", size[0], size[1], err)
		}
	}
}

// TestPixelRatioFallback tests that a bad ratio falls back to 1.
func TestPixelRatioFallback(t *testing.T) {
	c := mustNew(t, 10, 10, WithPixelRatio(-3))
	if c.PixelRatio() != 1 {
		t.Errorf("PixelRatio() = %v, want 1", c.PixelRatio())
	}
	c.SetPixelRatio(1.5)
	if c.DeviceWidth() != 15 {
		t.Errorf("DeviceWidth() after SetPixelRatio = %d, want 15", c.DeviceWidth())
	}
}

// TestFillRect tests rounding and clipping of filled rectangles.
func TestFillRect(t *testing.T) {
	c := mustNew(t, 10, 10)
	c.FillRect(2, 2, 3, 3, red)

	img := c.Image()
	if got := img.RGBAAt(2, 2); got != red {
		t.Errorf("pixel(2,2) = %v, want red", got)
	}
	if got := img.RGBAAt(5, 5); got.A != 0 {
		t.Errorf("pixel(5,5) = %v, want transparent", got)
	}

	restore := c.Save()
	c.ClipRect(0, 0, 3, 10)
	c.FillRect(0, 8, 10, 2, blue)
	restore()

	if got := img.RGBAAt(1, 9); got != blue {
		t.Errorf("pixel(1,9) = %v, want blue", got)
	}
	if got := img.RGBAAt(5, 9); got.A != 0 {
		t.Errorf("pixel(5,9) outside clip = %v, want transparent", got)
	}
}

// TestSaveRestore tests that restore functions are idempotent and unwind
// nested saves.
func TestSaveRestore(t *testing.T) {
	c := mustNew(t, 10, 10)
	base := c.Transform()

	outer := c.Save()
	c.Translate(5, 5)
	c.SetComposite(CompositeCopy)
	inner := c.Save()
	c.Translate(1, 1)
	c.ClipRect(0, 0, 1, 1)

	outer()
	if c.Transform() != base {
		t.Errorf("Transform() after restore = %+v, want %+v", c.Transform(), base)
	}
	if c.Composite() != CompositeSourceOver {
		t.Errorf("Composite() after restore = %v, want source-over", c.Composite())
	}
	if got := c.ClipBounds(); got != image.Rect(0, 0, 10, 10) {
		t.Errorf("ClipBounds() after restore = %v, want full canvas", got)
	}

	c.Translate(2, 0)
	inner()
	outer()
	if got, want := c.Transform(), base.Multiply(Translate(2, 0)); got != want {
		t.Errorf("stale restore changed transform: %+v, want %+v", got, want)
	}
}

// TestStrokeLine tests hairline placement.
func TestStrokeLine(t *testing.T) {
	c := mustNew(t, 10, 10)
	c.Translate(0.5, 0.5)
	c.StrokeLine(0, 3, 10, 3, LineStyle{Color: red, Width: 1})
	c.StrokeLine(6, 0, 6, 10, LineStyle{Color: green, Width: 1})

	img := c.Image()
	if got := img.RGBAAt(1, 3); got != red {
		t.Errorf("row 3 = %v, want red", got)
	}
	for _, y := range []int{2, 4} {
		if got := img.RGBAAt(1, y); got.A != 0 {
			t.Errorf("row %d = %v, want transparent", y, got)
		}
	}
	if got := img.RGBAAt(6, 1); got != green {
		t.Errorf("column 6 = %v, want green", got)
	}
	if got := img.RGBAAt(7, 1); got.A != 0 {
		t.Errorf("column 7 = %v, want transparent", got)
	}
}

// TestStrokeLineDash tests dashed strokes.
func TestStrokeLineDash(t *testing.T) {
	c := mustNew(t, 10, 2)
	c.Translate(0, 0.5)
	c.StrokeLine(0, 0, 10, 0, LineStyle{Color: red, Width: 1, Dash: []int{2, 2}})

	img := c.Image()
	want := []bool{true, true, false, false, true, true, false, false, true, true}
	for x, on := range want {
		got := img.RGBAAt(x, 0).A != 0
		if got != on {
			t.Errorf("pixel(%d,0) painted = %v, want %v", x, got, on)
		}
	}
}

// TestDrawImageCopyShift tests shifting a canvas onto itself with the copy
// composite.
func TestDrawImageCopyShift(t *testing.T) {
	c := mustNew(t, 4, 4)
	c.FillRect(0, 0, 4, 1, red)
	c.FillRect(0, 1, 4, 1, green)

	restore := c.Save()
	c.ResetTransform()
	c.SetComposite(CompositeCopy)
	c.DrawImage(c.Image(), 0, 0, 4, 4, 0, -1, 4, 4)
	restore()

	img := c.Image()
	if got := img.RGBAAt(0, 0); got != green {
		t.Errorf("row 0 after shift = %v, want green", got)
	}
	if got := img.RGBAAt(0, 3); got.A != 0 {
		t.Errorf("row 3 after shift = %v, want transparent", got)
	}
}

// TestDrawImageSourceOver tests a blit with a sub-rectangle source.
func TestDrawImageSourceOver(t *testing.T) {
	src := mustNew(t, 4, 4)
	src.FillRect(2, 2, 2, 2, blue)

	dst := mustNew(t, 4, 4)
	dst.Fill(red)
	dst.ResetTransform()
	dst.DrawCanvas(src, 2, 2, 2, 2, 0, 0, 2, 2)

	img := dst.Image()
	if got := img.RGBAAt(1, 1); got != blue {
		t.Errorf("pixel(1,1) = %v, want blue", got)
	}
	if got := img.RGBAAt(3, 3); got != red {
		t.Errorf("pixel(3,3) = %v, want red", got)
	}
}

// TestClearRect tests clearing under a clip.
func TestClearRect(t *testing.T) {
	c := mustNew(t, 4, 4)
	c.Fill(red)
	c.ClipRect(0, 0, 2, 4)
	c.ClearRect(0, 0, 4, 4)

	img := c.Image()
	if got := img.RGBAAt(1, 1); got.A != 0 {
		t.Errorf("pixel(1,1) = %v, want transparent", got)
	}
	if got := img.RGBAAt(3, 1); got != red {
		t.Errorf("pixel(3,1) = %v, want red", got)
	}
}

// TestDrawCalls tests the draw call counter.
func TestDrawCalls(t *testing.T) {
	c := mustNew(t, 4, 4)
	c.FillRect(0, 0, 1, 1, red)
	c.StrokeLine(0, 0, 4, 0, LineStyle{Color: red})
	c.ClearRect(0, 0, 1, 1)
	if got := c.DrawCalls(); got != 3 {
		t.Errorf("DrawCalls() = %d, want 3", got)
	}
	c.ResetDrawCalls()
	if got := c.DrawCalls(); got != 0 {
		t.Errorf("DrawCalls() after reset = %d, want 0", got)
	}
}

// TestMatrixInvert tests the inverse of a scale and translate.
func TestMatrixInvert(t *testing.T) {
	m := Scale(2, 2).Multiply(Translate(10, 20))
	x, y := m.TransformPoint(1, 1)
	if x != 22 || y != 42 {
		t.Fatalf("TransformPoint(1,1) = (%v,%v), want (22,42)", x, y)
	}
	ix, iy := m.Invert().TransformPoint(x, y)
	if ix != 1 || iy != 1 {
		t.Errorf("Invert().TransformPoint() = (%v,%v), want (1,1)", ix, iy)
	}
	if !Identity().IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
}
