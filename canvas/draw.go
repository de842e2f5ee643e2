// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// FixOnePixelBlurOffset is half a device pixel. Translating by it before
// stroking puts one pixel lines on a single pixel row or column.
const FixOnePixelBlurOffset = 0.5

// LineStyle describes a hairline stroke.
type LineStyle struct {
	Color color.Color

	// Width is the stroke width in device pixels. Values below 1 draw
	// one pixel wide.
	Width int

	// Dash alternates on and off lengths in device pixels.
	// An empty Dash draws a solid line.
	Dash []int
}

// StrokeLine strokes an axis-aligned line between two user-space points.
// Lines that are neither horizontal nor vertical in device space are
// ignored.
//
// A horizontal line of width w centred on device y covers the rows starting
// at floor(y - w/2 + 0.5), so a one pixel line placed on a half pixel fills
// exactly one row.
func (c *Canvas) StrokeLine(x0, y0, x1, y1 float64, st LineStyle) {
	c.drawCalls++
	if st.Color == nil {
		return
	}
	w := max(st.Width, 1)
	ax, ay := c.matrix.TransformPoint(x0, y0)
	bx, by := c.matrix.TransformPoint(x1, y1)
	ax, ay, bx, by = snap(ax), snap(ay), snap(bx), snap(by)

	switch {
	case math.Abs(ay-by) < 1e-9:
		row := int(math.Floor(ay - float64(w)/2 + 0.5))
		start := int(math.Floor(math.Min(ax, bx)))
		end := int(math.Ceil(math.Max(ax, bx)))
		c.strokeSpan(start, end, st.Dash, func(a, b int) image.Rectangle {
			return image.Rect(a, row, b, row+w)
		}, st.Color)
	case math.Abs(ax-bx) < 1e-9:
		col := int(math.Floor(ax - float64(w)/2 + 0.5))
		start := int(math.Floor(math.Min(ay, by)))
		end := int(math.Ceil(math.Max(ay, by)))
		c.strokeSpan(start, end, st.Dash, func(a, b int) image.Rectangle {
			return image.Rect(col, a, col+w, b)
		}, st.Color)
	}
}

// strokeSpan fills the dashed segments of [start, end).
func (c *Canvas) strokeSpan(start, end int, dash []int, rect func(a, b int) image.Rectangle, col color.Color) {
	if end <= start {
		return
	}
	if !validDash(dash) {
		c.fillDevice(rect(start, end), col)
		return
	}
	on := true
	for pos, i := start, 0; pos < end; i = (i + 1) % len(dash) {
		next := min(pos+dash[i], end)
		if on {
			c.fillDevice(rect(pos, next), col)
		}
		on = !on
		pos = next
	}
}

func validDash(dash []int) bool {
	if len(dash) == 0 {
		return false
	}
	for _, d := range dash {
		if d <= 0 {
			return false
		}
	}
	return true
}

// DrawImage copies the source rectangle (sx, sy, sw, sh), given in source
// pixels, into the user-space destination rectangle (dx, dy, dw, dh).
// Equal device sizes copy pixels directly; other sizes are resampled.
//
// Drawing a canvas onto itself reads from a snapshot taken first.
func (c *Canvas) DrawImage(src image.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	c.drawCalls++
	if src == nil {
		return
	}
	if src == image.Image(c.img) {
		src = c.Snapshot()
	}
	sr := image.Rect(
		int(math.Round(sx)), int(math.Round(sy)),
		int(math.Round(sx+sw)), int(math.Round(sy+sh)),
	).Add(src.Bounds().Min)
	dr := c.roundRect(dx, dy, dw, dh)

	if c.op == CompositeCopy {
		c.clearOutside(dr)
	}
	if sr.Empty() || dr.Empty() || dr.Intersect(c.clip).Empty() {
		return
	}

	dst := c.target()
	op := c.drawOp()
	if sr.Dx() == dr.Dx() && sr.Dy() == dr.Dy() {
		xdraw.Draw(dst, dr, src, sr.Min, op)
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, dr, src, sr, op, nil)
}

// DrawCanvas draws another canvas, using the same arguments as DrawImage.
func (c *Canvas) DrawCanvas(src *Canvas, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	if src == nil {
		c.drawCalls++
		return
	}
	c.DrawImage(src.img, sx, sy, sw, sh, dx, dy, dw, dh)
}
