// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DrawText draws s with its baseline origin at the user-space point (x, y).
// The face must already be sized for device pixels. Glyphs are blended over
// the existing pixels and cut by the clip.
func (c *Canvas) DrawText(face font.Face, s string, x, y float64, col color.Color) {
	c.drawCalls++
	if face == nil || s == "" || col == nil || c.clip.Empty() {
		return
	}
	px, py := c.matrix.TransformPoint(x, y)
	d := font.Drawer{
		Dst:  c.target(),
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(px), Y: toFixed(py)},
	}
	d.DrawString(s)
}

// MeasureText returns the advance of s in device pixels.
func MeasureText(face font.Face, s string) float64 {
	if face == nil {
		return 0
	}
	return fromFixed(font.MeasureString(face, s))
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
