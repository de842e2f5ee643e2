// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
)

// ErrInvalidDimensions is returned when a canvas is created or resized with
// a non-positive or non-finite size.
var ErrInvalidDimensions = errors.New("canvas: invalid dimensions")

// Composite selects how drawn pixels combine with the pixels already present.
type Composite uint8

const (
	// CompositeSourceOver blends new pixels over existing ones.
	CompositeSourceOver Composite = iota

	// CompositeCopy replaces the clipped area with the drawn pixels.
	// Pixels of the clip not covered by the drawing become transparent.
	CompositeCopy
)

// Option configures a Canvas during creation.
type Option func(*options)

type options struct {
	pixelRatio float64
}

// WithPixelRatio sets the device pixel ratio. Values that are not positive
// fall back to 1.
func WithPixelRatio(r float64) Option {
	return func(o *options) {
		o.pixelRatio = r
	}
}

// state is the part of a Canvas captured by Save.
type state struct {
	matrix Matrix
	clip   image.Rectangle
	op     Composite
}

// Canvas is a CPU pixel buffer with a logical size, a device pixel ratio and
// an affine transform from user coordinates to device pixels.
//
// A new canvas starts with the transform Scale(pixelRatio, pixelRatio), so
// user units are logical pixels. Drawing is limited to the current clip,
// which is always an integer device rectangle.
//
// Canvas is not safe for concurrent use.
type Canvas struct {
	img        *image.RGBA
	width      float64
	height     float64
	pixelRatio float64

	state
	stack []state

	drawCalls int
}

// New creates a canvas of the given logical size.
//
// Example:
//
//	c, err := canvas.New(800, 600, canvas.WithPixelRatio(2))
//	if err != nil {
//		return err
//	}
//	c.FillRect(0, 0, 100, 20, color.White)
func New(width, height float64, opts ...Option) (*Canvas, error) {
	o := options{pixelRatio: 1}
	for _, opt := range opts {
		opt(&o)
	}
	c := &Canvas{pixelRatio: normalizeRatio(o.pixelRatio)}
	if err := c.Resize(width, height); err != nil {
		return nil, err
	}
	return c, nil
}

func normalizeRatio(r float64) float64 {
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 1
	}
	return r
}

func validSize(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// deviceSize converts a logical length to whole device pixels.
func (c *Canvas) deviceSize(v float64) int {
	return max(int(math.Ceil(v*c.pixelRatio-1e-9)), 1)
}

// Resize changes the logical size. The buffer is reallocated only when the
// device size changes; either way the pixels are cleared and the drawing
// state is reset.
func (c *Canvas) Resize(width, height float64) error {
	if !validSize(width) || !validSize(height) {
		return fmt.Errorf("%w: width=%v height=%v", ErrInvalidDimensions, width, height)
	}
	c.width, c.height = width, height
	dw, dh := c.deviceSize(width), c.deviceSize(height)
	if c.img == nil || c.img.Rect.Dx() != dw || c.img.Rect.Dy() != dh {
		c.img = image.NewRGBA(image.Rect(0, 0, dw, dh))
	} else {
		clear(c.img.Pix)
	}
	c.reset()
	return nil
}

// SetPixelRatio changes the device pixel ratio and reallocates the buffer
// at the current logical size.
func (c *Canvas) SetPixelRatio(r float64) {
	r = normalizeRatio(r)
	if r == c.pixelRatio {
		return
	}
	c.pixelRatio = r
	_ = c.Resize(c.width, c.height)
}

func (c *Canvas) reset() {
	c.stack = c.stack[:0]
	c.state = state{
		matrix: Scale(c.pixelRatio, c.pixelRatio),
		clip:   c.img.Rect,
		op:     CompositeSourceOver,
	}
}

// Width returns the logical width.
func (c *Canvas) Width() float64 { return c.width }

// Height returns the logical height.
func (c *Canvas) Height() float64 { return c.height }

// DeviceWidth returns the buffer width in device pixels.
func (c *Canvas) DeviceWidth() int { return c.img.Rect.Dx() }

// DeviceHeight returns the buffer height in device pixels.
func (c *Canvas) DeviceHeight() int { return c.img.Rect.Dy() }

// PixelRatio returns the device pixel ratio.
func (c *Canvas) PixelRatio() float64 { return c.pixelRatio }

// Image returns the backing image. The image is reallocated by Resize and
// SetPixelRatio.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Snapshot returns a copy of the current pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	dst := image.NewRGBA(c.img.Rect)
	copy(dst.Pix, c.img.Pix)
	return dst
}

// SavePNG writes the current pixels to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("canvas: create %s: %w", path, err)
	}
	if err := png.Encode(f, c.img); err != nil {
		_ = f.Close()
		return fmt.Errorf("canvas: encode %s: %w", path, err)
	}
	return f.Close()
}

// DrawCalls returns the number of drawing operations issued since the last
// ResetDrawCalls. Operations fully outside the clip are counted too.
func (c *Canvas) DrawCalls() int { return c.drawCalls }

// ResetDrawCalls zeroes the draw call counter.
func (c *Canvas) ResetDrawCalls() { c.drawCalls = 0 }

// Transform returns the current user-to-device transform.
func (c *Canvas) Transform() Matrix { return c.matrix }

// SetTransform replaces the current transform.
func (c *Canvas) SetTransform(m Matrix) { c.matrix = m }

// ResetTransform sets the transform to identity, so user units are device
// pixels.
func (c *Canvas) ResetTransform() { c.matrix = Identity() }

// Translate applies a translation in user space.
func (c *Canvas) Translate(x, y float64) {
	c.matrix = c.matrix.Multiply(Translate(x, y))
}

// Scale applies a scale in user space.
func (c *Canvas) Scale(x, y float64) {
	c.matrix = c.matrix.Multiply(Scale(x, y))
}

// SetComposite sets the composite operation for subsequent drawing.
func (c *Canvas) SetComposite(op Composite) { c.op = op }

// Composite returns the current composite operation.
func (c *Canvas) Composite() Composite { return c.op }

// Save captures the transform, clip and composite operation and returns a
// function that restores them. Restoring also discards any state saved
// after this call. Calling the returned function more than once has no
// further effect.
//
//	restore := c.Save()
//	defer restore()
func (c *Canvas) Save() func() {
	depth := len(c.stack)
	c.stack = append(c.stack, c.state)
	done := false
	return func() {
		if done {
			return
		}
		done = true
		if depth < len(c.stack) {
			c.state = c.stack[depth]
			c.stack = c.stack[:depth]
		}
	}
}

// ClipRect intersects the clip with a user-space rectangle. The device
// rectangle is rounded outward.
func (c *Canvas) ClipRect(x, y, w, h float64) {
	c.clip = c.clip.Intersect(c.outerRect(x, y, w, h))
}

// ClipBounds returns the current clip in device pixels.
func (c *Canvas) ClipBounds() image.Rectangle { return c.clip }

// deviceBounds maps a user rectangle to device space.
func (c *Canvas) deviceBounds(x, y, w, h float64) (x0, y0, x1, y1 float64) {
	ax, ay := c.matrix.TransformPoint(x, y)
	bx, by := c.matrix.TransformPoint(x+w, y+h)
	return math.Min(ax, bx), math.Min(ay, by), math.Max(ax, bx), math.Max(ay, by)
}

// snap absorbs floating point noise before rounding to pixel edges.
func snap(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < 1e-6 {
		return r
	}
	return v
}

func (c *Canvas) outerRect(x, y, w, h float64) image.Rectangle {
	x0, y0, x1, y1 := c.deviceBounds(x, y, w, h)
	return image.Rect(
		int(math.Floor(snap(x0))), int(math.Floor(snap(y0))),
		int(math.Ceil(snap(x1))), int(math.Ceil(snap(y1))),
	)
}

func (c *Canvas) roundRect(x, y, w, h float64) image.Rectangle {
	x0, y0, x1, y1 := c.deviceBounds(x, y, w, h)
	return image.Rect(
		int(math.Round(snap(x0))), int(math.Round(snap(y0))),
		int(math.Round(snap(x1))), int(math.Round(snap(y1))),
	)
}

// target returns the backing image restricted to the clip.
func (c *Canvas) target() *image.RGBA {
	return c.img.SubImage(c.clip).(*image.RGBA)
}

func (c *Canvas) drawOp() draw.Op {
	if c.op == CompositeCopy {
		return draw.Src
	}
	return draw.Over
}

// Clear makes the whole buffer transparent, ignoring the clip.
func (c *Canvas) Clear() {
	c.drawCalls++
	clear(c.img.Pix)
}

// Fill paints the whole buffer with a colour, ignoring the clip.
func (c *Canvas) Fill(col color.Color) {
	c.drawCalls++
	draw.Draw(c.img, c.img.Rect, image.NewUniform(col), image.Point{}, draw.Src)
}

// ClearRect makes a user-space rectangle transparent within the clip.
// The device rectangle is rounded outward.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	c.drawCalls++
	r := c.outerRect(x, y, w, h).Intersect(c.clip)
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, image.Transparent, image.Point{}, draw.Src)
}

// FillRect fills a user-space rectangle. Device edges are rounded to the
// nearest pixel.
func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	c.drawCalls++
	c.fillDevice(c.roundRect(x, y, w, h), col)
}

func (c *Canvas) fillDevice(r image.Rectangle, col color.Color) {
	if c.op == CompositeCopy {
		c.clearOutside(r)
	}
	r = r.Intersect(c.clip)
	if r.Empty() || col == nil {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, c.drawOp())
}

// clearOutside implements the copy composite for the part of the clip not
// covered by r.
func (c *Canvas) clearOutside(r image.Rectangle) {
	keep := r.Intersect(c.clip)
	if keep == c.clip {
		return
	}
	if keep.Empty() {
		draw.Draw(c.img, c.clip, image.Transparent, image.Point{}, draw.Src)
		return
	}
	cl := c.clip
	for _, band := range []image.Rectangle{
		image.Rect(cl.Min.X, cl.Min.Y, cl.Max.X, keep.Min.Y),
		image.Rect(cl.Min.X, keep.Max.Y, cl.Max.X, cl.Max.Y),
		image.Rect(cl.Min.X, keep.Min.Y, keep.Min.X, keep.Max.Y),
		image.Rect(keep.Max.X, keep.Min.Y, cl.Max.X, keep.Max.Y),
	} {
		if !band.Empty() {
			draw.Draw(c.img, band, image.Transparent, image.Point{}, draw.Src)
		}
	}
}
