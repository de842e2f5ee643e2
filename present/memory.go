// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
)

// ErrForeignTexture is returned when a MemoryDrawer is asked to draw a
// texture it did not create, or one that was destroyed.
var ErrForeignTexture = errors.New("present: texture not drawable by this drawer")

// MemoryTexture is a texture held in CPU memory.
type MemoryTexture struct {
	width, height int
	pixels        []byte
	premultiplied bool
	updates       int
	destroyed     bool
}

// Width implements gpucontext.Texture.
func (t *MemoryTexture) Width() int { return t.width }

// Height implements gpucontext.Texture.
func (t *MemoryTexture) Height() int { return t.height }

// UpdateData implements gpucontext.TextureUpdater.
func (t *MemoryTexture) UpdateData(data []byte) error {
	if t.destroyed {
		return ErrForeignTexture
	}
	if len(data) != len(t.pixels) {
		return fmt.Errorf("present: texture update of %d bytes, want %d", len(data), len(t.pixels))
	}
	copy(t.pixels, data)
	t.updates++
	return nil
}

// SetPremultiplied records the alpha mode of the pixels.
func (t *MemoryTexture) SetPremultiplied(p bool) { t.premultiplied = p }

// Premultiplied reports whether the pixels are premultiplied.
func (t *MemoryTexture) Premultiplied() bool { return t.premultiplied }

// Updates returns the number of UpdateData calls.
func (t *MemoryTexture) Updates() int { return t.updates }

// Destroy releases the pixels.
func (t *MemoryTexture) Destroy() {
	t.destroyed = true
	t.pixels = nil
}

// Destroyed reports whether Destroy was called.
func (t *MemoryTexture) Destroyed() bool { return t.destroyed }

// Image returns the texture pixels. The image shares memory with the
// texture.
func (t *MemoryTexture) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    t.pixels,
		Stride: t.width * 4,
		Rect:   image.Rect(0, 0, t.width, t.height),
	}
}

// MemoryDrawer is a gpucontext.TextureDrawer that keeps its textures in
// CPU memory. Headless hosts and tests use it in place of a window.
type MemoryDrawer struct {
	textures     []*MemoryTexture
	last         *MemoryTexture
	lastX, lastY float32
	draws        int
}

// NewTextureFromRGBA implements gpucontext.TextureCreator.
func (d *MemoryDrawer) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	if width <= 0 || height <= 0 || len(data) != width*height*4 {
		return nil, fmt.Errorf("present: %d bytes for a %dx%d texture", len(data), width, height)
	}
	t := &MemoryTexture{width: width, height: height, pixels: make([]byte, len(data))}
	copy(t.pixels, data)
	d.textures = append(d.textures, t)
	return t, nil
}

// TextureCreator implements gpucontext.TextureDrawer.
func (d *MemoryDrawer) TextureCreator() gpucontext.TextureCreator { return d }

// DrawTexture implements gpucontext.TextureDrawer. It records tex as the
// last drawn texture.
func (d *MemoryDrawer) DrawTexture(tex gpucontext.Texture, x, y float32) error {
	t, ok := tex.(*MemoryTexture)
	if !ok || t.destroyed {
		return ErrForeignTexture
	}
	d.last, d.lastX, d.lastY = t, x, y
	d.draws++
	return nil
}

// Last returns the last drawn texture and its position, or nil.
func (d *MemoryDrawer) Last() (tex *MemoryTexture, x, y float32) {
	return d.last, d.lastX, d.lastY
}

// Draws returns the number of DrawTexture calls.
func (d *MemoryDrawer) Draws() int { return d.draws }

// Textures returns the number of textures created.
func (d *MemoryDrawer) Textures() int { return len(d.textures) }

var _ gpucontext.TextureDrawer = (*MemoryDrawer)(nil)
