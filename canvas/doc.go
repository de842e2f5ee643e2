// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package canvas provides the pixel surfaces used by the sheet renderer.
//
// A Canvas is an *image.RGBA with a logical size, a device pixel ratio and
// an affine transform from user coordinates to device pixels. It serves both
// as the destination surface handed in by the host and as the per-pane
// cache surface that keeps a padded copy of the visible grid.
//
// # Drawing model
//
// Drawing is limited to axis-aligned primitives, which is all a grid needs:
//
//   - FillRect and ClearRect for cell backgrounds and cache patching
//   - StrokeLine for hairline gridlines and borders
//   - DrawImage and DrawCanvas for blits, with source-over or copy composite
//   - DrawText for glyph runs from a golang.org/x/image/font face
//
// # Scoped state
//
// Save returns a restore function instead of requiring a paired Restore
// call:
//
//	restore := c.Save()
//	defer restore()
//	c.ClipRect(0, 0, 100, 20)
//	c.Translate(10, 0)
//
// The clip is an integer device rectangle. ClipRect intersects it with a
// user rectangle rounded outward.
package canvas
