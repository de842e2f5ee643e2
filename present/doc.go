// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package present uploads a rendered sheet surface to a GPU texture and
// draws it into a gogpu window.
//
// The data flow is:
//
//	ggsheet.Scene (frame) -> canvas.Canvas (CPU) -> GPU Texture -> Window
//
// # Usage
//
//	p, err := present.New(app.GPUContextProvider())
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//		if err := p.Upload(scene.Frame()); err != nil {
//			log.Print(err)
//			return
//		}
//		_ = p.PresentTo(dc.AsTextureDrawer(), 0, 0)
//	})
//
// # Headless Use
//
// NullProvider and MemoryDrawer stand in for a window when there is no GPU.
// The memory drawer keeps textures in CPU memory, so a host can check what
// would have reached the screen:
//
//	p, _ := present.New(present.NullProvider{})
//	d := &present.MemoryDrawer{}
//	_ = p.Upload(scene.Frame())
//	_ = p.PresentTo(d, 0, 0)
//	tex, _, _ := d.Last()
//
// # Dirty Tracking
//
// Upload compares the frame with the last uploaded pixels. A frame that did
// not change (a scroll-free redraw, for example) does not touch the GPU.
//
// # Thread Safety
//
// Presenter is NOT safe for concurrent use.
package present
