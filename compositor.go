package ggsheet

import (
	"github.com/gogpu/ggsheet/canvas"
	"github.com/gogpu/ggsheet/skeleton"
	"github.com/gogpu/ggsheet/viewport"
)

// paneCompositor keeps the cache surface of one pane in step with the
// pane's cache bounds and blits it onto the destination.
//
// The cache holds the destination layout plus a buffer edge on every side:
// content at LeftOrigin-BufferEdgeX lands Position.Left logical pixels
// from the cache's left edge.
type paneCompositor struct {
	key   viewport.PaneKey
	cache *canvas.Canvas

	dirty      bool
	forceDirty bool
}

func newPaneCompositor(key viewport.PaneKey) *paneCompositor {
	return &paneCompositor{key: key, dirty: true, forceDirty: true}
}

// ensureCache sizes the cache for dst. It reports whether the cache was
// created or reallocated, which invalidates its content.
func (p *paneCompositor) ensureCache(dst *canvas.Canvas, info ViewportInfo) bool {
	bx, by := info.BufferEdgeSize()
	w, h := dst.Width()+2*bx, dst.Height()+2*by
	pr := dst.PixelRatio()
	if p.cache == nil {
		c, err := canvas.New(w, h, canvas.WithPixelRatio(pr))
		if err != nil {
			Logger().Warn("cache surface allocation failed", "pane", p.key.String(), "err", err)
			return false
		}
		p.cache = c
		Logger().Info("cache surface created", "pane", p.key.String(),
			"width", c.DeviceWidth(), "height", c.DeviceHeight())
		return true
	}
	if p.cache.Width() == w && p.cache.Height() == h && p.cache.PixelRatio() == pr {
		return false
	}
	p.cache.SetPixelRatio(pr)
	if err := p.cache.Resize(w, h); err != nil {
		Logger().Warn("cache surface resize failed", "pane", p.key.String(), "err", err)
		return true
	}
	Logger().Info("cache surface resized", "pane", p.key.String(),
		"width", p.cache.DeviceWidth(), "height", p.cache.DeviceHeight())
	return true
}

// update refreshes the cache for info and blits it onto dst. The transform
// of dst must already include the header translation.
func (p *paneCompositor) update(dst *canvas.Canvas, info ViewportInfo, sk skeleton.Skeleton, s *Spreadsheet) {
	if dst == nil {
		return
	}
	if p.ensureCache(dst, info) {
		s.diag.CacheResizes++
		p.forceDirty = true
	}
	if p.cache == nil {
		s.diag.SkippedFrames++
		return
	}

	dirty := info.IsDirty || p.dirty
	force := info.IsForceDirty || p.forceDirty
	main := dst.Transform()

	switch {
	case len(info.DiffBounds) == 0 || (info.DiffX == 0 && info.DiffY == 0) || force:
		if dirty || force {
			p.repaint(main, info, sk, s)
		}
	case dirty:
		p.patch(main, info, sk, s)
	}
	p.blit(dst, info, s)
}

// toCacheSpace sets the cache transform so content coordinates map to
// cache device pixels.
func (p *paneCompositor) toCacheSpace(main canvas.Matrix, info ViewportInfo) {
	p.cache.SetTransform(main)
	p.cache.Translate(-info.LeftOrigin+info.BufferEdgeX, -info.TopOrigin+info.BufferEdgeY)
}

func (p *paneCompositor) repaint(main canvas.Matrix, info ViewportInfo, sk skeleton.Skeleton, s *Spreadsheet) {
	Logger().Debug("full repaint", "pane", p.key.String())

	restore := p.cache.Save()
	defer restore()
	p.cache.ResetTransform()
	p.cache.Clear()
	p.toCacheSpace(main, info)

	full := info
	full.ViewBound = info.CacheBounds
	s.drawContent(p.cache, full, sk, nil)

	p.dirty, p.forceDirty = false, false
	s.diag.FullRepaints++
}

// patch reuses the cache after a scroll: the old pixels move by the scroll
// delta and only the newly exposed strips are drawn.
func (p *paneCompositor) patch(main canvas.Matrix, info ViewportInfo, sk skeleton.Skeleton, s *Spreadsheet) {
	Logger().Debug("incremental repaint", "pane", p.key.String(),
		"diffX", info.DiffX, "diffY", info.DiffY, "rects", len(info.DiffCacheBounds))

	restore := p.cache.Save()
	defer restore()

	sx, sy := main.ScaleFactors()
	p.shift(info.DiffX*sx, info.DiffY*sy)

	if info.ShouldCacheUpdate {
		full := info
		full.ViewBound = info.CacheBounds
		scale := info.Scale()
		for _, r := range info.DiffCacheBounds {
			p.patchRect(main, full, r, scale, sk, s)
		}
	}

	p.dirty, p.forceDirty = false, false
	s.diag.IncrementalPatches++
}

// shift moves the cache pixels by (dx, dy) device pixels. Pixels shifted
// in from outside become transparent.
func (p *paneCompositor) shift(dx, dy float64) {
	restore := p.cache.Save()
	defer restore()
	p.cache.ResetTransform()
	p.cache.SetComposite(canvas.CompositeCopy)
	w, h := float64(p.cache.DeviceWidth()), float64(p.cache.DeviceHeight())
	p.cache.DrawCanvas(p.cache, 0, 0, w, h, dx, dy, w, h)
}

// patchRect redraws one exposed rectangle under its own clip. The clip is
// one device pixel wider than r on every side so antialiased edges at the
// seam are redrawn as well.
func (p *paneCompositor) patchRect(main canvas.Matrix, info ViewportInfo, r skeleton.Bound, scale float64, sk skeleton.Skeleton, s *Spreadsheet) {
	restore := p.cache.Save()
	defer restore()
	p.toCacheSpace(main, info)

	pad := 2 * canvas.FixOnePixelBlurOffset / scale
	e := r.Expand(pad, pad)
	p.cache.ClipRect(e.Left, e.Top, e.Width(), e.Height())
	p.cache.ClearRect(e.Left, e.Top, e.Width(), e.Height())

	diff := sk.RowColumnSegmentByViewBound(e)
	if diff.IsEmpty() {
		return
	}
	s.drawContent(p.cache, info, sk, []skeleton.Range{diff})
	s.diag.PatchedRects++
}

// blit copies the visible part of the cache onto the pane. Both surfaces
// use identity transforms; rectangles are scaled by the pixel ratio.
func (p *paneCompositor) blit(dst *canvas.Canvas, info ViewportInfo, s *Spreadsheet) {
	pr := dst.PixelRatio()
	bx, by := info.BufferEdgeSize()
	pos := info.Position
	dw, dh := pos.Width(), pos.Height()

	restore := dst.Save()
	defer restore()
	dst.ResetTransform()
	dst.SetComposite(canvas.CompositeSourceOver)
	dst.DrawCanvas(p.cache,
		(pos.Left+bx)*pr, (pos.Top+by)*pr, dw*pr, dh*pr,
		pos.Left*pr, pos.Top*pr, dw*pr, dh*pr,
	)
	s.diag.Blits++
}
