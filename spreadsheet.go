package ggsheet

import (
	"image/color"

	"github.com/gogpu/ggsheet/canvas"
	"github.com/gogpu/ggsheet/extension"
	"github.com/gogpu/ggsheet/skeleton"
	"github.com/gogpu/ggsheet/viewport"
)

// ViewportInfo is the per-frame render context of one pane.
type ViewportInfo = viewport.Info

// PaneKey identifies a pane.
type PaneKey = viewport.PaneKey

// Pane keys.
const (
	PaneMain   = viewport.PaneMain
	PaneTop    = viewport.PaneTop
	PaneLeft   = viewport.PaneLeft
	PaneCorner = viewport.PaneCorner
	PaneCustom = viewport.PaneCustom
)

const paneCount = int(viewport.PaneCorner) + 1

// Spreadsheet renders a sheet skeleton into up to four panes.
//
// Each cached pane owns a compositor with its own cache surface. Render is
// called once per visible pane per frame, always from the same goroutine.
type Spreadsheet struct {
	sk       skeleton.Skeleton
	pipeline *extension.Pipeline

	panes [paneCount]*paneCompositor

	visible               bool
	cacheEnabled          bool
	forceDisableGridlines bool
	gridlineColor         color.Color

	// transform maps component coordinates (header bands included) to
	// destination logical pixels. It is used for hit testing.
	transform canvas.Matrix

	overflow *overflowMemo
	diag     Diagnostics
}

// New creates a Spreadsheet for sk. sk may be nil until the first
// UpdateSkeleton.
func New(sk skeleton.Skeleton, opts ...Option) (*Spreadsheet, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.pipeline == nil {
		p, err := extension.DefaultPipeline()
		if err != nil {
			return nil, err
		}
		o.pipeline = p
	}
	s := &Spreadsheet{
		sk:            sk,
		pipeline:      o.pipeline,
		visible:       true,
		cacheEnabled:  o.cache,
		gridlineColor: o.gridlineColor,
		transform:     canvas.Identity(),
		overflow:      newOverflowMemo(o.overflowDebounce),
		diag:          Diagnostics{LastSegment: skeleton.EmptyRange},
	}
	for i := range s.panes {
		s.panes[i] = newPaneCompositor(viewport.PaneKey(i))
	}
	return s, nil
}

// Skeleton returns the current skeleton.
func (s *Spreadsheet) Skeleton() skeleton.Skeleton { return s.sk }

// Pipeline returns the extension pipeline.
func (s *Spreadsheet) Pipeline() *extension.Pipeline { return s.pipeline }

// Background returns the Background extension, or nil.
func (s *Spreadsheet) Background() *extension.Background { return s.pipeline.Background() }

// Border returns the Border extension, or nil.
func (s *Spreadsheet) Border() *extension.Border { return s.pipeline.Border() }

// Font returns the Font extension, or nil.
func (s *Spreadsheet) Font() *extension.Font { return s.pipeline.Font() }

// UpdateSkeleton replaces the skeleton. Every pane repaints fully on its
// next render.
func (s *Spreadsheet) UpdateSkeleton(sk skeleton.Skeleton) {
	s.sk = sk
	s.overflow.reset()
	s.MakeForceDirty(true)
}

// SetVisible shows or hides the component.
func (s *Spreadsheet) SetVisible(v bool) { s.visible = v }

// Visible reports whether the component renders.
func (s *Spreadsheet) Visible() bool { return s.visible }

// SetTransform sets the component-to-surface transform used by IsHit and
// CellPosition.
func (s *Spreadsheet) SetTransform(m canvas.Matrix) { s.transform = m }

// Transform returns the component-to-surface transform.
func (s *Spreadsheet) Transform() canvas.Matrix { return s.transform }

// MakeDirty marks or clears the incremental dirty flag of every pane.
func (s *Spreadsheet) MakeDirty(dirty bool) {
	for _, p := range s.panes {
		p.dirty = dirty
	}
}

// MakeForceDirty marks or clears the force-dirty flag of every pane. A
// force-dirty pane takes the full repaint path on its next render.
func (s *Spreadsheet) MakeForceDirty(force bool) {
	for _, p := range s.panes {
		p.forceDirty = force
		if force {
			p.dirty = true
		}
	}
}

// IsDirty reports whether the pane has a pending repaint of its own.
func (s *Spreadsheet) IsDirty(key PaneKey) (dirty, force bool) {
	if !key.Cached() {
		return false, false
	}
	p := s.panes[key]
	return p.dirty, p.forceDirty
}

// SetForceDisableGridlines turns auxiliary gridlines off for every sheet.
func (s *Spreadsheet) SetForceDisableGridlines(disable bool) {
	if s.forceDisableGridlines == disable {
		return
	}
	s.forceDisableGridlines = disable
	s.MakeForceDirty(true)
}

// MarkOverflowStale drops remembered overflow spans of the given rows and
// schedules a debounced reset of the whole overflow memo.
func (s *Spreadsheet) MarkOverflowStale(rows ...int) {
	s.overflow.MarkStale(rows...)
}

// Close stops the overflow debounce timer.
func (s *Spreadsheet) Close() {
	s.overflow.stop()
}

// CacheSurface returns the cache surface of a pane, or nil if the pane has
// not rendered yet.
func (s *Spreadsheet) CacheSurface(key PaneKey) *canvas.Canvas {
	if !key.Cached() {
		return nil
	}
	return s.panes[key].cache
}

// Render draws one pane onto dst. The transform of dst must map component
// coordinates of this pane to device pixels (see viewport.Viewport.Transform).
//
// Render returns nil when nothing could be drawn: no skeleton, no
// destination, or no visible cells. A hidden component returns itself
// without drawing.
func (s *Spreadsheet) Render(dst *canvas.Canvas, info ViewportInfo) *Spreadsheet {
	if s.overflow.drain() {
		Logger().Debug("overflow memo reset")
	}
	if !s.visible {
		if info.PaneKey.Cached() {
			s.panes[info.PaneKey].dirty = false
		}
		return s
	}
	sk := s.sk
	if sk == nil {
		return nil
	}
	if dst == nil {
		s.diag.SkippedFrames++
		Logger().Warn("render skipped: no destination surface", "pane", info.PaneKey.String())
		return nil
	}

	if info.PaneKey == viewport.PaneMain {
		info.ViewBound = info.CacheBounds
	}
	sk.CalculateWithoutClearingCache(info.ViewBound)
	seg := sk.RowColumnSegment()
	if seg.IsEmpty() {
		s.diag.EmptySegments++
		return nil
	}
	s.diag.LastSegment = seg

	restore := dst.Save()
	defer restore()
	dst.Translate(sk.RowHeaderWidth(), sk.ColumnHeaderHeight())

	s.drawGridlines(dst, info, sk, seg)

	if s.cacheEnabled && s.RenderByViewport(dst, info) {
		return s
	}
	s.drawDirect(dst, info, sk)
	return s
}

// RenderByViewport refreshes the cache of a cached pane and composites it
// onto dst. It neither lays the skeleton out nor draws gridlines, and the
// transform of dst must already include the header translation. It
// reports false for a custom pane or when there is nothing to draw with.
func (s *Spreadsheet) RenderByViewport(dst *canvas.Canvas, info ViewportInfo) bool {
	sk := s.sk
	if sk == nil || dst == nil || !info.PaneKey.Cached() {
		return false
	}
	s.panes[info.PaneKey].update(dst, info, sk, s)
	return true
}

// Draw runs the extension pipeline for info onto c. The transform of c
// must map content coordinates to device pixels. When info carries diff
// bounds only the cells they cover are repainted.
func (s *Spreadsheet) Draw(c *canvas.Canvas, info ViewportInfo) {
	sk := s.sk
	if sk == nil || c == nil {
		return
	}
	var diff []skeleton.Range
	if len(info.DiffBounds) > 0 && !info.IsForceDirty {
		diff = make([]skeleton.Range, 0, len(info.DiffBounds))
		for _, b := range info.DiffBounds {
			diff = append(diff, sk.RowColumnSegmentByViewBound(b))
		}
	}
	s.drawContent(c, info, sk, diff)
}

func (s *Spreadsheet) drawContent(c *canvas.Canvas, info ViewportInfo, sk skeleton.Skeleton, diff []skeleton.Range) {
	view := sk.RowColumnSegmentByViewBound(info.ViewBound)
	s.pipeline.Draw(c, info.Scale(), sk, extension.DrawOptions{
		ViewRanges:          []skeleton.Range{view},
		DiffRanges:          diff,
		CheckOutOfViewBound: true,
		Overflow:            s.overflow,
	})
}

// drawDirect is the uncached path: the pipeline paints straight onto the
// destination, clipped to the pane.
func (s *Spreadsheet) drawDirect(dst *canvas.Canvas, info ViewportInfo, sk skeleton.Skeleton) {
	restore := dst.Save()
	defer restore()
	clipToPane(dst, info.Position)
	dst.Translate(-info.LeftOrigin, -info.TopOrigin)
	s.drawContent(dst, info, sk, nil)
	s.diag.DirectDraws++
}

// clipToPane clips dst to a rectangle given in logical pixels.
func clipToPane(dst *canvas.Canvas, pos skeleton.Bound) {
	m := dst.Transform()
	pr := dst.PixelRatio()
	dst.ResetTransform()
	dst.ClipRect(pos.Left*pr, pos.Top*pr, pos.Width()*pr, pos.Height()*pr)
	dst.SetTransform(m)
}

// IsHit reports whether a point in surface logical pixels falls inside the
// scrollable content area, past the header bands.
func (s *Spreadsheet) IsHit(x, y float64) bool {
	sk := s.sk
	if sk == nil {
		return false
	}
	cx, cy := s.transform.Invert().TransformPoint(x, y)
	return cx > sk.RowHeaderWidth() && cy > sk.ColumnHeaderHeight()
}

// CellPosition returns the rectangle of a single cell, ignoring merges, in
// surface logical pixels.
func (s *Spreadsheet) CellPosition(row, column int) (skeleton.Bound, bool) {
	sk := s.sk
	if sk == nil {
		return skeleton.Bound{}, false
	}
	b := skeleton.CellPosition(row, column, sk.RowHeightAccumulation(), sk.ColumnWidthAccumulation()).
		Translate(sk.RowHeaderWidth(), sk.ColumnHeaderHeight())
	x0, y0 := s.transform.TransformPoint(b.Left, b.Top)
	x1, y1 := s.transform.TransformPoint(b.Right, b.Bottom)
	return skeleton.Bound{Left: min(x0, x1), Top: min(y0, y1), Right: max(x0, x1), Bottom: max(y0, y1)}, true
}

// SelectionBounding expands a selection so no merged block is cut.
func (s *Spreadsheet) SelectionBounding(startRow, startColumn, endRow, endColumn int) (skeleton.Range, bool) {
	sk := s.sk
	if sk == nil {
		return skeleton.EmptyRange, false
	}
	return sk.MergeBounding(startRow, startColumn, endRow, endColumn), true
}
