// Package viewport tracks the scroll state of one sheet pane and produces
// the per-frame Info the renderer consumes.
//
// A Viewport knows where its pane sits on the destination surface, which
// part of the sheet content it shows and how that changed since the last
// committed frame. The host calls Info before rendering a pane and Commit
// once the frame is on screen.
package viewport

import (
	"log/slog"
	"math"

	"github.com/gogpu/ggsheet/canvas"
	"github.com/gogpu/ggsheet/skeleton"
)

// PaneKey identifies one of the four sheet panes.
type PaneKey uint8

// Pane keys. PaneCustom marks a viewport the renderer draws without a
// cache.
const (
	PaneMain PaneKey = iota
	PaneTop
	PaneLeft
	PaneCorner
	PaneCustom
)

// String returns the pane name.
func (k PaneKey) String() string {
	switch k {
	case PaneMain:
		return "main"
	case PaneTop:
		return "top"
	case PaneLeft:
		return "left"
	case PaneCorner:
		return "corner"
	default:
		return "custom"
	}
}

// Cached reports whether the renderer keeps a cache surface for the pane.
func (k PaneKey) Cached() bool { return k <= PaneCorner }

// DefaultBufferEdge is the cache padding in content units on each side.
const DefaultBufferEdge = 100

// Info is the render context of one pane for one frame.
type Info struct {
	PaneKey PaneKey

	// ViewBound is the visible content rectangle.
	ViewBound skeleton.Bound

	// CacheBounds is ViewBound padded by the buffer edge.
	CacheBounds skeleton.Bound

	// DiffBounds and DiffCacheBounds are the content rectangles newly
	// exposed in the view and in the cache since the last commit.
	DiffBounds      []skeleton.Bound
	DiffCacheBounds []skeleton.Bound

	// DiffX and DiffY are the previous scroll minus the current scroll,
	// in content units.
	DiffX, DiffY float64

	IsDirty           bool
	IsForceDirty      bool
	ShouldCacheUpdate bool

	// LeftOrigin and TopOrigin are the content coordinates shown at the
	// pane's top-left corner.
	LeftOrigin, TopOrigin float64

	// BufferEdgeX and BufferEdgeY are the cache padding in content units.
	BufferEdgeX, BufferEdgeY float64

	// Position is the pane rectangle on the destination surface, in
	// logical pixels measured from the surface origin.
	Position skeleton.Bound

	Zoom       float64
	PixelRatio float64
}

// Scale returns device pixels per content unit.
func (i Info) Scale() float64 { return i.Zoom * i.PixelRatio }

// BufferEdgeSize returns the cache padding in logical pixels.
func (i Info) BufferEdgeSize() (x, y float64) {
	return i.BufferEdgeX * i.Zoom, i.BufferEdgeY * i.Zoom
}

// Option configures a Viewport.
type Option func(*Viewport)

// WithBufferEdge sets the cache padding in content units.
func WithBufferEdge(x, y float64) Option {
	return func(v *Viewport) {
		v.bufferX, v.bufferY = math.Max(x, 0), math.Max(y, 0)
	}
}

// WithZoom sets the initial zoom.
func WithZoom(z float64) Option {
	return func(v *Viewport) {
		if z > 0 {
			v.zoom = z
		}
	}
}

// WithPixelRatio sets the initial device pixel ratio.
func WithPixelRatio(r float64) Option {
	return func(v *Viewport) {
		if r > 0 {
			v.pixelRatio = r
		}
	}
}

// WithOrigin sets the content offset shown at scroll (0, 0). Frozen
// layouts use it to start the scrolling panes after the frozen rows and
// columns.
func WithOrigin(x, y float64) Option {
	return func(v *Viewport) {
		v.baseX, v.baseY = x, y
	}
}

// WithScrollAxes selects which axes follow ScrollTo. Both are enabled by
// default.
func WithScrollAxes(x, y bool) Option {
	return func(v *Viewport) {
		v.scrollableX, v.scrollableY = x, y
	}
}

// WithLogger sets the logger for dirty state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(v *Viewport) {
		if l != nil {
			v.log = l
		}
	}
}

// Viewport tracks the scroll, zoom and dirty state of one pane.
//
// Viewport is not safe for concurrent use.
type Viewport struct {
	key      PaneKey
	position skeleton.Bound

	baseX, baseY             float64
	scrollX, scrollY         float64
	prevX, prevY             float64
	scrollableX, scrollableY bool

	zoom       float64
	pixelRatio float64

	bufferX, bufferY float64

	dirty      bool
	forceDirty bool

	log *slog.Logger
}

// New creates a viewport for a pane placed at position on the destination
// surface. The first frame is always a full repaint.
func New(key PaneKey, position skeleton.Bound, opts ...Option) *Viewport {
	v := &Viewport{
		key:         key,
		position:    position,
		scrollableX: true,
		scrollableY: true,
		zoom:        1,
		pixelRatio:  1,
		bufferX:     DefaultBufferEdge,
		bufferY:     DefaultBufferEdge,
		dirty:       true,
		forceDirty:  true,
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Key returns the pane key.
func (v *Viewport) Key() PaneKey { return v.key }

// Position returns the pane rectangle in logical pixels.
func (v *Viewport) Position() skeleton.Bound { return v.position }

// Scroll returns the current scroll offset in content units.
func (v *Viewport) Scroll() (x, y float64) { return v.scrollX, v.scrollY }

// Zoom returns the zoom factor.
func (v *Viewport) Zoom() float64 { return v.zoom }

// PixelRatio returns the device pixel ratio.
func (v *Viewport) PixelRatio() float64 { return v.pixelRatio }

// ScrollTo sets the scroll offset. Offsets clamp at zero and locked axes
// are ignored.
//
// The offset is kept as given, but panes render at the offset rounded to
// the device pixel grid, so consecutive frames always differ by whole
// device pixels.
func (v *Viewport) ScrollTo(x, y float64) {
	if !v.scrollableX {
		x = v.scrollX
	}
	if !v.scrollableY {
		y = v.scrollY
	}
	x, y = math.Max(x, 0), math.Max(y, 0)
	if x == v.scrollX && y == v.scrollY {
		return
	}
	ox, oy := v.renderScroll()
	v.scrollX, v.scrollY = x, y
	if nx, ny := v.renderScroll(); nx != ox || ny != oy {
		v.dirty = true
	}
}

// renderScroll returns the scroll offset snapped to the device pixel grid.
func (v *Viewport) renderScroll() (x, y float64) {
	s := v.zoom * v.pixelRatio
	return math.Round(v.scrollX*s) / s, math.Round(v.scrollY*s) / s
}

// ScrollBy moves the scroll offset by (dx, dy).
func (v *Viewport) ScrollBy(dx, dy float64) {
	v.ScrollTo(v.scrollX+dx, v.scrollY+dy)
}

// SetPosition moves or resizes the pane on the destination surface.
// Any size change forces a full repaint.
func (v *Viewport) SetPosition(p skeleton.Bound) {
	if p == v.position {
		return
	}
	v.position = p
	v.markForce("resize")
}

// Resize changes the pane size, keeping its top-left corner.
func (v *Viewport) Resize(w, h float64) {
	v.SetPosition(skeleton.BoundXYWH(v.position.Left, v.position.Top, w, h))
}

// SetZoom changes the zoom factor and forces a full repaint.
func (v *Viewport) SetZoom(z float64) {
	if z <= 0 || z == v.zoom {
		return
	}
	v.zoom = z
	v.markForce("zoom")
}

// SetPixelRatio changes the device pixel ratio and forces a full repaint.
func (v *Viewport) SetPixelRatio(r float64) {
	if r <= 0 || r == v.pixelRatio {
		return
	}
	v.pixelRatio = r
	v.markForce("pixel ratio")
}

// SetOrigin changes the content offset shown at scroll (0, 0) and forces a
// full repaint.
func (v *Viewport) SetOrigin(x, y float64) {
	if x == v.baseX && y == v.baseY {
		return
	}
	v.baseX, v.baseY = x, y
	v.markForce("origin")
}

// MakeDirty marks the pane for repainting. With force set the next frame
// takes the full repaint path.
func (v *Viewport) MakeDirty(force bool) {
	v.dirty = true
	if force {
		v.markForce("explicit")
	}
}

func (v *Viewport) markForce(reason string) {
	v.dirty = true
	if !v.forceDirty {
		v.log.Debug("viewport force dirty", "pane", v.key.String(), "reason", reason)
	}
	v.forceDirty = true
}

func (v *Viewport) origin() (float64, float64) {
	x, y := v.renderScroll()
	return v.baseX + x, v.baseY + y
}

// ViewBound returns the visible content rectangle.
func (v *Viewport) ViewBound() skeleton.Bound {
	left, top := v.origin()
	return skeleton.BoundXYWH(left, top, v.position.Width()/v.zoom, v.position.Height()/v.zoom)
}

// Info returns the render context for the current frame. It does not
// change the viewport; call Commit after the frame is rendered.
func (v *Viewport) Info() Info {
	left, top := v.origin()
	rx, ry := v.renderScroll()
	view := v.ViewBound()
	info := Info{
		PaneKey:     v.key,
		ViewBound:   view,
		CacheBounds: view.Expand(v.bufferX, v.bufferY),
		DiffX:       v.prevX - rx,
		DiffY:       v.prevY - ry,
		IsDirty:     v.dirty,
		LeftOrigin:  left,
		TopOrigin:   top,
		BufferEdgeX: v.bufferX,
		BufferEdgeY: v.bufferY,
		Position:    v.position,
		Zoom:        v.zoom,
		PixelRatio:  v.pixelRatio,
	}
	if v.forceDirty {
		info.IsDirty = true
		info.IsForceDirty = true
		return info
	}
	if info.DiffX == 0 && info.DiffY == 0 {
		return info
	}

	cache, ok := exposed(info.CacheBounds, info.DiffX, info.DiffY)
	if !ok {
		// The cache no longer overlaps its previous content.
		info.IsForceDirty = true
		info.IsDirty = true
		return info
	}
	viewDiff, ok := exposed(view, info.DiffX, info.DiffY)
	if !ok {
		viewDiff = []skeleton.Bound{view}
	}
	info.DiffBounds = viewDiff
	info.DiffCacheBounds = cache
	info.ShouldCacheUpdate = len(cache) > 0
	info.IsDirty = true
	return info
}

// Commit ends the frame: the current scroll becomes the reference for the
// next diff and the dirty flags clear.
func (v *Viewport) Commit() {
	v.prevX, v.prevY = v.renderScroll()
	v.dirty = false
	v.forceDirty = false
}

// exposed returns the parts of cur not covered by prev, where prev is cur
// moved by (dx, dy). The vertical strip comes first and spans the full
// height; the horizontal strip excludes it. ok is false when the two
// rectangles do not overlap.
func exposed(cur skeleton.Bound, dx, dy float64) (strips []skeleton.Bound, ok bool) {
	prev := cur.Translate(dx, dy)
	if !cur.Intersects(prev) {
		return nil, false
	}
	left, right := cur.Left, cur.Right
	switch {
	case dx < 0:
		strips = append(strips, skeleton.Bound{Left: prev.Right, Top: cur.Top, Right: cur.Right, Bottom: cur.Bottom})
		right = prev.Right
	case dx > 0:
		strips = append(strips, skeleton.Bound{Left: cur.Left, Top: cur.Top, Right: prev.Left, Bottom: cur.Bottom})
		left = prev.Left
	}
	switch {
	case dy < 0:
		strips = append(strips, skeleton.Bound{Left: left, Top: prev.Bottom, Right: right, Bottom: cur.Bottom})
	case dy > 0:
		strips = append(strips, skeleton.Bound{Left: left, Top: cur.Top, Right: right, Bottom: prev.Top})
	}
	out := strips[:0]
	for _, s := range strips {
		if !s.IsEmpty() {
			out = append(out, s)
		}
	}
	return out, true
}

// Transform returns the destination transform the renderer expects at the
// start of this pane's frame. It maps content units, offset by the header
// bands, to device pixels so that content origin lands on the pane's
// top-left corner.
func (v *Viewport) Transform(rowHeaderWidth, columnHeaderHeight float64) canvas.Matrix {
	s := v.zoom * v.pixelRatio
	return canvas.Scale(s, s).Multiply(canvas.Translate(
		v.position.Left/v.zoom-rowHeaderWidth,
		v.position.Top/v.zoom-columnHeaderHeight,
	))
}
