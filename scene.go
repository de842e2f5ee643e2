package ggsheet

import (
	"fmt"
	"image/color"

	"github.com/gogpu/ggsheet/canvas"
	"github.com/gogpu/ggsheet/skeleton"
	"github.com/gogpu/ggsheet/viewport"
)

// SceneOption configures a Scene.
type SceneOption func(*sceneOptions)

type sceneOptions struct {
	bufferEdge   float64
	freezeRows   int
	freezeCols   int
	zoom         float64
	pixelRatio   float64
	background   color.Color
	sheetOptions []Option
}

// WithBufferEdge sets the cache padding of every pane in content units.
func WithBufferEdge(edge float64) SceneOption {
	return func(o *sceneOptions) {
		if edge >= 0 {
			o.bufferEdge = edge
		}
	}
}

// WithFreeze freezes the first rows and columns. Frozen rows stay in the
// top pane, frozen columns in the left pane.
func WithFreeze(rows, columns int) SceneOption {
	return func(o *sceneOptions) {
		o.freezeRows, o.freezeCols = max(rows, 0), max(columns, 0)
	}
}

// WithSceneZoom sets the initial zoom.
func WithSceneZoom(z float64) SceneOption {
	return func(o *sceneOptions) {
		if z > 0 {
			o.zoom = z
		}
	}
}

// WithScenePixelRatio sets the device pixel ratio of the destination.
func WithScenePixelRatio(r float64) SceneOption {
	return func(o *sceneOptions) {
		if r > 0 {
			o.pixelRatio = r
		}
	}
}

// WithBackgroundColor sets the colour the destination is filled with
// before the panes are composited.
func WithBackgroundColor(c color.Color) SceneOption {
	return func(o *sceneOptions) {
		o.background = c
	}
}

// WithSheetOptions passes options to the Spreadsheet the scene creates.
func WithSheetOptions(opts ...Option) SceneOption {
	return func(o *sceneOptions) {
		o.sheetOptions = append(o.sheetOptions, opts...)
	}
}

// Scene is a host for one sheet: a destination surface split into the
// corner, top, left and main panes, one viewport per pane, and the
// controller that feeds updates in.
//
// Scene is not safe for concurrent use, except for
// Controller().PublishSkeleton.
type Scene struct {
	dst   *canvas.Canvas
	sheet *Spreadsheet
	ctrl  *Controller

	viewports [paneCount]*viewport.Viewport

	width, height float64
	zoom          float64
	freezeRows    int
	freezeCols    int
	background    color.Color
}

// NewScene creates a scene of the given logical size showing sk.
func NewScene(width, height float64, sk skeleton.Skeleton, opts ...SceneOption) (*Scene, error) {
	o := sceneOptions{
		bufferEdge: viewport.DefaultBufferEdge,
		zoom:       1,
		pixelRatio: 1,
		background: color.White,
	}
	for _, opt := range opts {
		opt(&o)
	}

	dst, err := canvas.New(width, height, canvas.WithPixelRatio(o.pixelRatio))
	if err != nil {
		return nil, fmt.Errorf("ggsheet: scene surface: %w", err)
	}
	sheet, err := New(sk, o.sheetOptions...)
	if err != nil {
		return nil, err
	}

	sc := &Scene{
		dst:        dst,
		sheet:      sheet,
		width:      width,
		height:     height,
		zoom:       o.zoom,
		freezeRows: o.freezeRows,
		freezeCols: o.freezeCols,
		background: o.background,
	}
	log := Logger()
	for i := range sc.viewports {
		key := viewport.PaneKey(i)
		sc.viewports[i] = viewport.New(key, skeleton.Bound{},
			viewport.WithBufferEdge(o.bufferEdge, o.bufferEdge),
			viewport.WithZoom(o.zoom),
			viewport.WithPixelRatio(o.pixelRatio),
			viewport.WithScrollAxes(key == PaneMain || key == PaneTop, key == PaneMain || key == PaneLeft),
			viewport.WithLogger(log),
		)
	}
	sc.layout()
	sc.ctrl = NewController(sheet, sc.viewports[:]...)
	return sc, nil
}

// frozenSize returns the content size of the frozen columns and rows.
func (sc *Scene) frozenSize() (w, h float64) {
	sk := sc.sheet.Skeleton()
	if sk == nil {
		return 0, 0
	}
	if n := min(sc.freezeCols, len(sk.ColumnWidthAccumulation())); n > 0 {
		w = sk.ColumnWidthAccumulation()[n-1]
	}
	if n := min(sc.freezeRows, len(sk.RowHeightAccumulation())); n > 0 {
		h = sk.RowHeightAccumulation()[n-1]
	}
	return w, h
}

// layout places the panes on the destination for the current skeleton,
// size and zoom.
func (sc *Scene) layout() {
	var rhw, chh float64
	if sk := sc.sheet.Skeleton(); sk != nil {
		rhw, chh = sk.RowHeaderWidth(), sk.ColumnHeaderHeight()
	}
	fw, fh := sc.frozenSize()
	z := sc.zoom
	x0, y0 := rhw*z, chh*z
	x1, y1 := (rhw+fw)*z, (chh+fh)*z
	W, H := sc.width, sc.height

	place := func(key PaneKey, b skeleton.Bound, ox, oy float64) {
		if b.IsEmpty() {
			b = skeleton.Bound{}
		}
		v := sc.viewports[key]
		v.SetPosition(b)
		v.SetOrigin(ox, oy)
		v.SetZoom(z)
	}
	place(PaneCorner, skeleton.Bound{Left: x0, Top: y0, Right: min(x1, W), Bottom: min(y1, H)}, 0, 0)
	place(PaneTop, skeleton.Bound{Left: x1, Top: y0, Right: W, Bottom: min(y1, H)}, fw, 0)
	place(PaneLeft, skeleton.Bound{Left: x0, Top: y1, Right: min(x1, W), Bottom: H}, 0, fh)
	place(PaneMain, skeleton.Bound{Left: x1, Top: y1, Right: W, Bottom: H}, fw, fh)
	sc.sheet.SetTransform(canvas.Scale(z, z))
}

// paneOrder is the order Frame renders panes in.
var paneOrder = [...]PaneKey{PaneMain, PaneTop, PaneLeft, PaneCorner}

// Frame applies pending updates, renders every non-empty pane and commits
// the viewports. It returns the destination surface.
func (sc *Scene) Frame() *canvas.Canvas {
	if sc.ctrl.Drain() {
		sc.layout()
	}

	dst := sc.dst
	restore := dst.Save()
	defer restore()
	dst.ResetTransform()
	if sc.background != nil {
		dst.Fill(sc.background)
	} else {
		dst.Clear()
	}

	var rhw, chh float64
	if sk := sc.sheet.Skeleton(); sk != nil {
		rhw, chh = sk.RowHeaderWidth(), sk.ColumnHeaderHeight()
	}
	for _, key := range paneOrder {
		v := sc.viewports[key]
		if v.Position().IsEmpty() {
			continue
		}
		dst.SetTransform(v.Transform(rhw, chh))
		sc.sheet.Render(dst, v.Info())
	}
	for _, v := range sc.viewports {
		v.Commit()
	}
	return dst
}

// ScrollTo scrolls the scrolling panes to (x, y) content units past the
// frozen area. The top pane follows x and the left pane follows y.
func (sc *Scene) ScrollTo(x, y float64) {
	for _, v := range sc.viewports {
		v.ScrollTo(x, y)
	}
}

// ScrollBy scrolls the scrolling panes by (dx, dy) content units.
func (sc *Scene) ScrollBy(dx, dy float64) {
	x, y := sc.viewports[PaneMain].Scroll()
	sc.ScrollTo(x+dx, y+dy)
}

// Scroll returns the scroll offset of the main pane.
func (sc *Scene) Scroll() (x, y float64) { return sc.viewports[PaneMain].Scroll() }

// Resize changes the logical size of the destination. Every pane repaints
// fully on the next frame.
func (sc *Scene) Resize(width, height float64) error {
	if err := sc.dst.Resize(width, height); err != nil {
		return err
	}
	sc.width, sc.height = width, height
	sc.layout()
	return nil
}

// SetZoom changes the zoom of every pane.
func (sc *Scene) SetZoom(z float64) {
	if z <= 0 || z == sc.zoom {
		return
	}
	sc.zoom = z
	sc.layout()
}

// Zoom returns the zoom factor.
func (sc *Scene) Zoom() float64 { return sc.zoom }

// Viewport returns the viewport of a pane.
func (sc *Scene) Viewport(key PaneKey) *viewport.Viewport {
	if !key.Cached() {
		return nil
	}
	return sc.viewports[key]
}

// Controller returns the update controller.
func (sc *Scene) Controller() *Controller { return sc.ctrl }

// Sheet returns the rendered component.
func (sc *Scene) Sheet() *Spreadsheet { return sc.sheet }

// Canvas returns the destination surface.
func (sc *Scene) Canvas() *canvas.Canvas { return sc.dst }

// Close releases background resources of the sheet.
func (sc *Scene) Close() { sc.sheet.Close() }
