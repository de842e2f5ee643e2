// Package extension holds the draw extensions a sheet pane runs over its
// visible cells, and the ordered Pipeline that invokes them.
//
// Each extension paints one layer. Layers are drawn in ascending ZIndex so
// backgrounds lie under borders and borders under text.
package extension

import (
	"cmp"
	"slices"

	"github.com/gogpu/ggsheet/canvas"
	"github.com/gogpu/ggsheet/skeleton"
)

// Z indexes of the built-in extensions.
const (
	BackgroundZIndex = 21
	BorderZIndex     = 30
	FontZIndex       = 45
)

// OverflowRegistry tracks text overflow spans painted during recent frames,
// so that a partial redraw can include cells whose text reaches into it.
type OverflowRegistry interface {
	Record(o skeleton.Overflow)
	Spans(row int) []skeleton.Overflow
}

// DrawOptions limits which cells an extension paints.
type DrawOptions struct {
	// ViewRanges are the visible ranges of the pane.
	ViewRanges []skeleton.Range

	// DiffRanges, when non-nil, are the only ranges that need repainting.
	// Extensions grow them by one cell so strokes on shared edges are
	// repainted too.
	DiffRanges []skeleton.Range

	// CheckOutOfViewBound restricts DiffRanges to ViewRanges.
	CheckOutOfViewBound bool

	// Overflow is optional.
	Overflow OverflowRegistry
}

// Extension draws one layer of the grid. Drawing happens in content space:
// the canvas transform already maps content units to device pixels, and
// scale is the number of device pixels per content unit.
type Extension interface {
	Key() string
	ZIndex() int
	Draw(c *canvas.Canvas, scale float64, sk skeleton.Skeleton, opts DrawOptions)
}

// Pipeline is an ordered set of extensions fixed at construction.
type Pipeline struct {
	exts []Extension

	background *Background
	border     *Border
	font       *Font
}

// NewPipeline orders the extensions by ZIndex. Extensions with equal
// ZIndex keep their argument order. Nil entries are dropped.
func NewPipeline(exts ...Extension) *Pipeline {
	p := &Pipeline{exts: make([]Extension, 0, len(exts))}
	for _, e := range exts {
		if e == nil {
			continue
		}
		p.exts = append(p.exts, e)
		switch v := e.(type) {
		case *Background:
			p.background = v
		case *Border:
			p.border = v
		case *Font:
			p.font = v
		}
	}
	slices.SortStableFunc(p.exts, func(a, b Extension) int {
		return cmp.Compare(a.ZIndex(), b.ZIndex())
	})
	return p
}

// DefaultPipeline returns a pipeline with the Background, Border and Font
// extensions.
func DefaultPipeline() (*Pipeline, error) {
	f, err := NewFont()
	if err != nil {
		return nil, err
	}
	return NewPipeline(NewBackground(), NewBorder(), f), nil
}

// Draw runs every extension in order.
func (p *Pipeline) Draw(c *canvas.Canvas, scale float64, sk skeleton.Skeleton, opts DrawOptions) {
	if p == nil || c == nil || sk == nil {
		return
	}
	for _, e := range p.exts {
		e.Draw(c, scale, sk, opts)
	}
}

// Extensions returns the extensions in draw order.
func (p *Pipeline) Extensions() []Extension {
	return slices.Clone(p.exts)
}

// Len returns the number of extensions.
func (p *Pipeline) Len() int { return len(p.exts) }

// Background returns the registered Background extension, or nil.
func (p *Pipeline) Background() *Background { return p.background }

// Border returns the registered Border extension, or nil.
func (p *Pipeline) Border() *Border { return p.border }

// Font returns the registered Font extension, or nil.
func (p *Pipeline) Font() *Font { return p.font }
