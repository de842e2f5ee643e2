package extension

import (
	"github.com/gogpu/ggsheet/canvas"
	"github.com/gogpu/ggsheet/skeleton"
)

// Border strokes cell borders. Borders of a merged block come from its
// top-left cell and follow the block outline.
type Border struct{}

// NewBorder creates the border extension.
func NewBorder() *Border { return &Border{} }

// Key implements Extension.
func (*Border) Key() string { return "border" }

// ZIndex implements Extension.
func (*Border) ZIndex() int { return BorderZIndex }

// Draw implements Extension.
func (*Border) Draw(c *canvas.Canvas, scale float64, sk skeleton.Skeleton, opts DrawOptions) {
	ranges := paintRanges(sk, opts)
	if len(ranges) == 0 || scale <= 0 {
		return
	}
	restore := c.Save()
	defer restore()
	fix := canvas.FixOnePixelBlurOffset / scale
	c.Translate(fix, fix)

	visitCells(sk, ranges, func(cl cell) {
		bs, ok := sk.Border(cl.row, cl.column)
		if !ok {
			return
		}
		b := cl.bound
		strokeSide(c, scale, bs.Top, b.Left, b.Top, b.Right, b.Top, true)
		strokeSide(c, scale, bs.Bottom, b.Left, b.Bottom, b.Right, b.Bottom, true)
		strokeSide(c, scale, bs.Left, b.Left, b.Top, b.Left, b.Bottom, false)
		strokeSide(c, scale, bs.Right, b.Right, b.Top, b.Right, b.Bottom, false)
	})
}

func strokeSide(c *canvas.Canvas, scale float64, l *skeleton.BorderLine, x0, y0, x1, y1 float64, horizontal bool) {
	if l == nil || l.Style == skeleton.BorderNone || l.Color == nil {
		return
	}
	st := canvas.LineStyle{Color: l.Color, Width: 1}
	switch l.Style {
	case skeleton.BorderMedium:
		st.Width = 2
	case skeleton.BorderThick:
		st.Width = 3
	case skeleton.BorderDashed:
		st.Dash = []int{4, 2}
	case skeleton.BorderDotted:
		st.Dash = []int{1, 1}
	case skeleton.BorderDouble:
		// Two hairlines one device pixel either side of the edge.
		d := 1 / scale
		if horizontal {
			c.StrokeLine(x0, y0-d, x1, y1-d, st)
			c.StrokeLine(x0, y0+d, x1, y1+d, st)
		} else {
			c.StrokeLine(x0-d, y0, x1-d, y1, st)
			c.StrokeLine(x0+d, y0, x1+d, y1, st)
		}
		return
	}
	c.StrokeLine(x0, y0, x1, y1, st)
}
