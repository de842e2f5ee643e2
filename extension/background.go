package extension

import (
	"github.com/gogpu/ggsheet/canvas"
	"github.com/gogpu/ggsheet/skeleton"
)

// Background fills cells that have a background colour. A merged block is
// filled once with the colour of its top-left cell.
type Background struct{}

// NewBackground creates the background extension.
func NewBackground() *Background { return &Background{} }

// Key implements Extension.
func (*Background) Key() string { return "background" }

// ZIndex implements Extension.
func (*Background) ZIndex() int { return BackgroundZIndex }

// Draw implements Extension.
func (*Background) Draw(c *canvas.Canvas, _ float64, sk skeleton.Skeleton, opts DrawOptions) {
	visitCells(sk, paintRanges(sk, opts), func(cl cell) {
		col, ok := sk.Background(cl.row, cl.column)
		if !ok {
			return
		}
		b := cl.bound
		c.FillRect(b.Left, b.Top, b.Width(), b.Height(), col)
	})
}
