package extension

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/gogpu/ggsheet/canvas"
	"github.com/gogpu/ggsheet/internal/cache"
	"github.com/gogpu/ggsheet/skeleton"
)

// cellPadding is the gap in content units between text and its cell edge.
const cellPadding = 2

// FontOption configures the Font extension.
type FontOption func(*fontOptions)

type fontOptions struct {
	ttf        []byte
	faceLimit  int
	widthLimit int
}

// WithFontData sets the TrueType or OpenType font used for drawing and
// measuring. The default is Go Regular.
func WithFontData(ttf []byte) FontOption {
	return func(o *fontOptions) {
		o.ttf = ttf
	}
}

// WithCacheLimits sets the soft limits of the face and text width caches.
func WithCacheLimits(faces, widths int) FontOption {
	return func(o *fontOptions) {
		o.faceLimit = faces
		o.widthLimit = widths
	}
}

type widthKey struct {
	text string
	size float64
}

// Font draws cell text. Glyphs are rasterised with golang.org/x/image
// opentype faces; advances used for alignment and overflow come from
// HarfBuzz shaping.
//
// Text is cut to its cell, its merged block, or its overflow span.
// Font also serves as the skeleton text measurer, see Measure.
type Font struct {
	shaper *measurer

	faces   *cache.Cache[float64, font.Face]
	widths  *cache.Cache[widthKey, float64]
	newFace func(px float64) (font.Face, error)
}

// NewFont parses the font and creates the extension.
func NewFont(opts ...FontOption) (*Font, error) {
	o := fontOptions{ttf: goregular.TTF, faceLimit: 16, widthLimit: 4096}
	for _, opt := range opts {
		opt(&o)
	}
	otf, err := opentype.Parse(o.ttf)
	if err != nil {
		return nil, fmt.Errorf("extension: parse font: %w", err)
	}
	m, err := newMeasurer(o.ttf)
	if err != nil {
		return nil, fmt.Errorf("extension: parse font for shaping: %w", err)
	}
	f := &Font{
		shaper: m,
		faces:  cache.New[float64, font.Face](o.faceLimit),
		widths: cache.New[widthKey, float64](o.widthLimit),
	}
	f.newFace = func(px float64) (font.Face, error) {
		return opentype.NewFace(otf, &opentype.FaceOptions{
			Size:    px,
			DPI:     72,
			Hinting: font.HintingNone,
		})
	}
	f.faces.OnEvict(func(_ float64, face font.Face) {
		if face != nil {
			_ = face.Close()
		}
	})
	return f, nil
}

// Key implements Extension.
func (*Font) Key() string { return "font" }

// ZIndex implements Extension.
func (*Font) ZIndex() int { return FontZIndex }

// Measure returns the advance of text in content units. It matches
// skeleton.TextMeasurer.
func (f *Font) Measure(text string, style skeleton.TextStyle) float64 {
	size := fontSize(style)
	return f.widths.GetOrCreate(widthKey{text: text, size: size}, func() float64 {
		return f.shaper.advance(text, size)
	})
}

// CacheStats returns the face and width cache counters.
func (f *Font) CacheStats() (faces, widths cache.Stats) {
	return f.faces.Stats(), f.widths.Stats()
}

func fontSize(style skeleton.TextStyle) float64 {
	if style.FontSize <= 0 {
		return skeleton.DefaultFontSize
	}
	return style.FontSize
}

// face returns a face sized in device pixels, or nil if none can be made.
// Failed sizes are not cached.
func (f *Font) face(px float64) font.Face {
	px = math.Round(px*64) / 64
	if face, ok := f.faces.Get(px); ok {
		return face
	}
	face, err := f.newFace(px)
	if err != nil || face == nil {
		return nil
	}
	f.faces.Set(px, face)
	return face
}

// Draw implements Extension.
func (f *Font) Draw(c *canvas.Canvas, scale float64, sk skeleton.Skeleton, opts DrawOptions) {
	ranges := paintRanges(sk, opts)
	if len(ranges) == 0 || scale <= 0 {
		return
	}
	spans := overflowSpans(sk, ranges, opts.Overflow)
	rowAcc, colAcc := sk.RowHeightAccumulation(), sk.ColumnWidthAccumulation()

	draw := func(cl cell) {
		t, ok := sk.Text(cl.row, cl.column)
		if !ok {
			return
		}
		clip := cl.bound
		if !cl.merged {
			if span, ok := sk.Overflow(cl.row, cl.column); ok {
				clip = skeleton.RangePosition(span, rowAcc, colAcc)
				if opts.Overflow != nil {
					opts.Overflow.Record(skeleton.Overflow{Row: cl.row, Column: cl.column, Span: span})
				}
			}
		}
		f.drawCell(c, scale, t, cl.bound, clip)
	}

	visitCells(sk, ranges, draw)
	// Text spilling in from cells outside the ranges. visitCells dedupes
	// within a call, so anchors already drawn above are skipped here.
	extra := make([]skeleton.Range, 0, len(spans))
	for _, o := range spans {
		extra = append(extra, skeleton.CellRange(o.Row, o.Column))
	}
	visitCells(sk, extra, func(cl cell) {
		for _, r := range ranges {
			if r.Contains(cl.row, cl.column) {
				return
			}
		}
		draw(cl)
	})
}

// overflowSpans returns recorded and skeleton overflow spans that reach
// into ranges.
func overflowSpans(sk skeleton.Skeleton, ranges []skeleton.Range, reg OverflowRegistry) []skeleton.Overflow {
	var out []skeleton.Overflow
	seen := make(map[[2]int]struct{})
	add := func(o skeleton.Overflow, r skeleton.Range) {
		if !o.Span.Intersects(r) {
			return
		}
		key := [2]int{o.Row, o.Column}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, o)
	}
	for _, r := range ranges {
		for row := r.StartRow; row <= r.EndRow; row++ {
			for _, o := range sk.RowOverflows(row) {
				add(o, r)
			}
			if reg == nil {
				continue
			}
			for _, o := range reg.Spans(row) {
				add(o, r)
			}
		}
	}
	return out
}

func (f *Font) drawCell(c *canvas.Canvas, scale float64, t skeleton.CellText, cellBound, clip skeleton.Bound) {
	size := fontSize(t.Style)
	face := f.face(size * scale)
	if face == nil {
		return
	}
	m := face.Metrics()
	ascent := float64(m.Ascent) / 64 / scale
	descent := float64(m.Descent) / 64 / scale
	lineHeight := float64(m.Height) / 64 / scale

	lines := []string{t.Text}
	if t.Style.Wrap {
		lines = f.wrap(t.Text, t.Style, cellBound.Width()-2*cellPadding)
	}
	block := ascent + descent + float64(len(lines)-1)*lineHeight

	var top float64
	switch t.Style.VAlign {
	case skeleton.AlignTop:
		top = cellBound.Top + cellPadding
	case skeleton.AlignMiddle:
		top = cellBound.Top + (cellBound.Height()-block)/2
	default:
		top = cellBound.Bottom - cellPadding - block
	}

	restore := c.Save()
	defer restore()
	c.ClipRect(clip.Left, clip.Top, clip.Width(), clip.Height())

	for i, line := range lines {
		width := f.Measure(line, t.Style)
		var x float64
		switch skeleton.ResolveAlign(line, t.Style.HAlign) {
		case skeleton.AlignRight:
			x = cellBound.Right - cellPadding - width
		case skeleton.AlignCenter:
			x = cellBound.Left + (cellBound.Width()-width)/2
		default:
			x = cellBound.Left + cellPadding
		}
		baseline := top + ascent + float64(i)*lineHeight
		c.DrawText(face, line, x, baseline, t.Style.Color)
	}
}

// wrap breaks text into lines no wider than width, splitting at spaces.
// A word wider than width gets a line of its own.
func (f *Font) wrap(text string, style skeleton.TextStyle, width float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if f.Measure(candidate, style) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}
