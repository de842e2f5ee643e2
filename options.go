package ggsheet

import (
	"image/color"
	"time"

	"github.com/gogpu/ggsheet/extension"
)

// Option configures a Spreadsheet during creation.
//
// Example:
//
//	// Default pipeline with caching
//	sheet, err := ggsheet.New(sk)
//
//	// Custom extensions, no cache surfaces
//	sheet, err := ggsheet.New(sk,
//		ggsheet.WithCache(false),
//		ggsheet.WithExtensions(extension.NewBackground(), myLayer),
//	)
type Option func(*options)

type options struct {
	cache            bool
	pipeline         *extension.Pipeline
	gridlineColor    color.Color
	overflowDebounce time.Duration
}

// DefaultGridlineColor is the colour of auxiliary gridlines.
var DefaultGridlineColor = color.RGBA{R: 212, G: 212, B: 212, A: 255}

// DefaultOverflowDebounce is the quiet period after the last overflow
// invalidation before the runtime overflow memo is reset.
const DefaultOverflowDebounce = 100 * time.Millisecond

func defaultOptions() options {
	return options{
		cache:            true,
		gridlineColor:    DefaultGridlineColor,
		overflowDebounce: DefaultOverflowDebounce,
	}
}

// WithCache enables or disables per-pane cache surfaces. Without a cache
// every frame draws the pipeline directly onto the destination.
func WithCache(enabled bool) Option {
	return func(o *options) {
		o.cache = enabled
	}
}

// WithExtensions replaces the default pipeline with the given extensions,
// ordered by ZIndex.
func WithExtensions(exts ...extension.Extension) Option {
	return func(o *options) {
		o.pipeline = extension.NewPipeline(exts...)
	}
}

// WithPipeline uses a prebuilt pipeline.
func WithPipeline(p *extension.Pipeline) Option {
	return func(o *options) {
		o.pipeline = p
	}
}

// WithGridlineColor sets the colour of auxiliary gridlines.
func WithGridlineColor(c color.Color) Option {
	return func(o *options) {
		if c != nil {
			o.gridlineColor = c
		}
	}
}

// WithOverflowDebounce sets the quiet period of the runtime overflow memo.
func WithOverflowDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.overflowDebounce = d
		}
	}
}
