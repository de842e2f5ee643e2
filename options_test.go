package ggsheet

import (
	"image/color"
	"testing"
	"time"

	"github.com/gogpu/ggsheet/extension"
)

// TestNewDefaults tests that New builds the default pipeline.
func TestNewDefaults(t *testing.T) {
	sheet, err := New(newTestSheet(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sheet.Close()

	if !sheet.cacheEnabled {
		t.Error("cache disabled by default")
	}
	if sheet.Background() == nil || sheet.Border() == nil || sheet.Font() == nil {
		t.Error("default pipeline is missing a built-in extension")
	}
	if sheet.gridlineColor != DefaultGridlineColor {
		t.Errorf("gridline colour = %v, want %v", sheet.gridlineColor, DefaultGridlineColor)
	}
	if sheet.overflow.debounce != DefaultOverflowDebounce {
		t.Errorf("debounce = %v, want %v", sheet.overflow.debounce, DefaultOverflowDebounce)
	}
}

// TestNewWithExtensions tests dependency injection of a custom pipeline.
func TestNewWithExtensions(t *testing.T) {
	var n int
	sheet, err := New(newTestSheet(t), WithExtensions(counter{&n}, extension.NewBackground()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sheet.Close()

	if sheet.Font() != nil {
		t.Error("Font() non-nil for a pipeline without font")
	}
	if sheet.Background() == nil {
		t.Error("Background() = nil")
	}
	if sheet.Pipeline().Len() != 2 {
		t.Errorf("pipeline length = %d, want 2", sheet.Pipeline().Len())
	}

	p := extension.NewPipeline(extension.NewBorder())
	sheet2, err := New(nil, WithPipeline(p))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sheet2.Close()
	if sheet2.Pipeline() != p {
		t.Error("WithPipeline() pipeline not used")
	}
}

func TestOptionValues(t *testing.T) {
	tint := color.RGBA{1, 2, 3, 255}
	sheet, err := New(nil,
		WithCache(false),
		WithGridlineColor(tint),
		WithGridlineColor(nil),
		WithOverflowDebounce(time.Second),
		WithOverflowDebounce(-1),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sheet.Close()

	if sheet.cacheEnabled {
		t.Error("WithCache(false) ignored")
	}
	if sheet.gridlineColor != tint {
		t.Errorf("gridline colour = %v, want %v", sheet.gridlineColor, tint)
	}
	if sheet.overflow.debounce != time.Second {
		t.Errorf("debounce = %v, want 1s", sheet.overflow.debounce)
	}
}

func TestSceneOptions(t *testing.T) {
	sc := newTestScene(t, newTestSheet(t), 100, 50,
		WithScenePixelRatio(2),
		WithSceneZoom(1.5),
		WithSceneZoom(-1),
		WithBufferEdge(-5),
		WithBackgroundColor(nil),
	)
	if sc.Canvas().DeviceWidth() != 200 || sc.Canvas().DeviceHeight() != 100 {
		t.Errorf("device size = %dx%d, want 200x100", sc.Canvas().DeviceWidth(), sc.Canvas().DeviceHeight())
	}
	if sc.Zoom() != 1.5 {
		t.Errorf("Zoom() = %v, want 1.5", sc.Zoom())
	}
	info := sc.Viewport(PaneMain).Info()
	if info.BufferEdgeX != 100 || info.PixelRatio != 2 || info.Zoom != 1.5 {
		t.Errorf("viewport info = %+v", info)
	}
	if sc.Viewport(PaneCustom) != nil {
		t.Error("Viewport(PaneCustom) non-nil")
	}

	// A nil background leaves the header bands transparent.
	img := sc.Frame().Image()
	if got := img.RGBAAt(5, 5); got.A != 0 {
		t.Errorf("header pixel = %v, want transparent", got)
	}
}
