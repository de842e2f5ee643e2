// Command ggsheet-demo renders a generated sheet while scrolling through it
// and writes every frame as a PNG.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/ggsheet"
	"github.com/gogpu/ggsheet/present"
	"github.com/gogpu/ggsheet/skeleton"
)

func main() {
	var (
		width   = flag.Float64("width", 800, "image width")
		height  = flag.Float64("height", 600, "image height")
		rows    = flag.Int("rows", 500, "row count")
		cols    = flag.Int("cols", 40, "column count")
		frames  = flag.Int("frames", 8, "frames to render")
		step    = flag.Float64("step", 24, "vertical scroll per frame")
		freeze  = flag.Int("freeze", 1, "frozen rows and columns")
		zoom    = flag.Float64("zoom", 1, "zoom factor")
		ratio   = flag.Float64("ratio", 1, "device pixel ratio")
		output  = flag.String("output", "frame", "output file prefix")
		verbose = flag.Bool("v", false, "log repaint decisions")
		show    = flag.Bool("present", false, "also push every frame through a headless texture presenter")
	)
	flag.Parse()

	if *verbose {
		ggsheet.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	sk := buildSheet(*rows, *cols)
	sc, err := ggsheet.NewScene(*width, *height, sk,
		ggsheet.WithFreeze(*freeze, *freeze),
		ggsheet.WithSceneZoom(*zoom),
		ggsheet.WithScenePixelRatio(*ratio),
	)
	if err != nil {
		log.Fatalf("Failed to create scene: %v", err)
	}
	defer sc.Close()

	var (
		presenter *present.Presenter
		drawer    *present.MemoryDrawer
	)
	if *show {
		presenter, err = present.New(present.NullProvider{})
		if err != nil {
			log.Fatalf("Failed to create presenter: %v", err)
		}
		defer presenter.Close()
		drawer = &present.MemoryDrawer{}
	}

	for i := range *frames {
		if i > 0 {
			sc.ScrollBy(0, *step)
		}
		if i == *frames/2 {
			// Edit a visible cell halfway through.
			_, y := sc.Scroll()
			row := int(y/20) + 3
			sk.SetCell(row, 2, skeleton.CellData{Value: "edited", Background: color.RGBA{255, 236, 179, 255}})
			sc.Controller().NotifyMutation(ggsheet.Mutation{
				Kind:   ggsheet.MutationSetRangeValues,
				Ranges: []skeleton.Range{skeleton.CellRange(row, 2)},
			})
		}
		frame := sc.Frame()
		name := fmt.Sprintf("%s-%03d.png", *output, i)
		if err := frame.SavePNG(name); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		if presenter != nil {
			if err := presenter.Upload(frame); err != nil {
				log.Fatalf("Failed to upload: %v", err)
			}
			if err := presenter.PresentTo(drawer, 0, 0); err != nil {
				log.Fatalf("Failed to present: %v", err)
			}
		}
	}

	d := sc.Sheet().Diagnostics()
	log.Printf("Rendered %d frames (%vx%v): %d full repaints, %d patches, %d blits\n",
		*frames, *width, *height, d.FullRepaints, d.IncrementalPatches, d.Blits)
	if presenter != nil {
		w, h := presenter.Size()
		log.Printf("Presented %d frames: %d texture writes, %d textures, %dx%d device pixels\n",
			drawer.Draws(), presenter.Uploads(), drawer.Textures(), w, h)
	}
}

func buildSheet(rows, cols int) *skeleton.Sheet {
	heights := make([]float64, rows)
	for i := range heights {
		heights[i] = 20
	}
	widths := make([]float64, cols)
	for i := range widths {
		widths[i] = 72
		if i%5 == 0 {
			widths[i] = 110
		}
	}
	sk := skeleton.New(heights, widths, skeleton.WithHeaders(46, 20))

	thin := &skeleton.BorderLine{Style: skeleton.BorderThin, Color: color.RGBA{90, 90, 90, 255}}
	band := color.RGBA{232, 240, 254, 255}
	for r := range rows {
		for c := range cols {
			d := skeleton.CellData{}
			switch {
			case r == 0:
				d.Value = fmt.Sprintf("Column %d", c+1)
				d.Style = skeleton.TextStyle{HAlign: skeleton.AlignCenter}
				d.Border = skeleton.Borders{Bottom: thin}
			case c == 0:
				d.Value = fmt.Sprintf("Item %d", r)
			case (r+c)%7 == 0:
				d.Value = fmt.Sprintf("%d", r*c)
				d.Style = skeleton.TextStyle{HAlign: skeleton.AlignRight}
			}
			if r%2 == 1 {
				d.Background = band
			}
			if d != (skeleton.CellData{}) {
				sk.SetCell(r, c, d)
			}
		}
	}
	// A note spilling over its empty neighbours.
	sk.SetCell(4, 3, skeleton.CellData{Value: "this note is wider than its cell", Background: band})
	sk.ClearCell(4, 4)
	sk.ClearCell(4, 5)
	sk.Merge(skeleton.Range{StartRow: 10, EndRow: 12, StartColumn: 2, EndColumn: 4})
	sk.SetCell(10, 2, skeleton.CellData{
		Value:      "merged",
		Style:      skeleton.TextStyle{HAlign: skeleton.AlignCenter, VAlign: skeleton.AlignMiddle},
		Background: color.RGBA{200, 230, 201, 255},
	})
	return sk
}
