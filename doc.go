// Package ggsheet renders a spreadsheet grid incrementally.
//
// # Overview
//
// ggsheet draws the cells of a sheet into up to four panes (main, top, left
// and corner, the last three used for frozen rows and columns). Each pane
// keeps an offscreen cache surface a little larger than what is visible.
// When the user scrolls, the cache is shifted by the scroll delta and only
// the newly exposed strips are repainted; the visible part of the cache is
// then copied onto the destination surface.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/ggsheet"
//		"github.com/gogpu/ggsheet/skeleton"
//	)
//
//	sk := skeleton.New(rowHeights, columnWidths, skeleton.WithHeaders(46, 20))
//	sk.SetCell(0, 0, skeleton.CellData{Value: "Hello"})
//
//	sc, err := ggsheet.NewScene(800, 600, sk)
//	if err != nil {
//		return err
//	}
//	defer sc.Close()
//
//	sc.Frame()          // full repaint
//	sc.ScrollBy(0, 20)
//	sc.Frame()          // shift and patch
//	sc.Canvas().SavePNG("sheet.png")
//
// # Architecture
//
// The module is organized into:
//   - skeleton: sheet geometry, merges, styles and text overflow layout
//   - viewport: scroll state and per-frame diff bounds of one pane
//   - canvas: the raster surface with transform, clip and composite state
//   - extension: the ordered drawing layers (background, border, font)
//   - ggsheet: the Spreadsheet component, pane compositors and Scene host
//
// # Coordinate System
//
// Content coordinates start at the top-left corner of cell A1, X to the
// right and Y down, in unzoomed logical pixels. A viewport maps content to
// the destination through its zoom and the device pixel ratio; the header
// bands are outside the content area and are drawn by other components.
//
// # Logging
//
// ggsheet is silent by default. Call SetLogger to receive cache allocation,
// repaint and dirty state records through log/slog.
package ggsheet
