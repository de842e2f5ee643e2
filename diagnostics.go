package ggsheet

import "github.com/gogpu/ggsheet/skeleton"

// Diagnostics counts what the renderer did since creation or the last
// ResetDiagnostics.
type Diagnostics struct {
	// FullRepaints counts cache surfaces redrawn from scratch.
	FullRepaints int
	// IncrementalPatches counts shift-and-patch updates.
	IncrementalPatches int
	// PatchedRects counts exposed rectangles redrawn by patches.
	PatchedRects int
	// Blits counts cache-to-destination copies.
	Blits int
	// DirectDraws counts uncached pane draws.
	DirectDraws int
	// GridlinePasses counts auxiliary gridline draws.
	GridlinePasses int
	// CacheResizes counts cache surface allocations and reallocations.
	CacheResizes int
	// SkippedFrames counts renders skipped for a missing surface.
	SkippedFrames int
	// EmptySegments counts renders with no visible cells.
	EmptySegments int

	// LastSegment is the visible range of the last rendered pane.
	LastSegment skeleton.Range
}

// Diagnostics returns a snapshot of the render counters.
func (s *Spreadsheet) Diagnostics() Diagnostics { return s.diag }

// ResetDiagnostics zeroes the render counters.
func (s *Spreadsheet) ResetDiagnostics() { s.diag = Diagnostics{LastSegment: skeleton.EmptyRange} }
