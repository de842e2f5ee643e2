package ggsheet

import (
	"log/slog"

	"github.com/gogpu/ggsheet/skeleton"
	"github.com/gogpu/ggsheet/viewport"
)

// MutationKind classifies a sheet mutation.
type MutationKind uint8

// Mutation kinds.
const (
	// MutationSetRangeValues changes cell values or styles in Ranges.
	MutationSetRangeValues MutationKind = iota
	// MutationOther is any other change that affects rendering.
	MutationOther
)

// Mutation describes a change applied to the sheet data.
type Mutation struct {
	Kind   MutationKind
	Ranges []skeleton.Range
}

// Controller feeds skeleton updates and data mutations into a Spreadsheet
// and its viewports.
//
// PublishSkeleton may be called from any goroutine. The newest skeleton
// replaces any that has not been picked up yet; Drain applies it on the
// render goroutine. All other methods belong to the render goroutine.
type Controller struct {
	sheet     *Spreadsheet
	viewports []*viewport.Viewport
	skeletons chan skeleton.Skeleton

	rawFormula bool
	log        *slog.Logger
}

// NewController creates a controller for sheet and the viewports showing
// it.
func NewController(sheet *Spreadsheet, viewports ...*viewport.Viewport) *Controller {
	return &Controller{
		sheet:     sheet,
		viewports: viewports,
		skeletons: make(chan skeleton.Skeleton, 1),
		log:       Logger(),
	}
}

// PublishSkeleton hands a new skeleton to the next Drain.
func (c *Controller) PublishSkeleton(sk skeleton.Skeleton) {
	for {
		select {
		case c.skeletons <- sk:
			return
		default:
		}
		// Drop the stale value and retry.
		select {
		case <-c.skeletons:
		default:
		}
	}
}

// Drain applies a published skeleton, if any, and reports whether it did.
func (c *Controller) Drain() bool {
	select {
	case sk := <-c.skeletons:
		c.sheet.UpdateSkeleton(sk)
		for _, v := range c.viewports {
			v.MakeDirty(true)
		}
		c.log.Debug("skeleton updated")
		return true
	default:
		return false
	}
}

// NotifyMutation marks the sheet dirty after a data change. Value changes
// only force a repaint of viewports whose cache covers a changed range;
// anything else repaints every viewport.
func (c *Controller) NotifyMutation(m Mutation) {
	c.sheet.MakeDirty(true)
	sk := c.sheet.Skeleton()
	if sk == nil {
		return
	}
	if m.Kind != MutationSetRangeValues || len(m.Ranges) == 0 {
		c.sheet.MakeForceDirty(true)
		for _, v := range c.viewports {
			v.MakeDirty(true)
		}
		return
	}

	rows := make([]int, 0, len(m.Ranges))
	for _, r := range m.Ranges {
		for row := r.StartRow; row <= r.EndRow; row++ {
			rows = append(rows, row)
		}
	}
	c.sheet.MarkOverflowStale(rows...)

	bounds := RangeToBounds(sk, m.Ranges...)
	for _, v := range c.viewports {
		cb := v.Info().CacheBounds
		for _, b := range bounds {
			if b.Intersects(cb) {
				v.MakeDirty(true)
				break
			}
		}
	}
}

// SetRawFormulaDisplay switches between formula text and computed values.
// A change repaints everything.
func (c *Controller) SetRawFormulaDisplay(raw bool) {
	if c.rawFormula == raw {
		return
	}
	c.rawFormula = raw
	c.sheet.MakeForceDirty(true)
	for _, v := range c.viewports {
		v.MakeDirty(true)
	}
}

// RawFormulaDisplay reports the current formula display mode.
func (c *Controller) RawFormulaDisplay() bool { return c.rawFormula }

// RangeToBounds converts cell ranges to content-space rectangles.
func RangeToBounds(sk skeleton.Skeleton, ranges ...skeleton.Range) []skeleton.Bound {
	rowAcc, colAcc := sk.RowHeightAccumulation(), sk.ColumnWidthAccumulation()
	out := make([]skeleton.Bound, 0, len(ranges))
	for _, r := range ranges {
		if r.IsEmpty() {
			continue
		}
		out = append(out, skeleton.RangePosition(r, rowAcc, colAcc))
	}
	return out
}
