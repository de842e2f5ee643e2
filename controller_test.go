package ggsheet

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/ggsheet/skeleton"
)

func TestControllerKeepsNewestSkeleton(t *testing.T) {
	sc := newTestScene(t, newTestSheet(t), 170, 60)
	sc.Frame()
	ctrl := sc.Controller()

	first := skeleton.New(make20(5), make20(5))
	second := skeleton.New(make20(8), make20(8), skeleton.WithHeaders(30, 30))
	ctrl.PublishSkeleton(first)
	ctrl.PublishSkeleton(second)

	if !ctrl.Drain() {
		t.Fatal("Drain() = false with a pending skeleton")
	}
	if sc.Sheet().Skeleton() != skeleton.Skeleton(second) {
		t.Error("Drain() applied a superseded skeleton")
	}
	if ctrl.Drain() {
		t.Error("second Drain() = true, want false")
	}
	if !sc.Viewport(PaneMain).Info().IsForceDirty {
		t.Error("skeleton update did not force a repaint")
	}
}

func TestControllerConcurrentPublish(t *testing.T) {
	sc := newTestScene(t, newTestSheet(t), 170, 60)
	ctrl := sc.Controller()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				ctrl.PublishSkeleton(skeleton.New(make20(3), make20(3)))
			}
		}()
	}
	wg.Wait()

	if !ctrl.Drain() {
		t.Fatal("Drain() = false after concurrent publishes")
	}
	if ctrl.Drain() {
		t.Error("more than one skeleton was queued")
	}
}

func TestSceneFrameAppliesSkeleton(t *testing.T) {
	sc := newTestScene(t, newTestSheet(t), 200, 100, WithFreeze(1, 0))
	sc.Frame()

	sc.Controller().PublishSkeleton(skeleton.New(make20(10), make20(10), skeleton.WithHeaders(40, 20)))
	sc.Frame()

	// The new header width moves the panes.
	if got := sc.Viewport(PaneMain).Position().Left; got != 40 {
		t.Errorf("main pane left = %v, want 40", got)
	}
	if n := sc.Sheet().Diagnostics().FullRepaints; n != 4 {
		t.Errorf("FullRepaints = %d, want 4", n)
	}
}

func TestNotifyMutation(t *testing.T) {
	sk := skeleton.New(make20(100), make20(10), skeleton.WithHeaders(20, 20))
	sc := newTestScene(t, sk, 200, 100, WithBufferEdge(20))
	sc.Frame()
	ctrl := sc.Controller()
	main := sc.Viewport(PaneMain)

	// Rows 50.. start at y 1000, far below the cache.
	ctrl.NotifyMutation(Mutation{Kind: MutationSetRangeValues, Ranges: []skeleton.Range{
		{StartRow: 50, EndRow: 51, StartColumn: 0, EndColumn: 0},
	}})
	if main.Info().IsForceDirty {
		t.Error("mutation outside the cache forced a repaint")
	}
	if dirty, _ := sc.Sheet().IsDirty(PaneMain); !dirty {
		t.Error("mutation did not mark the sheet dirty")
	}
	sc.Frame()

	ctrl.NotifyMutation(Mutation{Kind: MutationSetRangeValues, Ranges: []skeleton.Range{
		{StartRow: 1, EndRow: 1, StartColumn: 2, EndColumn: 2},
	}})
	if !main.Info().IsForceDirty {
		t.Error("mutation inside the cache did not force a repaint")
	}
	sc.Frame()

	ctrl.NotifyMutation(Mutation{Kind: MutationOther})
	if !main.Info().IsForceDirty {
		t.Error("MutationOther did not force a repaint")
	}
	if _, force := sc.Sheet().IsDirty(PaneMain); !force {
		t.Error("MutationOther did not force the sheet")
	}
}

func TestSetRawFormulaDisplay(t *testing.T) {
	sc := newTestScene(t, newTestSheet(t), 170, 60)
	sc.Frame()
	ctrl := sc.Controller()

	ctrl.SetRawFormulaDisplay(false)
	if sc.Viewport(PaneMain).Info().IsDirty {
		t.Error("unchanged formula display marked the pane dirty")
	}
	ctrl.SetRawFormulaDisplay(true)
	if !ctrl.RawFormulaDisplay() || !sc.Viewport(PaneMain).Info().IsForceDirty {
		t.Error("SetRawFormulaDisplay(true) did not force a repaint")
	}
}

func TestRangeToBounds(t *testing.T) {
	sk := newTestSheet(t)
	got := RangeToBounds(sk,
		skeleton.Range{StartRow: 1, EndRow: 2, StartColumn: 0, EndColumn: 1},
		skeleton.EmptyRange,
		skeleton.CellRange(0, 1),
	)
	want := []skeleton.Bound{
		{Left: 0, Top: 20, Right: 100, Bottom: 60},
		{Left: 50, Top: 0, Right: 100, Bottom: 20},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RangeToBounds() mismatch (-want +got):\n%s", diff)
	}
}
