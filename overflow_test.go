package ggsheet

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/ggsheet/skeleton"
)

func span(row, col, from, to int) skeleton.Overflow {
	return skeleton.Overflow{Row: row, Column: col, Span: skeleton.Range{
		StartRow: row, EndRow: row, StartColumn: from, EndColumn: to,
	}}
}

func TestOverflowMemoRecord(t *testing.T) {
	m := newOverflowMemo(time.Hour)
	defer m.stop()

	m.Record(span(1, 0, 0, 2))
	m.Record(span(1, 3, 3, 4))
	m.Record(span(1, 0, 0, 1)) // replaces the first span

	want := []skeleton.Overflow{span(1, 0, 0, 1), span(1, 3, 3, 4)}
	if diff := cmp.Diff(want, m.Spans(1)); diff != "" {
		t.Errorf("Spans(1) mismatch (-want +got):\n%s", diff)
	}
	if m.Spans(2) != nil {
		t.Errorf("Spans(2) = %v, want nil", m.Spans(2))
	}
}

func TestOverflowMemoDebounce(t *testing.T) {
	m := newOverflowMemo(5 * time.Millisecond)
	defer m.stop()

	m.Record(span(1, 0, 0, 2))
	m.Record(span(2, 0, 0, 2))
	m.MarkStale(1)
	if m.Len() != 1 {
		t.Fatalf("Len() after MarkStale = %d, want 1", m.Len())
	}
	// Re-arming keeps a single pending reset.
	m.MarkStale(7)

	deadline := time.Now().Add(2 * time.Second)
	for !m.drain() {
		if time.Now().After(deadline) {
			t.Fatal("debounced reset never fired")
		}
		time.Sleep(time.Millisecond)
	}
	if m.Len() != 0 {
		t.Errorf("Len() after reset = %d, want 0", m.Len())
	}
	if m.drain() {
		t.Error("drain() = true twice for one timer")
	}
}

func TestOverflowMemoStop(t *testing.T) {
	m := newOverflowMemo(time.Millisecond)
	m.Record(span(3, 0, 0, 1))
	m.MarkStale()
	m.stop()

	time.Sleep(10 * time.Millisecond)
	if m.drain() {
		t.Error("stopped timer still reset the memo")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

// TestOverflowRecordedDuringRender tests that text spilling out of its cell
// is remembered for later patches.
func TestOverflowRecordedDuringRender(t *testing.T) {
	sk := skeleton.New(make20(5), []float64{30, 100, 100}, skeleton.WithHeaders(20, 20))
	sk.SetCell(0, 0, skeleton.CellData{Value: "a rather long line of text"})
	sc := newTestScene(t, sk, 260, 120)
	sc.Frame()

	memo := sc.Sheet().overflow
	if memo.Len() == 0 {
		t.Fatal("no overflow recorded")
	}
	spans := memo.Spans(0)
	if len(spans) != 1 || spans[0].Column != 0 || spans[0].Span.EndColumn == 0 {
		t.Errorf("Spans(0) = %+v, want one span from column 0", spans)
	}

	sc.Sheet().MarkOverflowStale(0)
	if memo.Len() != 0 {
		t.Errorf("MarkOverflowStale(0) left %d rows", memo.Len())
	}
}
