package ggsheet

import (
	"sync"
	"time"

	"github.com/gogpu/ggsheet/skeleton"
)

// overflowMemo remembers the overflow spans text was painted across, so
// that later partial repaints include cells whose text reaches into them.
//
// Invalidation is debounced: each MarkStale drops the touched rows at once
// and re-arms a single timer; when the timer fires the whole memo is reset
// on the next render. The timer goroutine only signals through a one slot
// channel, all other state is owned by the render goroutine.
type overflowMemo struct {
	rows     map[int][]skeleton.Overflow
	debounce time.Duration

	mu    sync.Mutex // guards timer
	timer *time.Timer
	fired chan struct{}
}

func newOverflowMemo(debounce time.Duration) *overflowMemo {
	return &overflowMemo{
		rows:     make(map[int][]skeleton.Overflow),
		debounce: debounce,
		fired:    make(chan struct{}, 1),
	}
}

// Record implements extension.OverflowRegistry.
func (m *overflowMemo) Record(o skeleton.Overflow) {
	spans := m.rows[o.Row]
	for i, s := range spans {
		if s.Column == o.Column {
			spans[i] = o
			return
		}
	}
	m.rows[o.Row] = append(spans, o)
}

// Spans implements extension.OverflowRegistry.
func (m *overflowMemo) Spans(row int) []skeleton.Overflow {
	return m.rows[row]
}

// Len returns the number of rows with recorded spans.
func (m *overflowMemo) Len() int { return len(m.rows) }

// MarkStale drops the given rows and schedules a full reset.
func (m *overflowMemo) MarkStale(rows ...int) {
	for _, r := range rows {
		delete(m.rows, r)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.debounce, func() {
		select {
		case m.fired <- struct{}{}:
		default:
		}
	})
}

// drain resets the memo if the debounce timer has fired. It reports
// whether a reset happened.
func (m *overflowMemo) drain() bool {
	select {
	case <-m.fired:
		m.reset()
		return true
	default:
		return false
	}
}

func (m *overflowMemo) reset() {
	clear(m.rows)
}

// stop cancels a pending timer.
func (m *overflowMemo) stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
