package views

import (
	"sync"
	"time"

	"tableflip.dev/reflectly/pkg/insights"
	"tableflip.dev/reflectly/pkg/journal"
	"tableflip.dev/reflectly/pkg/timeutil"
)

// Insights keeps the dashboard in step with the journal.
type Insights struct {
	cancel func()
	memo   insights.Memo

	mu     sync.Mutex
	latest journal.Snapshot
}

// NewInsights returns an insights view over s. Call Stop when done with it.
func NewInsights(s *journal.Store) *Insights {
	v := &Insights{}
	v.cancel = s.Subscribe(v.apply)
	v.apply(s.Snapshot())
	return v
}

func (v *Insights) Stop() {
	v.cancel()
}

func (v *Insights) apply(snap journal.Snapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if snap.Version < v.latest.Version {
		return
	}
	v.latest = snap
}

func (v *Insights) snapshot() journal.Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.latest
}

// Dashboard returns the trend, breakdown and recent entries of the latest
// snapshot. It is recomputed only after the journal changes.
func (v *Insights) Dashboard() insights.Dashboard {
	return v.memo.Get(v.snapshot())
}

// Summary reports on the entries inside window, counted back from now.
func (v *Insights) Summary(window timeutil.Window, now time.Time) insights.Summary {
	since, until := window.Bounds(now)
	return insights.Summarize(v.snapshot().Entries, since, until)
}
