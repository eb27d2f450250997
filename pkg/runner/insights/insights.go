// Package insights prints the mood dashboard and a windowed summary.
package insights

import (
	"context"
	"io"
	"time"

	"tableflip.dev/reflectly/pkg/insights"
	"tableflip.dev/reflectly/pkg/journal"
	"tableflip.dev/reflectly/pkg/printers"
	"tableflip.dev/reflectly/pkg/timeutil"
	"tableflip.dev/reflectly/pkg/views"
)

// Report is the structured form of the insights output.
type Report struct {
	Window    string             `json:"window" yaml:"window"`
	Dashboard insights.Dashboard `json:"dashboard" yaml:"dashboard"`
	Summary   insights.Summary   `json:"summary" yaml:"summary"`
}

type Insights struct {
	Journal *journal.Store
	Window  timeutil.Window
	Output  string
	Now     func() time.Time
	Out     io.Writer
}

func (n *Insights) Do(_ context.Context) error {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	v := views.NewInsights(n.Journal)
	defer v.Stop()

	r := Report{
		Window:    n.Window.Label(),
		Dashboard: v.Dashboard(),
		Summary:   v.Summary(n.Window, now()),
	}

	switch n.Output {
	case "", printers.FormatText:
		pp := printers.New(n.Out)
		pp.Dashboard(r.Dashboard)
		pp.NewLine()
		pp.Summary(r.Window, r.Summary)
		return nil
	default:
		return printers.Structured(n.Out, n.Output, r)
	}
}
