package printers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/reflectly/pkg/insights"
	"tableflip.dev/reflectly/pkg/mood"
)

const maxScore = 5

var (
	lowColor, _  = colorful.Hex(mood.Color("angry"))
	highColor, _ = colorful.Hex(mood.Color("happy"))
)

// ScoreColor blends from the angry to the happy mood color by score.
func ScoreColor(score int) string {
	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}
	return lowColor.BlendLab(highColor, float64(score)/maxScore).Clamped().Hex()
}

func (pp *PrettyPrint) swatch(score int, s string) string {
	if pp.NoColor {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ScoreColor(score))).Render(s)
}

// Trend prints one bar per entry, as long as its mood score.
func (pp *PrettyPrint) Trend(points []insights.TrendPoint) {
	pp.Title("Mood trend")
	if len(points) == 0 {
		_, _ = pp.style(color.Faint, color.Italic).Fprint(pp.Out, " none\n\n")
		return
	}
	d := pp.style(color.Faint)
	for _, p := range points {
		bar := strings.Repeat("█", p.Score+1) + strings.Repeat(" ", maxScore-p.Score)
		_, _ = fmt.Fprintf(pp.Out, "%s  %s %d  %s\n",
			d.Sprint(p.Date.Local().Format("Jan 02 15:04")),
			pp.swatch(p.Score, bar), p.Score, moodSymbol(p.Mood))
	}
	pp.NewLine()
}

// Breakdown prints how often each mood label occurs.
func (pp *PrettyPrint) Breakdown(counts []insights.MoodCount) {
	pp.Title("Mood breakdown")
	if len(counts) == 0 {
		_, _ = pp.style(color.Faint, color.Italic).Fprint(pp.Out, " none\n\n")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, c := range counts {
		tbl.AddRow(moodSymbol(c.Mood), c.Mood, c.Count, pp.swatch(mood.Score(c.Mood), strings.Repeat("■", c.Count)))
	}
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(pp.Out, tbl)
	pp.NewLine()
}

// Dashboard prints the trend, breakdown and recent reflections.
func (pp *PrettyPrint) Dashboard(d insights.Dashboard) {
	pp.Trend(d.Trend)
	pp.Breakdown(d.Breakdown)
	pp.TitleWithCount("Recent reflections", len(d.Recent))
	pp.Entries(d.Recent...)
	_, _ = pp.style(color.Faint).Fprintf(pp.Out, "Average score %.1f\n", d.Average)
}

// Summary prints the totals of a windowed summary.
func (pp *PrettyPrint) Summary(label string, s insights.Summary) {
	if label == "all" {
		pp.Title("All time")
	} else {
		pp.Title("Last " + label)
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Entries", s.Total)
	tbl.AddRow("Average", pp.swatch(int(s.Average+0.5), fmt.Sprintf("%.1f", s.Average)))
	if s.Dominant != "" {
		tbl.AddRow("Mostly", moodSymbol(s.Dominant)+" "+s.Dominant)
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
	pp.NewLine()
	pp.Breakdown(s.Breakdown)
}
