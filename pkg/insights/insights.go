// Package insights turns a journal collection into chart ready aggregates.
// Every function here is pure: the same entries always give the same result.
package insights

import (
	"sort"
	"time"

	"tableflip.dev/reflectly/pkg/entry"
	"tableflip.dev/reflectly/pkg/mood"
)

// RecentCount is how many entries the recent reflections show.
const RecentCount = 6

// TrendPoint is one entry plotted on the mood trend line.
type TrendPoint struct {
	ID    entry.ID        `json:"id" yaml:"id"`
	Date  entry.Timestamp `json:"date" yaml:"date"`
	Mood  string          `json:"mood" yaml:"mood"`
	Score int             `json:"moodScore" yaml:"moodScore"`
}

// MoodCount is one slice of the mood breakdown.
type MoodCount struct {
	Mood  string `json:"mood" yaml:"mood"`
	Count int    `json:"count" yaml:"count"`
	Color string `json:"color" yaml:"color"`
}

// Trend maps each entry, in collection order, to its mood score.
func Trend(entries []entry.Entry) []TrendPoint {
	points := make([]TrendPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, TrendPoint{
			ID:    e.ID,
			Date:  e.Date,
			Mood:  e.Mood,
			Score: mood.Score(e.Mood),
		})
	}
	return points
}

// Breakdown counts entries per distinct mood label. Labels are grouped as
// stored, so "happy" and "🙂" are separate slices. The result is ordered by
// descending count, then label.
func Breakdown(entries []entry.Entry) []MoodCount {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Mood]++
	}
	out := make([]MoodCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, MoodCount{Mood: label, Count: n, Color: mood.Color(label)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Mood < out[j].Mood
	})
	return out
}

// Recent returns the last n entries by position, oldest first.
func Recent(entries []entry.Entry, n int) []entry.Entry {
	if n <= 0 {
		return []entry.Entry{}
	}
	start := len(entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]entry.Entry, len(entries)-start)
	copy(out, entries[start:])
	return out
}

// Average is the mean mood score, DefaultScore for no entries.
func Average(entries []entry.Entry) float64 {
	if len(entries) == 0 {
		return float64(mood.DefaultScore)
	}
	total := 0
	for _, e := range entries {
		total += mood.Score(e.Mood)
	}
	return float64(total) / float64(len(entries))
}

// Summary aggregates the entries written within a time window.
type Summary struct {
	Since     time.Time   `json:"since,omitempty" yaml:"since,omitempty"`
	Until     time.Time   `json:"until" yaml:"until"`
	Total     int         `json:"total" yaml:"total"`
	Average   float64     `json:"averageScore" yaml:"averageScore"`
	Dominant  string      `json:"dominantMood,omitempty" yaml:"dominantMood,omitempty"`
	Breakdown []MoodCount `json:"breakdown" yaml:"breakdown"`
}

// Summarize reports on the entries dated within [since, until]. A zero
// since means no lower bound.
func Summarize(entries []entry.Entry, since, until time.Time) Summary {
	if !since.IsZero() && since.After(until) {
		since, until = until, since
	}
	in := Within(entries, since, until)
	s := Summary{
		Since:     since,
		Until:     until,
		Total:     len(in),
		Average:   Average(in),
		Breakdown: Breakdown(in),
	}
	if len(s.Breakdown) > 0 {
		s.Dominant = s.Breakdown[0].Mood
	}
	return s
}

// Within keeps the entries dated in [since, until], in collection order.
func Within(entries []entry.Entry, since, until time.Time) []entry.Entry {
	out := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if !since.IsZero() && e.Date.Before(since) {
			continue
		}
		if e.Date.After(until) {
			continue
		}
		out = append(out, e)
	}
	return out
}
