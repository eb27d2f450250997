// Package timeutil parses the look-back windows accepted by insights, such
// as "3d", "1w2d" or "all".
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWindow is used when no window is given.
	DefaultWindow = "all"

	day  = 24 * time.Hour
	week = 7 * day
)

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units          = map[string]time.Duration{
		"h":      time.Hour,
		"hr":     time.Hour,
		"hrs":    time.Hour,
		"hour":   time.Hour,
		"hours":  time.Hour,
		"d":      day,
		"day":    day,
		"days":   day,
		"w":      week,
		"wk":     week,
		"wks":    week,
		"week":   week,
		"weeks":  week,
		"mo":     30 * day,
		"month":  30 * day,
		"months": 30 * day,
		"y":      365 * day,
		"year":   365 * day,
		"years":  365 * day,
	}
)

// Window is a span of time ending now. The zero Duration with All set
// covers every entry.
type Window struct {
	Duration time.Duration
	All      bool
}

// Label renders the window compactly, for example "1w2d" or "all".
func (w Window) Label() string {
	if w.All {
		return "all"
	}
	return FormatWindow(w.Duration)
}

// Bounds returns the [since, until] range of the window ending at now. For
// All, since is the zero time.
func (w Window) Bounds(now time.Time) (since, until time.Time) {
	if w.All {
		return time.Time{}, now
	}
	return now.Add(-w.Duration), now
}

// ParseWindow parses "all" or a run of number+unit segments ("1w", "3d",
// "1w2d6h"). Empty input selects DefaultWindow.
func ParseWindow(input string) (Window, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		s = DefaultWindow
	}
	if s == "all" {
		return Window{All: true}, nil
	}

	total := time.Duration(0)
	for rest := s; len(rest) > 0; {
		m := segmentPattern.FindStringSubmatch(rest)
		if len(m) != 3 {
			return Window{}, fmt.Errorf("invalid window segment %q", strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return Window{}, fmt.Errorf("invalid window value %q: %w", m[1], err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return Window{}, fmt.Errorf("unsupported window unit %q", m[2])
		}
		total += time.Duration(n) * unit
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return Window{}, fmt.Errorf("window must be greater than zero")
	}
	return Window{Duration: total}, nil
}

// FormatWindow renders a duration with week/day/hour tokens. Minutes and
// below are dropped.
func FormatWindow(d time.Duration) string {
	if d < time.Hour {
		return "0h"
	}
	var b strings.Builder
	for _, u := range []struct {
		label string
		value time.Duration
	}{{"w", week}, {"d", day}, {"h", time.Hour}} {
		if d < u.value {
			continue
		}
		n := d / u.value
		d -= n * u.value
		fmt.Fprintf(&b, "%d%s", n, u.label)
	}
	return b.String()
}
