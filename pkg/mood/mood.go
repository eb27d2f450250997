// Package mood defines the closed set of moods a journal entry can carry,
// along with the score and color used to chart them.
package mood

import (
	"sort"
	"strings"
)

const (
	// Neutral is the mood assigned when none was selected.
	Neutral = "neutral"

	// DefaultScore is the score of Neutral and of every label that does not
	// resolve to a known mood.
	DefaultScore = 3

	// DefaultColor is used for labels that do not resolve to a known mood.
	DefaultColor = "#CCCCCC"
)

// Mood describes one known emotional state.
type Mood struct {
	Key     string   `json:"key"`
	Emoji   string   `json:"emoji"`
	Label   string   `json:"label"`
	Score   int      `json:"score"`
	Color   string   `json:"color"`
	Aliases []string `json:"aliases,omitempty"`
}

func (m Mood) String() string {
	return m.Emoji + " " + m.Key
}

// Defaults returns the known moods, happiest first.
func Defaults() []Mood {
	return []Mood{{
		Key:     "happy",
		Emoji:   "🙂",
		Label:   "Good",
		Score:   5,
		Color:   "#FFD700",
		Aliases: []string{"😄", "great", "good"},
	}, {
		Key:     "calm",
		Emoji:   "😌",
		Label:   "Calm",
		Score:   4,
		Color:   "#98FB98",
		Aliases: []string{"peaceful", "relaxed"},
	}, {
		Key:     Neutral,
		Emoji:   "😐",
		Label:   "Neutral",
		Score:   DefaultScore,
		Color:   "#A9A9A9",
		Aliases: []string{"ok", "meh"},
	}, {
		Key:     "anxious",
		Emoji:   "😟",
		Label:   "Anxious",
		Score:   2,
		Color:   "#9370DB",
		Aliases: []string{"worried", "nervous"},
	}, {
		Key:     "sad",
		Emoji:   "🙁",
		Label:   "Low",
		Score:   1,
		Color:   "#4682B4",
		Aliases: []string{"😢", "very-sad", "low"},
	}, {
		Key:     "angry",
		Emoji:   "😠",
		Label:   "Angry",
		Score:   0,
		Color:   "#FF4500",
		Aliases: []string{"mad", "frustrated"},
	}}
}

var index = buildIndex()

func buildIndex() map[string]Mood {
	idx := make(map[string]Mood)
	for _, m := range Defaults() {
		idx[m.Key] = m
		idx[m.Emoji] = m
		for _, a := range m.Aliases {
			idx[a] = m
		}
	}
	return idx
}

// Lookup resolves a label, emoji or alias to a known mood. Matching ignores
// case and surrounding whitespace.
func Lookup(label string) (Mood, bool) {
	m, ok := index[strings.ToLower(strings.TrimSpace(label))]
	return m, ok
}

// Score maps a label to its valence score. Unknown labels score as Neutral.
func Score(label string) int {
	if m, ok := Lookup(label); ok {
		return m.Score
	}
	return DefaultScore
}

// Color maps a label to its chart color, DefaultColor when unknown.
func Color(label string) string {
	if m, ok := Lookup(label); ok {
		return m.Color
	}
	return DefaultColor
}

// Normalize trims the label and substitutes Neutral for an empty one. Known
// and unknown labels are otherwise kept as given.
func Normalize(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return Neutral
	}
	return label
}

// Keys returns the canonical keys of the known moods, sorted.
func Keys() []string {
	moods := Defaults()
	keys := make([]string, 0, len(moods))
	for _, m := range moods {
		keys = append(keys, m.Key)
	}
	sort.Strings(keys)
	return keys
}
