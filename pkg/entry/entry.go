// Package entry defines the journal entry record and its JSON list codec.
package entry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/reflectly/pkg/mood"
)

// ID identifies an entry. It is derived from the creation time in
// milliseconds, so ids order the same way entries were created.
type ID int64

// ParseID parses the decimal form printed by ID.String.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("entry: invalid id %q", s)
	}
	return ID(v), nil
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// UnmarshalJSON accepts a number or a quoted number.
func (id *ID) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		var s string
		if err2 := json.Unmarshal(b, &s); err2 != nil {
			return err
		}
		n = json.Number(s)
	}
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return fmt.Errorf("entry: invalid id %s", string(b))
		}
		v = int64(f)
	}
	*id = ID(v)
	return nil
}

// Candidate is the caller supplied part of a new entry. The store assigns
// the id and date.
type Candidate struct {
	Mood    string `json:"mood"`
	Content string `json:"content"`
}

// Entry is one journal record.
type Entry struct {
	ID      ID        `json:"id"`
	Date    Timestamp `json:"date"`
	Mood    string    `json:"mood"`
	Content string    `json:"content"`
}

// Score is the mood score of the entry.
func (e Entry) Score() int {
	return mood.Score(e.Mood)
}

// Title returns the first line of the content, cut to width runes.
func (e Entry) Title(width int) string {
	line := strings.TrimSpace(e.Content)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	r := []rune(line)
	if width > 1 && len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return line
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s  %s", e.Date.String(), e.Mood, e.Title(60))
}
