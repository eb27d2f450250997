package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the ISO-8601 form entries are stored with, millisecond
// precision in UTC.
const Layout = "2006-01-02T15:04:05.000Z07:00"

// ParseTime parses RFC 3339 timestamps, with or without fractional seconds.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp is a point in time that serializes as an ISO-8601 string.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to the stored precision so that a timestamp
// survives a JSON round trip unchanged.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(timestamp)
	if err != nil {
		return err
	}
	*t = NewTimestamp(parsed)
	return nil
}

// MarshalYAML writes the same form as MarshalJSON.
func (t Timestamp) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return "", nil
	}
	return t.String(), nil
}

func (t Timestamp) String() string {
	return t.UTC().Format(Layout)
}
