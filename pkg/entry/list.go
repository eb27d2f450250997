package entry

import (
	"bytes"
	"encoding/json"
	"strings"

	"tableflip.dev/reflectly/pkg/mood"
)

// record is the stored shape of an entry. Older payloads wrote the text as
// "reflection" instead of "content".
type record struct {
	Entry
	Reflection string `json:"reflection,omitempty"`
}

// MarshalList serialises the whole collection as one JSON array.
func MarshalList(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

// UnmarshalList deserialises a collection written by MarshalList. Empty
// input and null decode to an empty collection.
func UnmarshalList(data []byte) ([]Entry, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []Entry{}, nil
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		e := r.Entry
		if strings.TrimSpace(e.Content) == "" && r.Reflection != "" {
			e.Content = r.Reflection
		}
		e.Mood = mood.Normalize(e.Mood)
		entries = append(entries, e)
	}
	return entries, nil
}
