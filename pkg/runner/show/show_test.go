package show

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"tableflip.dev/reflectly/pkg/entry"
	"tableflip.dev/reflectly/pkg/journal"
	"tableflip.dev/reflectly/pkg/store"
	"tableflip.dev/reflectly/pkg/views"
)

func TestShow(t *testing.T) {
	j := journal.New(store.NewMemory(nil))
	created, _ := j.Create(entry.Candidate{Mood: "anxious", Content: "big meeting\ntomorrow at nine"})

	var out bytes.Buffer
	if err := (&Show{Journal: j, ID: created.ID, Out: &out}).Do(context.Background()); err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{created.ID.String(), "Anxious", "big meeting", "tomorrow at nine"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}

	if err := (&Show{Journal: j, ID: 1, Out: &out}).Do(context.Background()); !errors.Is(err, views.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
