package options

import (
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	got := Wrap("one two three four five", 9)
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 9 {
			t.Fatalf("line %q longer than 9", line)
		}
	}
	if Wrap("   ", 10) != "   " {
		t.Fatalf("blank text should pass through")
	}
}

func TestIDOptions(t *testing.T) {
	if _, err := (&IDOptions{}).EntryID(); err == nil {
		t.Fatalf("expected error for missing id")
	}
	id, err := (&IDOptions{ID: "1700000000000"}).EntryID()
	if err != nil || id != 1700000000000 {
		t.Fatalf("unexpected id %v err %v", id, err)
	}
}

func TestFormatValidate(t *testing.T) {
	for _, f := range []string{"text", "json", "yaml"} {
		if err := (&FormatOptions{Format: f}).Validate(); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
	}
	if err := (&FormatOptions{Format: "xml"}).Validate(); err == nil {
		t.Fatalf("expected error for xml")
	}
}

func TestWindowDefault(t *testing.T) {
	w, err := (&WindowOptions{Last: "all"}).Window()
	if err != nil || !w.All {
		t.Fatalf("expected all window, got %+v %v", w, err)
	}
}
