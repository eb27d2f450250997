package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/reflectly/pkg/entry"
	"tableflip.dev/reflectly/pkg/journal"
	"tableflip.dev/reflectly/pkg/motivation"
	"tableflip.dev/reflectly/pkg/store"
	"tableflip.dev/reflectly/pkg/timeutil"
)

func newJournal(t *testing.T) (*journal.Store, *store.Memory) {
	t.Helper()
	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Hour)
		return now
	}
	slot := store.NewMemory(nil)
	return journal.New(slot, journal.WithClock(clock)), slot
}

type countingSource struct {
	calls int
}

func (c *countingSource) Quote(context.Context) motivation.Quote {
	c.calls++
	return motivation.Quote{Text: "Breathe.", Author: "Someone"}
}

func (c *countingSource) Image(context.Context) string {
	return "https://images.example/a.jpg"
}

func TestComposerSave(t *testing.T) {
	j, slot := newJournal(t)
	c := NewComposer(j, nil)

	if err := c.SelectMood("😄"); err != nil {
		t.Fatalf("select mood: %v", err)
	}
	if c.Mood() != "happy" {
		t.Fatalf("expected mood key happy, got %q", c.Mood())
	}
	c.SetDraft("  Slept well  ")

	e, err := c.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if e.Content != "Slept well" || e.Mood != "happy" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if c.Draft() != "" || c.Mood() != "" {
		t.Fatalf("form not reset: draft=%q mood=%q", c.Draft(), c.Mood())
	}
	if slot.Writes() != 1 {
		t.Fatalf("expected one write, got %d", slot.Writes())
	}
}

func TestComposerRejectsBlankDraft(t *testing.T) {
	j, slot := newJournal(t)
	c := NewComposer(j, nil)
	c.SetDraft(" \n\t ")

	if _, err := c.Save(); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	if c.Draft() != " \n\t " {
		t.Fatalf("draft should be kept after a rejected save")
	}
	if len(j.List()) != 0 || slot.Writes() != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestComposerUnknownMood(t *testing.T) {
	j, _ := newJournal(t)
	c := NewComposer(j, nil)
	if err := c.SelectMood("elated-ish"); !errors.Is(err, ErrUnknownMood) {
		t.Fatalf("expected ErrUnknownMood, got %v", err)
	}
	if err := c.SelectMood(""); err != nil {
		t.Fatalf("clearing mood: %v", err)
	}
}

func TestComposerMotivationLoadedOnce(t *testing.T) {
	j, _ := newJournal(t)
	src := &countingSource{}
	c := NewComposer(j, src)

	first := c.Motivation(context.Background())
	second := c.Motivation(context.Background())
	if src.calls != 1 {
		t.Fatalf("expected one fetch, got %d", src.calls)
	}
	if first != second || first.Quote.Text != "Breathe." || first.ImageURL == "" {
		t.Fatalf("unexpected motivation %+v / %+v", first, second)
	}

	fallback := NewComposer(j, nil).Motivation(context.Background())
	if fallback.Quote != motivation.FallbackQuote {
		t.Fatalf("expected fallback quote, got %+v", fallback.Quote)
	}
}

func TestHistoryEditFlow(t *testing.T) {
	j, _ := newJournal(t)
	created, _ := j.Create(entry.Candidate{Mood: "sad", Content: "rough start"})
	h := NewHistory(j)
	defer h.Stop()

	if err := h.BeginEdit(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	if err := h.Open(created.ID); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := h.BeginEdit(); err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	if h.Draft() != "rough start" {
		t.Fatalf("draft should start from content, got %q", h.Draft())
	}
	h.SetDraft("rough start, better evening")
	if err := h.SetMood("calm"); err != nil {
		t.Fatalf("set mood: %v", err)
	}

	saved, err := h.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID != created.ID || !saved.Date.Equal(created.Date.Time) {
		t.Fatalf("identity changed: %+v vs %+v", saved, created)
	}
	if saved.Content != "rough start, better evening" || saved.Mood != "calm" {
		t.Fatalf("unexpected saved entry %+v", saved)
	}
	if h.Editing() {
		t.Fatalf("expected edit mode to end")
	}
	sel, ok := h.Selected()
	if !ok || sel != saved {
		t.Fatalf("selected entry not refreshed: %+v", sel)
	}
	if got := h.Entries(); len(got) != 1 || got[0] != saved {
		t.Fatalf("entries not refreshed: %+v", got)
	}
}

func TestHistorySaveRejectsBlankDraft(t *testing.T) {
	j, slot := newJournal(t)
	created, _ := j.Create(entry.Candidate{Mood: "happy", Content: "keep me"})
	h := NewHistory(j)
	defer h.Stop()

	_ = h.Open(created.ID)
	_ = h.BeginEdit()
	h.SetDraft("   ")
	if _, err := h.Save(); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	if !h.Editing() {
		t.Fatalf("editing should continue after a rejected save")
	}
	if got, _ := j.Get(created.ID); got.Content != "keep me" {
		t.Fatalf("content should be untouched, got %q", got.Content)
	}
	if slot.Writes() != 1 {
		t.Fatalf("expected only the create write, got %d", slot.Writes())
	}
}

func TestHistoryCancelDiscardsDraft(t *testing.T) {
	j, _ := newJournal(t)
	created, _ := j.Create(entry.Candidate{Content: "original"})
	h := NewHistory(j)
	defer h.Stop()

	_ = h.Open(created.ID)
	_ = h.BeginEdit()
	h.SetDraft("changed")
	h.Cancel()

	if h.Editing() || h.Draft() != "" {
		t.Fatalf("cancel should leave edit mode and clear the draft")
	}
	if got, _ := j.Get(created.ID); got.Content != "original" {
		t.Fatalf("cancel must not write, got %q", got.Content)
	}
	if _, ok := h.Selected(); !ok {
		t.Fatalf("entry should stay open after cancel")
	}
}

func TestHistoryDeleteClosesEntry(t *testing.T) {
	j, _ := newJournal(t)
	a, _ := j.Create(entry.Candidate{Content: "a"})
	b, _ := j.Create(entry.Candidate{Content: "b"})
	h := NewHistory(j)
	defer h.Stop()

	if err := h.Delete(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	_ = h.Open(a.ID)
	if err := h.Delete(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := h.Selected(); ok {
		t.Fatalf("deleted entry should be closed")
	}
	if got := h.Entries(); len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("unexpected entries after delete: %+v", got)
	}
}

func TestHistoryFollowsExternalDelete(t *testing.T) {
	j, _ := newJournal(t)
	a, _ := j.Create(entry.Candidate{Content: "a"})
	h := NewHistory(j)
	defer h.Stop()

	_ = h.Open(a.ID)
	_ = h.BeginEdit()
	j.Delete(a.ID)

	if _, ok := h.Selected(); ok {
		t.Fatalf("entry deleted elsewhere should close")
	}
	if h.Editing() {
		t.Fatalf("edit should end when the entry disappears")
	}
	if err := h.Open(a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHistoryStopDetaches(t *testing.T) {
	j, _ := newJournal(t)
	h := NewHistory(j)
	h.Stop()
	j.Create(entry.Candidate{Content: "after stop"})
	if len(h.Entries()) != 0 {
		t.Fatalf("stopped view should not follow the journal")
	}
}

func TestInsightsFollowJournal(t *testing.T) {
	j, _ := newJournal(t)
	v := NewInsights(j)
	defer v.Stop()

	empty := v.Dashboard()
	if len(empty.Trend) != 0 || len(empty.Recent) != 0 {
		t.Fatalf("expected empty dashboard, got %+v", empty)
	}

	j.Create(entry.Candidate{Mood: "happy", Content: "one"})
	j.Create(entry.Candidate{Mood: "sad", Content: "two"})

	d := v.Dashboard()
	if len(d.Trend) != 2 || d.Trend[0].Score != 5 || d.Trend[1].Score != 1 {
		t.Fatalf("unexpected trend %+v", d.Trend)
	}
	if len(d.Breakdown) != 2 || len(d.Recent) != 2 {
		t.Fatalf("unexpected dashboard %+v", d)
	}

	again := v.Dashboard()
	if again.Version != d.Version {
		t.Fatalf("dashboard changed without a journal change")
	}
}

func TestInsightsSummaryWindow(t *testing.T) {
	j, _ := newJournal(t)
	v := NewInsights(j)
	defer v.Stop()

	j.Create(entry.Candidate{Mood: "angry", Content: "old"})
	last, _ := j.Create(entry.Candidate{Mood: "happy", Content: "new"})

	s := v.Summary(timeutil.Window{Duration: 30 * time.Minute}, last.Date.Time)
	if s.Total != 1 || s.Dominant != "happy" {
		t.Fatalf("expected only the latest entry, got %+v", s)
	}

	all := v.Summary(timeutil.Window{All: true}, last.Date.Time)
	if all.Total != 2 || all.Average != 2.5 {
		t.Fatalf("unexpected all-time summary %+v", all)
	}
}
