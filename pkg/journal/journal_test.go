package journal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tableflip.dev/reflectly/pkg/entry"
	"tableflip.dev/reflectly/pkg/store"
)

// fixedClock hands out the same instant until advanced.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *fixedClock {
	return &fixedClock{now: time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC)}
}

// failingSlot reads fine and refuses every write.
type failingSlot struct {
	store.Slot
	err error
}

func (f failingSlot) Set(string, string) error {
	return f.err
}

type brokenReadSlot struct {
	*store.Memory
}

func (brokenReadSlot) Get(string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func persisted(t *testing.T, slot store.Slot) []entry.Entry {
	t.Helper()
	raw, ok, err := slot.Get(DefaultKey)
	if err != nil {
		t.Fatalf("read slot: %v", err)
	}
	if !ok {
		t.Fatal("nothing persisted")
	}
	entries, err := entry.UnmarshalList([]byte(raw))
	if err != nil {
		t.Fatalf("decode slot: %v", err)
	}
	return entries
}

func TestCreateOnEmptyStore(t *testing.T) {
	slot := store.NewMemory(nil)
	before := time.Now()
	s := New(slot)

	e, ok := s.Create(entry.Candidate{Mood: "happy", Content: "Great day"})
	if !ok {
		t.Fatal("expected create to succeed")
	}

	list := s.List()
	if len(list) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(list))
	}
	got := list[0]
	if got.Mood != "happy" || got.Content != "Great day" {
		t.Fatalf("unexpected entry %+v", got)
	}
	if got.ID != e.ID || got.ID == 0 {
		t.Fatalf("expected fresh id, got %v", got.ID)
	}
	if got.Date.Before(before.Add(-time.Second)) || got.Date.After(time.Now().Add(time.Second)) {
		t.Fatalf("date %v not near the call", got.Date)
	}
	if diff := cmp.Diff(list, persisted(t, slot)); diff != "" {
		t.Fatalf("slot diverged from memory (-mem +slot):\n%s", diff)
	}
}

func TestCreateDefaultsMoodAndTrims(t *testing.T) {
	s := New(store.NewMemory(nil))
	e, ok := s.Create(entry.Candidate{Content: "  hello \n"})
	if !ok {
		t.Fatal("expected create to succeed")
	}
	if e.Mood != "neutral" {
		t.Fatalf("expected neutral default, got %q", e.Mood)
	}
	if e.Content != "hello" {
		t.Fatalf("expected trimmed content, got %q", e.Content)
	}
}

func TestCreateEmptyContentIsNoop(t *testing.T) {
	slot := store.NewMemory(nil)
	s := New(slot)
	notified := 0
	s.Subscribe(func(Snapshot) { notified++ })

	for _, content := range []string{"", "   ", "\n\t"} {
		if _, ok := s.Create(entry.Candidate{Mood: "sad", Content: content}); ok {
			t.Fatalf("expected create with %q to be rejected", content)
		}
	}
	if len(s.List()) != 0 {
		t.Fatal("expected no entries")
	}
	if slot.Writes() != 0 || notified != 0 {
		t.Fatalf("expected no writes or notifications, got %d writes %d notifications", slot.Writes(), notified)
	}
}

func TestIDsUniqueWhenClockStalls(t *testing.T) {
	clock := newClock()
	s := New(store.NewMemory(nil), WithClock(clock.Now))

	seen := make(map[entry.ID]bool)
	for i := 0; i < 50; i++ {
		e, ok := s.Create(entry.Candidate{Content: "same instant"})
		if !ok {
			t.Fatal("create failed")
		}
		if seen[e.ID] {
			t.Fatalf("duplicate id %v", e.ID)
		}
		seen[e.ID] = true
		if i%10 == 0 {
			clock.Advance(time.Millisecond)
		}
	}
}

func TestIDsContinueAfterLoadedMax(t *testing.T) {
	clock := newClock()
	future := entry.ID(clock.Now().Add(time.Hour).UnixMilli())
	seed, _ := entry.MarshalList([]entry.Entry{{ID: future, Date: entry.NewTimestamp(clock.Now()), Mood: "calm", Content: "from the future"}})
	s := New(store.NewMemory(map[string]string{DefaultKey: string(seed)}), WithClock(clock.Now))

	e, _ := s.Create(entry.Candidate{Content: "now"})
	if e.ID <= future {
		t.Fatalf("expected id after %v, got %v", future, e.ID)
	}
}

func TestInsertionOrderSurvivesUpdates(t *testing.T) {
	clock := newClock()
	s := New(store.NewMemory(nil), WithClock(clock.Now))
	var ids []entry.ID
	for _, c := range []string{"a", "b", "c", "d"} {
		e, _ := s.Create(entry.Candidate{Content: c})
		ids = append(ids, e.ID)
		clock.Advance(time.Second)
	}

	s.Update(entry.Entry{ID: ids[2], Content: "c2"})
	s.Update(entry.Entry{ID: ids[0], Content: "a2", Mood: "angry"})

	list := s.List()
	for i, e := range list {
		if e.ID != ids[i] {
			t.Fatalf("position %d: expected %v, got %v", i, ids[i], e.ID)
		}
	}
	if list[0].Content != "a2" || list[0].Mood != "angry" || list[2].Content != "c2" {
		t.Fatalf("updates not applied: %+v", list)
	}
}

func TestUpdateKeepsIdentity(t *testing.T) {
	slot := store.NewMemory(nil)
	s := New(slot)
	orig, _ := s.Create(entry.Candidate{Mood: "sad", Content: "old"})

	forged := entry.Entry{
		ID:      orig.ID,
		Date:    entry.NewTimestamp(time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)),
		Content: "new",
	}
	if !s.Update(forged) {
		t.Fatal("expected update to apply")
	}

	got := s.List()[0]
	if got.Content != "new" {
		t.Fatalf("expected new content, got %q", got.Content)
	}
	if got.ID != orig.ID || !got.Date.Equal(orig.Date.Time) {
		t.Fatalf("identity drifted: %+v vs %+v", got, orig)
	}
	if got.Mood != "sad" {
		t.Fatalf("expected mood kept when not given, got %q", got.Mood)
	}
	if persisted(t, slot)[0].Content != "new" {
		t.Fatal("update not persisted")
	}
}

func TestUpdateTwiceSameAsOnce(t *testing.T) {
	slot := store.NewMemory(nil)
	s := New(slot)
	orig, _ := s.Create(entry.Candidate{Content: "old"})
	payload := entry.Entry{ID: orig.ID, Content: "new", Mood: "calm"}

	s.Update(payload)
	once := s.Snapshot()
	writes := slot.Writes()

	if !s.Update(payload) {
		t.Fatal("expected second update to find the entry")
	}
	twice := s.Snapshot()
	if diff := cmp.Diff(once.Entries, twice.Entries); diff != "" {
		t.Fatalf("second update changed state (-once +twice):\n%s", diff)
	}
	if twice.Version != once.Version || slot.Writes() != writes {
		t.Fatal("expected unchanged update to skip persistence")
	}
}

func TestUpdateUnknownOrEmptyIsNoop(t *testing.T) {
	slot := store.NewMemory(nil)
	s := New(slot)
	e, _ := s.Create(entry.Candidate{Content: "keep"})
	writes := slot.Writes()

	if s.Update(entry.Entry{ID: e.ID + 1000, Content: "ghost"}) {
		t.Fatal("expected update of unknown id to report false")
	}
	if s.Update(entry.Entry{ID: e.ID, Content: "   "}) {
		t.Fatal("expected update with empty content to report false")
	}
	if s.List()[0].Content != "keep" || slot.Writes() != writes {
		t.Fatal("expected no change")
	}
}

func TestDeleteMiddleKeepsOrder(t *testing.T) {
	clock := newClock()
	slot := store.NewMemory(nil)
	s := New(slot, WithClock(clock.Now))
	a, _ := s.Create(entry.Candidate{Content: "A"})
	b, _ := s.Create(entry.Candidate{Content: "B"})
	c, _ := s.Create(entry.Candidate{Content: "C"})

	if !s.Delete(b.ID) {
		t.Fatal("expected delete to remove B")
	}
	want := []entry.Entry{a, c}
	if diff := cmp.Diff(want, s.List()); diff != "" {
		t.Fatalf("unexpected list (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, persisted(t, slot)); diff != "" {
		t.Fatalf("unexpected slot (-want +got):\n%s", diff)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	slot := store.NewMemory(nil)
	s := New(slot)
	a, _ := s.Create(entry.Candidate{Content: "A"})
	s.Create(entry.Candidate{Content: "B"})

	s.Delete(a.ID)
	once := s.List()
	writes := slot.Writes()

	if s.Delete(a.ID) {
		t.Fatal("expected second delete to report false")
	}
	if diff := cmp.Diff(once, s.List()); diff != "" {
		t.Fatalf("second delete changed state:\n%s", diff)
	}
	if slot.Writes() != writes {
		t.Fatal("expected no write for a delete that removed nothing")
	}
}

func TestMalformedSlotStartsEmpty(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	slot := store.NewMemory(map[string]string{DefaultKey: "{not json"})
	s := New(slot, WithLogger(zap.New(core)))

	if got := s.List(); len(got) != 0 {
		t.Fatalf("expected empty collection, got %d", len(got))
	}
	if logs.FilterMessage("failed to parse journal").Len() != 1 {
		t.Fatalf("expected parse failure to be logged, got %v", logs.All())
	}

	// The store stays usable and overwrites the bad payload.
	s.Create(entry.Candidate{Content: "fresh start"})
	if len(persisted(t, slot)) != 1 {
		t.Fatal("expected the new collection to replace the malformed one")
	}
}

func TestReadErrorStartsEmpty(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := New(brokenReadSlot{store.NewMemory(nil)}, WithLogger(zap.New(core)))
	if len(s.List()) != 0 {
		t.Fatal("expected empty collection")
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
}

func TestLoadsPersistedCollection(t *testing.T) {
	clock := newClock()
	slot := store.NewMemory(nil)
	first := New(slot, WithClock(clock.Now))
	first.Create(entry.Candidate{Mood: "sad", Content: "one"})
	clock.Advance(time.Minute)
	first.Create(entry.Candidate{Mood: "happy", Content: "two"})

	second := New(slot)
	if diff := cmp.Diff(first.List(), second.List()); diff != "" {
		t.Fatalf("reopened store differs (-first +second):\n%s", diff)
	}
}

func TestDuplicateIDsDroppedOnLoad(t *testing.T) {
	raw := `[{"id":1,"date":"2024-01-01T00:00:00.000Z","mood":"sad","content":"a"},
	         {"id":1,"date":"2024-01-02T00:00:00.000Z","mood":"happy","content":"b"}]`
	s := New(store.NewMemory(map[string]string{DefaultKey: raw}))
	list := s.List()
	if len(list) != 1 || list[0].Content != "a" {
		t.Fatalf("expected first duplicate kept, got %+v", list)
	}
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	slot := failingSlot{Slot: store.NewMemory(nil), err: errors.New("quota exceeded")}
	s := New(slot, WithLogger(zap.New(core)))

	e, ok := s.Create(entry.Candidate{Content: "still here"})
	if !ok {
		t.Fatal("expected create to succeed despite write failure")
	}
	if got := s.List(); len(got) != 1 || got[0].ID != e.ID {
		t.Fatalf("expected in-memory entry, got %+v", got)
	}
	if logs.FilterMessage("failed to save journal, keeping changes in memory").Len() != 1 {
		t.Fatalf("expected write failure to be logged, got %v", logs.All())
	}
}

func TestSubscribersSeeEveryChange(t *testing.T) {
	s := New(store.NewMemory(nil))
	var a, b []Snapshot
	s.Subscribe(func(snap Snapshot) { a = append(a, snap) })
	cancel := s.Subscribe(func(snap Snapshot) {
		// Reading back from inside a notification must not deadlock.
		if len(s.List()) != len(snap.Entries) {
			t.Errorf("snapshot and list disagree")
		}
		b = append(b, snap)
	})

	e, _ := s.Create(entry.Candidate{Content: "one"})
	s.Update(entry.Entry{ID: e.ID, Content: "uno"})
	cancel()
	s.Delete(e.ID)

	if len(a) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(a))
	}
	if len(b) != 2 {
		t.Fatalf("expected cancelled subscriber to see 2, got %d", len(b))
	}
	for i := 1; i < len(a); i++ {
		if a[i].Version <= a[i-1].Version {
			t.Fatalf("versions not increasing: %d then %d", a[i-1].Version, a[i].Version)
		}
	}
	if a[1].Entries[0].Content != "uno" || len(a[2].Entries) != 0 {
		t.Fatalf("unexpected snapshots %+v", a)
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := New(store.NewMemory(nil))
	s.Create(entry.Candidate{Content: "original"})
	list := s.List()
	list[0].Content = "tampered"
	if s.List()[0].Content != "original" {
		t.Fatal("caller mutated store state through List")
	}
}

func TestReloadNotifiesOnlyOnChange(t *testing.T) {
	slot := store.NewMemory(nil)
	writer := New(slot)
	reader := New(slot)
	reader.List()

	notified := 0
	reader.Subscribe(func(Snapshot) { notified++ })

	reader.Reload()
	if notified != 0 {
		t.Fatal("expected no notification when nothing changed")
	}

	writer.Create(entry.Candidate{Content: "from elsewhere"})
	reader.Reload()
	if notified != 1 {
		t.Fatalf("expected one notification, got %d", notified)
	}
	if len(reader.List()) != 1 {
		t.Fatal("expected reload to pick up the new entry")
	}
}

// flakySlot fails reads while fail is set.
type flakySlot struct {
	*store.Memory
	fail bool
}

func (f *flakySlot) Get(key string) (string, bool, error) {
	if f.fail {
		return "", false, errors.New("input/output error")
	}
	return f.Memory.Get(key)
}

func TestReloadKeepsEntriesOnReadError(t *testing.T) {
	slot := &flakySlot{Memory: store.NewMemory(nil)}
	core, logs := observer.New(zapcore.WarnLevel)
	s := New(slot, WithLogger(zap.New(core)))
	for _, c := range []string{"one", "two", "three"} {
		s.Create(entry.Candidate{Content: c})
	}
	before := s.Snapshot()

	notified := 0
	s.Subscribe(func(Snapshot) { notified++ })

	slot.fail = true
	s.Reload()
	slot.fail = false

	if got := s.Snapshot(); got.Version != before.Version || len(got.Entries) != 3 {
		t.Fatalf("expected 3 entries at version %d, got %d at version %d",
			before.Version, len(got.Entries), got.Version)
	}
	if notified != 0 {
		t.Fatalf("expected no notification, got %d", notified)
	}
	if logs.FilterMessage("failed to reload journal, keeping current entries").Len() != 1 {
		t.Fatalf("expected a reload warning, got %v", logs.All())
	}

	s.Create(entry.Candidate{Content: "four"})
	if got := persisted(t, slot); len(got) != 4 {
		t.Fatalf("expected 4 persisted entries, got %d", len(got))
	}
}

func TestReloadKeepsEntriesOnCorruptSlot(t *testing.T) {
	slot := store.NewMemory(nil)
	s := New(slot)
	s.Create(entry.Candidate{Content: "keep me"})

	if err := slot.Set(DefaultKey, "{not json"); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Reload()
	if got := s.List(); len(got) != 1 || got[0].Content != "keep me" {
		t.Fatalf("expected entry to survive a corrupt reload, got %+v", got)
	}
}

type diskConfig string

func (d diskConfig) BasePath() string { return string(d) }

func TestFollowReloadsExternalWrites(t *testing.T) {
	slot, err := store.Load(diskConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load slot: %v", err)
	}
	follower := New(slot)
	follower.List()

	changed := make(chan Snapshot, 4)
	follower.Subscribe(func(snap Snapshot) { changed <- snap })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := follower.Follow(ctx, slot); err != nil {
		t.Fatalf("follow: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	writer := New(slot)
	writer.Create(entry.Candidate{Mood: "calm", Content: "written by another process"})

	select {
	case snap := <-changed:
		if len(snap.Entries) != 1 {
			t.Fatalf("expected 1 entry after reload, got %d", len(snap.Entries))
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
